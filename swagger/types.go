package swagger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document represents the root of a Swagger v2.0 document.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger             string                     `json:"swagger" yaml:"swagger"`
	Info                Info                       `json:"info" yaml:"info"`
	Host                string                     `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath            string                     `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Schemes             []string                   `json:"schemes,omitempty" yaml:"schemes,omitempty"`
	Consumes            []string                   `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces            []string                   `json:"produces,omitempty" yaml:"produces,omitempty"`
	Paths               map[string]*PathItem       `json:"paths" yaml:"paths"`
	Definitions         map[string]*Schema         `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty" yaml:"securityDefinitions,omitempty"`
	Tags                []Tag                      `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version        string   `json:"version" yaml:"version"`
}

// Contact represents contact information for the API.
//
// See: https://swagger.io/specification/v2/#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://swagger.io/specification/v2/#license-object
type License struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// PathItem describes the operations available on a single path.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Tags        []string              `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Consumes    []string              `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Produces    []string              `json:"produces,omitempty" yaml:"produces,omitempty"`
	Parameters  []*Parameter          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]*Response  `json:"responses" yaml:"responses"`
	Security    []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter. Body parameters carry a
// full Schema; path, query, header, and formData parameters use the inline
// type fields.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string  `json:"format,omitempty" yaml:"format,omitempty"`
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []any   `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any     `json:"default,omitempty" yaml:"default,omitempty"`
}

// Response describes a single response from an API operation.
// The description field is REQUIRED per Swagger v2.0.
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Description string         `json:"description" yaml:"description"`
	Schema      *Schema        `json:"schema,omitempty" yaml:"schema,omitempty"`
	Examples    map[string]any `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Schema represents a JSON-Schema-like type node used in Swagger v2.0:
// a primitive (type/format), an array (items), an object (properties and
// required), or a reference to a named definition ($ref).
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Ref                  string      `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type                 string      `json:"type,omitempty" yaml:"type,omitempty"`
	Format               string      `json:"format,omitempty" yaml:"format,omitempty"`
	Description          string      `json:"description,omitempty" yaml:"description,omitempty"`
	Default              any         `json:"default,omitempty" yaml:"default,omitempty"`
	Example              any         `json:"example,omitempty" yaml:"example,omitempty"`
	Enum                 []any       `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items                *Schema     `json:"items,omitempty" yaml:"items,omitempty"`
	Properties           *Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string    `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *Schema     `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	ReadOnly             bool        `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// Properties is an ordered name-to-schema mapping. Property order follows
// insertion order (field declaration order for generated models), both in
// JSON and YAML output, rather than the alphabetical order a plain map
// would produce.
type Properties struct {
	names  []string
	values map[string]*Schema
}

// Set adds or replaces the schema for the given property name. A replaced
// property keeps its original position.
func (p *Properties) Set(name string, schema *Schema) {
	if p.values == nil {
		p.values = make(map[string]*Schema)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = schema
}

// Get returns the schema for the given property name.
func (p *Properties) Get(name string) (*Schema, bool) {
	s, ok := p.values[name]
	return s, ok
}

// Names returns the property names in insertion order.
func (p *Properties) Names() []string {
	return p.names
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.names)
}

// MarshalJSON encodes the properties as a JSON object preserving insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected JSON object, got %v", tok)
	}
	p.names = nil
	p.values = make(map[string]*Schema)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)
		var schema Schema
		if err := dec.Decode(&schema); err != nil {
			return err
		}
		p.Set(name, &schema)
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalYAML encodes the properties as a YAML mapping preserving insertion order.
func (p *Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range p.names {
		var key, value yaml.Node
		key.SetString(name)
		if err := value.Encode(p.values[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected YAML mapping, got kind %d", node.Kind)
	}
	p.names = nil
	p.values = make(map[string]*Schema)
	for i := 0; i < len(node.Content); i += 2 {
		var schema Schema
		if err := node.Content[i+1].Decode(&schema); err != nil {
			return err
		}
		p.Set(node.Content[i].Value, &schema)
	}
	return nil
}

// SecurityRequirement lists the security schemes an operation requires.
// Each key maps to a list of scope names (empty for non-OAuth schemes).
//
// See: https://swagger.io/specification/v2/#security-requirement-object
type SecurityRequirement map[string][]string

// SecurityScheme declares a security scheme under securityDefinitions.
// Schemes are operator-provided and passed through into the document
// without interpretation.
//
// See: https://swagger.io/specification/v2/#security-scheme-object
type SecurityScheme struct {
	Type             string            `json:"type" yaml:"type"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Name             string            `json:"name,omitempty" yaml:"name,omitempty"`
	In               string            `json:"in,omitempty" yaml:"in,omitempty"`
	Flow             string            `json:"flow,omitempty" yaml:"flow,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// Tag adds metadata to a single tag used by operations.
//
// See: https://swagger.io/specification/v2/#tag-object
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Parameter locations defined by the Swagger v2.0 specification.
//
// See: https://swagger.io/specification/v2/#parameter-object
const (
	InBody     = "body"
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InFormData = "formData"
)
