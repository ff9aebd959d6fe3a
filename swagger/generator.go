package swagger

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// resolution tracks a model through the two-phase registry: a type is marked
// in progress before its fields are inferred and resolved once its definition
// is installed. A type in either state resolves to a $ref immediately, which
// terminates self-referential and mutually-referential model graphs.
type resolution int

const (
	inProgress resolution = iota + 1
	resolved
)

// Generator converts type descriptors to Schema nodes and collects named
// model types into a definitions map for $ref deduplication. A model
// referenced from any number of sites is derived once per generator; every
// reference site gets a $ref to the single definition.
type Generator struct {
	definitions map[string]*Schema
	state       map[reflect.Type]resolution
	typeNames   map[reflect.Type]string // type -> chosen definition name
	nameTypes   map[string]reflect.Type // definition name -> type that claimed it
}

// NewGenerator creates an empty generator. The spec assembler creates one
// per build pass so cross-route model reuse deduplicates within the pass.
func NewGenerator() *Generator {
	return &Generator{
		definitions: make(map[string]*Schema),
		state:       make(map[reflect.Type]resolution),
		typeNames:   make(map[reflect.Type]string),
		nameTypes:   make(map[string]reflect.Type),
	}
}

// Definitions returns the collected model definitions. Only models reached
// by inference appear; declaring a type is not enough to emit it.
func (g *Generator) Definitions() map[string]*Schema {
	return g.definitions
}

// Generate produces a Schema for the given type descriptor: a Go value
// whose type drives reflection, a reflect.Type, or a *Schema passed through
// untouched. Named struct types are installed in the definitions map and
// returned as $ref nodes.
func (g *Generator) Generate(v any) (*Schema, error) {
	if v == nil {
		return nil, nil
	}
	switch d := v.(type) {
	case *Schema:
		return d, nil
	case reflect.Type:
		return g.generateType(d)
	default:
		return g.generateType(reflect.TypeOf(v))
	}
}

// definition resolves a $ref produced by this generator back to its
// definition node. Returns nil for refs the generator does not own.
func (g *Generator) definition(ref string) *Schema {
	name := strings.TrimPrefix(ref, "#/definitions/")
	return g.definitions[name]
}

// generateType produces a Schema for the given Go type, using $ref for named
// struct types and inline schemas for primitives, slices, maps, and
// anonymous structs.
func (g *Generator) generateType(t reflect.Type) (*Schema, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// Named struct types resolve through the registry (except time.Time,
	// which maps to a string primitive).
	if t.Kind() == reflect.Struct && t != timeType {
		if name := g.definitionName(t); name != "" {
			if g.state[t] == 0 {
				g.state[t] = inProgress
				schema, err := g.modelSchema(t)
				if err != nil {
					// Roll back the name claim too, so the name stays
					// available for other types after a failed pass.
					delete(g.state, t)
					delete(g.typeNames, t)
					delete(g.nameTypes, name)
					return nil, err
				}
				g.definitions[name] = schema
				g.state[t] = resolved
			}
			return &Schema{Ref: "#/definitions/" + name}, nil
		}
	}

	return g.inlineType(t)
}

// inlineType maps Go primitive and composite types to Swagger schema nodes.
// Formats follow the Swagger v2.0 data types table.
//
// See: https://swagger.io/specification/v2/#data-types
func (g *Generator) inlineType(t reflect.Type) (*Schema, error) {
	if t == timeType {
		return &Schema{Type: "string", Format: "date-time"}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer", Format: "int64"}, nil

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number", Format: "double"}, nil

	case reflect.String:
		return &Schema{Type: "string"}, nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}, nil
		}
		items, err := g.generateType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil

	case reflect.Array:
		items, err := g.generateType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &UnsupportedTypeError{Type: t}
		}
		elem, err := g.generateType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: elem}, nil

	case reflect.Struct:
		return g.modelSchema(t)

	case reflect.Interface:
		// The empty interface is a free-form value; anything narrower has
		// no schema representation.
		if t.NumMethod() == 0 {
			return &Schema{Type: "object"}, nil
		}
		return nil, &UnsupportedTypeError{Type: t}
	}

	return nil, &UnsupportedTypeError{Type: t}
}

// modelSchema builds an object node from struct fields. Field declaration
// order becomes property order; the required set collects every field not
// marked optional. An empty struct yields a valid empty object schema.
func (g *Generator) modelSchema(t reflect.Type) (*Schema, error) {
	schema := &Schema{Type: "object", Properties: &Properties{}}

	if err := g.collectFields(t, schema, false); err != nil {
		return nil, err
	}

	if schema.Properties.Len() == 0 {
		schema.Properties = nil
	}

	return schema, nil
}

// collectFields recursively collects struct fields into the schema. When
// allOptional is true, all fields are treated as optional regardless of
// their tags; pointer-embedded structs set it because the embedded pointer
// can be nil, omitting every inlined field from output.
func (g *Generator) collectFields(t reflect.Type, schema *Schema, allOptional bool) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		// Embedded structs inline only when the field has no explicit json
		// tag name; encoding/json treats a tagged anonymous field as a
		// regular named field.
		if field.Anonymous {
			name, _ := parseJSONTag(field.Tag.Get("json"))
			if name == "" {
				ft := field.Type
				isPtr := ft.Kind() == reflect.Pointer
				if isPtr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					if err := g.collectFields(ft, schema, allOptional || isPtr); err != nil {
						return err
					}
					continue
				}
			}
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, opts := parseJSONTag(jsonTag)
		if name == "" {
			name = field.Name
		}

		fieldSchema, err := g.generateType(field.Type)
		if err != nil {
			var infer *InferenceError
			if errors.As(err, &infer) {
				return err
			}
			return &InferenceError{Model: modelName(t), Field: field.Name, Err: err}
		}

		required := !opts.omitempty && !allOptional && field.Type.Kind() != reflect.Pointer

		tag := parseSwagTag(field.Tag.Get("swag"))
		if fieldSchema.Ref == "" {
			tag.apply(fieldSchema)
		}
		if tag.required != nil {
			required = *tag.required
		}

		schema.Properties.Set(name, fieldSchema)
		if required {
			schema.Required = append(schema.Required, name)
		}
	}

	return nil
}

func modelName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

type jsonTagOpts struct {
	omitempty bool
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	if tag == "" {
		return "", jsonTagOpts{}
	}
	name, rest, _ := strings.Cut(tag, ",")
	return name, jsonTagOpts{
		omitempty: strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero"),
	}
}

// swagTag carries the descriptive overlay parsed from the `swag` struct tag:
// documentation annotations plus an explicit required override. Required
// defaults to true for plain fields; the tag value wins when present.
type swagTag struct {
	description string
	example     string
	exampleSet  bool
	defaultVal  string
	defaultSet  bool
	format      string
	enum        []string
	required    *bool
	readOnly    bool
}

// parseSwagTag parses the `swag` struct tag. Keys map to Schema Object
// keywords, e.g.:
//
//	Year int `json:"year,omitempty" swag:"description=Model year,example=1967"`
func parseSwagTag(tag string) swagTag {
	var st swagTag
	if tag == "" {
		return st
	}

	for _, part := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if hasValue {
			value = strings.TrimSpace(value)
		}

		switch key {
		case "description":
			st.description = value
		case "example":
			st.example = value
			st.exampleSet = true
		case "default":
			st.defaultVal = value
			st.defaultSet = true
		case "format":
			st.format = value
		case "enum":
			st.enum = strings.Split(value, "|")
		case "required":
			v := value != "false"
			st.required = &v
		case "readOnly":
			st.readOnly = true
		}
	}

	return st
}

// apply overlays the parsed tag onto the schema. Example and default values
// are converted to the schema's type so documents carry a number 1967
// rather than the string "1967".
func (st swagTag) apply(schema *Schema) {
	if st.description != "" {
		schema.Description = st.description
	}
	if st.exampleSet {
		schema.Example = convertTagValue(schema, st.example)
	}
	if st.defaultSet {
		schema.Default = convertTagValue(schema, st.defaultVal)
	}
	if st.format != "" {
		schema.Format = st.format
	}
	if len(st.enum) > 0 {
		schema.Enum = make([]any, len(st.enum))
		for i, v := range st.enum {
			schema.Enum[i] = v
		}
	}
	if st.readOnly {
		schema.ReadOnly = true
	}
}

// convertTagValue converts a string tag value to the Go type matching the
// schema's declared type.
func convertTagValue(schema *Schema, value string) any {
	switch schema.Type {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}

// definitionName returns a unique definition name for the given type. If two
// types from different packages share the same simple name (models.User and
// api.User), the second gets a package-prefixed name ("ApiUser"); if that
// still collides, a numeric suffix is appended. Names key the definitions
// map and appear in $ref URIs, so a type keeps its name for the generator's
// lifetime. Anonymous types return "" and are inlined instead.
func (g *Generator) definitionName(t reflect.Type) string {
	simple := sanitizeDefinitionName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return ""
	}

	if name, ok := g.typeNames[t]; ok {
		return name
	}

	name := simple
	if existing, ok := g.nameTypes[name]; ok && existing != t {
		name = pkgPrefix(t.PkgPath()) + simple
		if existing, ok := g.nameTypes[name]; ok && existing != t {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if _, ok := g.nameTypes[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
	}

	g.typeNames[t] = name
	g.nameTypes[name] = t
	return name
}

// pkgPrefix extracts the last segment of a Go package path and capitalizes
// it for use as a definition name prefix ("net/http" -> "Http").
func pkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}
	if len(pkgPath) == 0 {
		return ""
	}
	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")
	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}

// sanitizeDefinitionName cleans up Go type names for use as definition keys.
// Generic names like "Page[User]" become "PageUser"; "Page[[]User]" becomes
// "PageUserList". Package paths in type parameters are stripped.
func sanitizeDefinitionName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return name
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	isList := strings.HasPrefix(inner, "[]")
	inner = strings.TrimPrefix(inner, "[]")

	if dot := strings.LastIndexByte(inner, '.'); dot >= 0 {
		inner = inner[dot+1:]
	}

	result := base + inner
	if isList {
		result += "List"
	}

	return result
}
