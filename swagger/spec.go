package swagger

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// macroTypeMap maps route template macros ({id:int}, {id:uuid}, ...) to
// swagger type and format for derived path parameters.
var macroTypeMap = map[string][2]string{
	"uuid":     {"string", "uuid"},
	"int":      {"integer", "int64"},
	"float":    {"number", "double"},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
	"domain":   {"string", "hostname"},
}

// pathVarRegexp matches route variables in the form {name} or {name:macro}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// Spec is the annotation store and document assembler. Annotation entries
// accumulate during application startup, keyed by operation name and
// independent of route registration order; Build joins them with a route
// catalog into one Swagger v2.0 document.
//
// The store is write-once-then-read-many: attach annotations before serving
// begins, then build freely. Document caches the first successful build and
// is safe for concurrent use.
type Spec struct {
	config Config

	mu             sync.Mutex
	ops            map[string]*OperationBuilder
	excludedStatic map[string]struct{}

	doc     *Document
	docJSON []byte
	docYAML []byte
}

// New creates a spec builder with the given configuration.
func New(config Config) *Spec {
	return &Spec{
		config:         config.withDefaults(),
		ops:            make(map[string]*OperationBuilder),
		excludedStatic: make(map[string]struct{}),
	}
}

// Op returns the annotation builder for the named operation, creating it on
// first use. Repeat calls return the same builder, so attachment calls can
// be spread across declaration sites.
func (s *Spec) Op(name string) *OperationBuilder {
	if b, ok := s.ops[name]; ok {
		return b
	}
	b := newOperationBuilder()
	s.ops[name] = b
	return b
}

// lookup returns the annotation builder for the named operation, or nil if
// nothing was ever attached. An unannotated route is legal and renders with
// defaults.
func (s *Spec) lookup(name string) *OperationBuilder {
	return s.ops[name]
}

// ExcludeStatic adds paths to the excluded static paths set. A route whose
// path exactly matches an entry never appears in the document, regardless
// of its annotations.
func (s *Spec) ExcludeStatic(paths ...string) *Spec {
	for _, p := range paths {
		s.excludedStatic[p] = struct{}{}
	}
	return s
}

// Reset clears all annotation entries, excluded paths, and the cached
// document. Intended for tests that share a process-wide spec.
func (s *Spec) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = make(map[string]*OperationBuilder)
	s.excludedStatic = make(map[string]struct{})
	s.doc = nil
	s.docJSON = nil
	s.docYAML = nil
}

// isExcluded reports whether the route is excluded from the document:
// either its annotation entry set exclude, or its path is in the excluded
// static paths set.
func (s *Spec) isExcluded(rt Route, static map[string]struct{}) bool {
	if _, ok := static[rt.Path]; ok {
		return true
	}
	if _, ok := static[normalizePath(rt.Path)]; ok {
		return true
	}
	if b := s.ops[rt.Operation]; b != nil && b.meta.excluded {
		return true
	}
	return false
}

// Build assembles a fresh document from the catalog and the accumulated
// annotations. Inference failures abort the whole build; no partial
// document is returned. Repeated builds over the same inputs produce
// identical documents.
func (s *Spec) Build(catalog Catalog) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(catalog)
}

// Document returns the assembled document, building it on first call and
// caching the result. A failed build is not cached: the error is returned
// and the next call retries, so a corrected model succeeds without a
// process restart.
func (s *Spec) Document(catalog Catalog) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document(catalog)
}

func (s *Spec) document(catalog Catalog) (*Document, error) {
	if s.doc != nil {
		return s.doc, nil
	}
	doc, err := s.build(catalog)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return doc, nil
}

func (s *Spec) build(catalog Catalog) (*Document, error) {
	gen := NewGenerator()
	cfg := s.config

	doc := &Document{
		Swagger:  "2.0",
		Info:     cfg.info(),
		Host:     cfg.Host,
		BasePath: cfg.BasePath,
		Schemes:  cfg.Schemes,
		Consumes: cfg.ConsumesContentTypes,
		Produces: cfg.ProducesContentTypes,
		Paths:    make(map[string]*PathItem),
	}

	static := make(map[string]struct{}, len(s.excludedStatic))
	for p := range s.excludedStatic {
		static[p] = struct{}{}
	}
	for _, p := range catalog.StaticPaths() {
		static[p] = struct{}{}
	}

	var tagOrder []string
	tagSeen := make(map[string]bool)

	for _, rt := range catalog.Routes() {
		if !methodSupported(rt.Method) {
			continue
		}
		if s.isExcluded(rt, static) {
			continue
		}

		path, pathParams := parsePath(normalizePath(rt.Path))

		op, err := s.buildOperation(gen, rt, pathParams)
		if err != nil {
			return nil, &AssemblyError{Method: rt.Method, Path: rt.Path, Err: err}
		}

		item, ok := doc.Paths[path]
		if !ok {
			item = &PathItem{}
			doc.Paths[path] = item
		}

		// First registration wins when trailing-slash variants collapse
		// onto the same path and method.
		if !assignOperation(item, rt.Method, op) {
			continue
		}

		for _, tag := range op.Tags {
			if !tagSeen[tag] {
				tagSeen[tag] = true
				tagOrder = append(tagOrder, tag)
			}
		}
	}

	if defs := gen.Definitions(); len(defs) > 0 {
		doc.Definitions = defs
	}
	if len(cfg.SecurityDefinitions) > 0 {
		doc.SecurityDefinitions = cfg.SecurityDefinitions
	}
	for _, name := range tagOrder {
		doc.Tags = append(doc.Tags, Tag{Name: name})
	}

	return doc, nil
}

// buildOperation converts one route and its annotation entry (absent entry:
// all defaults) into an Operation object.
func (s *Spec) buildOperation(gen *Generator, rt Route, pathParams []*Parameter) (*Operation, error) {
	meta := &operationMeta{}
	if b := s.lookup(rt.Operation); b != nil {
		meta = b.meta
	}

	op := &Operation{
		Summary:     meta.summary,
		Description: meta.description,
		Security:    meta.security,
		Deprecated:  meta.deprecated,
	}

	op.OperationID = meta.operationID
	if op.OperationID == "" {
		op.OperationID = rt.Operation
	}

	// Explicit tags win over the group-derived tag.
	if len(meta.tags) > 0 {
		op.Tags = meta.tags
	} else if rt.Group != "" {
		op.Tags = []string{rt.Group}
	}

	// Document-level content types cover the common case; an operation
	// carries its own lists only when overridden.
	op.Consumes = meta.consumesContentTypes
	op.Produces = meta.producesContentTypes

	// Parameters: consumed schemas partitioned by location, then explicit
	// parameters, merged over the auto-derived path parameters.
	var derived []*Parameter
	for _, cf := range meta.consumes {
		params, err := consumedParameters(gen, cf)
		if err != nil {
			return nil, err
		}
		derived = append(derived, params...)
	}

	var explicit []*Parameter
	for _, pf := range meta.parameters {
		params, err := consumedParameters(gen, pf)
		if err != nil {
			return nil, err
		}
		explicit = append(explicit, params...)
	}

	op.Parameters = mergeParameters(mergeParameters(pathParams, derived), explicit)

	if err := s.buildResponses(gen, meta, op); err != nil {
		return nil, err
	}

	return op, nil
}

// buildResponses fills the operation's responses from the annotation entry.
// An operation always documents at least one response: with nothing
// declared, a single "200 Successful Operation" entry is emitted. The
// produces schema fills the 200 response's schema when that status has no
// explicit schema of its own.
func (s *Spec) buildResponses(gen *Generator, meta *operationMeta, op *Operation) error {
	op.Responses = make(map[string]*Response)

	for code, rm := range meta.responses {
		resp := &Response{Description: rm.description}
		if resp.Description == "" {
			resp.Description = statusDescription(code)
		}
		if rm.value != nil {
			schema, err := gen.Generate(rm.value)
			if err != nil {
				return err
			}
			resp.Schema = schema
		}
		if len(rm.examples) > 0 {
			resp.Examples = rm.examples
		}
		op.Responses[strconv.Itoa(code)] = resp
	}

	success, ok := op.Responses["200"]
	if !ok && (len(op.Responses) == 0 || meta.produces != nil) {
		success = &Response{Description: "Successful Operation"}
		op.Responses["200"] = success
	}

	if meta.produces != nil && success != nil && success.Schema == nil {
		schema, err := gen.Generate(meta.produces)
		if err != nil {
			return err
		}
		success.Schema = schema
	}

	return nil
}

// consumedParameters converts one consumed field into parameters. Body
// fields become a single schema parameter. Non-body object schemas are
// flattened into one parameter per top-level property, each required when
// the property is in the model's required set; everything else becomes one
// inline-typed parameter.
func consumedParameters(gen *Generator, cf consumedField) ([]*Parameter, error) {
	schema, err := gen.Generate(cf.value)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, nil
	}

	if cf.location == InBody {
		name := cf.name
		if name == "" {
			name = "body"
		}
		return []*Parameter{{
			Name:     name,
			In:       InBody,
			Required: cf.required,
			Schema:   schema,
		}}, nil
	}

	obj := schema
	if schema.Ref != "" {
		obj = gen.definition(schema.Ref)
	}
	if obj != nil && obj.Type == "object" && obj.Properties != nil {
		requiredSet := make(map[string]bool, len(obj.Required))
		for _, name := range obj.Required {
			requiredSet[name] = true
		}
		params := make([]*Parameter, 0, obj.Properties.Len())
		for _, name := range obj.Properties.Names() {
			prop, _ := obj.Properties.Get(name)
			param := inlineParameter(name, cf.location, requiredSet[name], prop)
			params = append(params, param)
		}
		return params, nil
	}

	name := cf.name
	if name == "" {
		name = "body"
	}
	return []*Parameter{inlineParameter(name, cf.location, cf.required, schema)}, nil
}

// inlineParameter builds a non-body parameter from an inline schema node.
func inlineParameter(name, location string, required bool, schema *Schema) *Parameter {
	param := &Parameter{
		Name:     name,
		In:       location,
		Required: required,
	}
	if schema == nil || schema.Ref != "" {
		// Nested model references have no inline representation outside a
		// body parameter; fall back to a plain string.
		param.Type = "string"
		return param
	}
	param.Type = schema.Type
	param.Format = schema.Format
	param.Description = schema.Description
	param.Items = inlineItems(schema.Items)
	param.Enum = schema.Enum
	param.Default = schema.Default
	return param
}

// inlineItems sanitizes an items node for a non-body parameter. Items
// objects there carry primitive type fields only, so model references fall
// back to plain strings. Nodes are copied before rewriting; the originals
// may be shared with definitions.
func inlineItems(items *Schema) *Schema {
	if items == nil {
		return nil
	}
	if items.Ref != "" {
		return &Schema{Type: "string"}
	}
	if nested := inlineItems(items.Items); nested != items.Items {
		return &Schema{Type: items.Type, Format: items.Format, Items: nested}
	}
	return items
}

// mergeParameters combines base parameters with overriding ones. Override
// parameters with the same name and location replace the base entry;
// uniqueness is on (name, in) per the parameter object rules.
func mergeParameters(base, override []*Parameter) []*Parameter {
	if len(base) == 0 {
		return override
	}
	if len(override) == 0 {
		return base
	}

	overridden := make(map[[2]string]struct{}, len(override))
	for _, p := range override {
		overridden[[2]string{p.Name, p.In}] = struct{}{}
	}

	merged := make([]*Parameter, 0, len(base)+len(override))
	for _, p := range base {
		if _, ok := overridden[[2]string{p.Name, p.In}]; !ok {
			merged = append(merged, p)
		}
	}
	return append(merged, override...)
}

// assignOperation assigns an operation to the path item field for the HTTP
// method. It reports false when the method slot is already taken or the
// method is not part of the Swagger v2.0 path item object.
func assignOperation(item *PathItem, method string, op *Operation) bool {
	var slot **Operation
	switch strings.ToUpper(method) {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPut:
		slot = &item.Put
	case http.MethodPost:
		slot = &item.Post
	case http.MethodDelete:
		slot = &item.Delete
	case http.MethodHead:
		slot = &item.Head
	case http.MethodPatch:
		slot = &item.Patch
	default:
		return false
	}
	if *slot != nil {
		return false
	}
	*slot = op
	return true
}

// methodSupported reports whether the HTTP method has a slot in the path
// item object. OPTIONS is excluded on purpose: preflight endpoints carry no
// documentation value.
func methodSupported(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodPut, http.MethodPost,
		http.MethodDelete, http.MethodHead, http.MethodPatch:
		return true
	}
	return false
}

// normalizePath strips the trailing slash so /garage/ and /garage collapse
// onto one paths entry.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// parsePath extracts {name} and {name:macro} variables from a path
// template, rewrites the template to plain {name} placeholders, and derives
// the required path parameters.
func parsePath(tpl string) (string, []*Parameter) {
	var params []*Parameter

	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		varName, macroName, _ := strings.Cut(inner, ":")

		param := &Parameter{
			Name:     varName,
			In:       InPath,
			Required: true,
			Type:     "string",
		}

		if macroName != "" {
			if typeInfo, ok := macroTypeMap[macroName]; ok {
				param.Type = typeInfo[0]
				param.Format = typeInfo[1]
			}
		}

		params = append(params, param)
		return "{" + varName + "}"
	})

	return path, params
}

// statusDescription returns a fallback description for a response declared
// without one.
func statusDescription(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return strconv.Itoa(code)
}
