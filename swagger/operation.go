package swagger

// consumedField records one consumed schema: the descriptor, the parameter
// location it lands in, an optional explicit name, and whether the derived
// parameter is required.
type consumedField struct {
	value    any
	location string
	name     string
	required bool
}

// responseMeta records one declared response for a status code.
type responseMeta struct {
	description string
	value       any
	examples    map[string]any
}

// operationMeta is the annotation entry for one operation: the metadata bag
// accumulated by attachment calls before assembly. Scalar fields are
// last-write-wins; list fields accumulate.
type operationMeta struct {
	operationID string
	summary     string
	description string
	tags        []string
	deprecated  bool
	excluded    bool

	consumes   []consumedField
	parameters []consumedField
	produces   any
	security   []SecurityRequirement

	responses map[int]*responseMeta

	consumesContentTypes []string
	producesContentTypes []string
}

// OperationBuilder is the attachment surface for one operation's annotation
// entry. Builders are created lazily by Spec.Op the first time anything is
// attached; attachment order does not matter, and re-attaching a scalar
// field replaces the earlier value.
type OperationBuilder struct {
	meta *operationMeta
}

func newOperationBuilder() *OperationBuilder {
	return &OperationBuilder{
		meta: &operationMeta{
			responses: make(map[int]*responseMeta),
		},
	}
}

// OperationID overrides the operation ID derived from the route's
// operation name.
func (b *OperationBuilder) OperationID(id string) *OperationBuilder {
	b.meta.operationID = id
	return b
}

// Summary sets the operation summary.
func (b *OperationBuilder) Summary(text string) *OperationBuilder {
	b.meta.summary = text
	return b
}

// Description sets the operation description.
func (b *OperationBuilder) Description(text string) *OperationBuilder {
	b.meta.description = text
	return b
}

// Tags adds tags to the operation. Explicit tags replace the group-derived
// tag at assembly time. Duplicates are dropped.
func (b *OperationBuilder) Tags(names ...string) *OperationBuilder {
	for _, name := range names {
		seen := false
		for _, have := range b.meta.tags {
			if have == name {
				seen = true
				break
			}
		}
		if !seen {
			b.meta.tags = append(b.meta.tags, name)
		}
	}
	return b
}

// Deprecated marks or unmarks the operation as deprecated.
func (b *OperationBuilder) Deprecated(v bool) *OperationBuilder {
	b.meta.deprecated = v
	return b
}

// Exclude controls whether the operation is omitted from the document.
func (b *OperationBuilder) Exclude(v bool) *OperationBuilder {
	b.meta.excluded = v
	return b
}

// Consumes declares a consumed schema at the given parameter location.
// Body descriptors become a single schema parameter; non-body object
// descriptors are flattened into one parameter per top-level property at
// assembly time.
func (b *OperationBuilder) Consumes(v any, location string) *OperationBuilder {
	b.meta.consumes = append(b.meta.consumes, consumedField{value: v, location: location})
	return b
}

// ConsumesNamed is Consumes with an explicit parameter name for descriptors
// that do not flatten (scalars, arrays, body schemas).
func (b *OperationBuilder) ConsumesNamed(v any, location, name string) *OperationBuilder {
	b.meta.consumes = append(b.meta.consumes, consumedField{value: v, location: location, name: name})
	return b
}

// Parameter declares one explicit parameter. Explicit parameters win over
// auto-derived parameters with the same name and location.
func (b *OperationBuilder) Parameter(v any, location, name string, required bool) *OperationBuilder {
	b.meta.parameters = append(b.meta.parameters, consumedField{
		value:    v,
		location: location,
		name:     name,
		required: required,
	})
	return b
}

// Produces declares the schema of the success response body. It fills the
// 200 response's schema unless an explicit response for that status
// already declared one.
func (b *OperationBuilder) Produces(v any) *OperationBuilder {
	b.meta.produces = v
	return b
}

// Response declares the response for a status code. Re-declaring a status
// code replaces its description and schema. Pass a nil schema for responses
// without a body.
func (b *OperationBuilder) Response(code int, description string, v any) *OperationBuilder {
	rm := b.meta.responses[code]
	if rm == nil {
		rm = &responseMeta{}
		b.meta.responses[code] = rm
	}
	rm.description = description
	rm.value = v
	return b
}

// ResponseExamples attaches example values, keyed by content type, to the
// response for a status code.
func (b *OperationBuilder) ResponseExamples(code int, examples map[string]any) *OperationBuilder {
	rm := b.meta.responses[code]
	if rm == nil {
		rm = &responseMeta{}
		b.meta.responses[code] = rm
	}
	rm.examples = examples
	return b
}

// Security adds a required security scheme, referencing a name declared in
// the config's security definitions. Re-attaching a scheme replaces its
// scopes instead of duplicating the requirement. Scopes apply to OAuth
// schemes only.
func (b *OperationBuilder) Security(scheme string, scopes ...string) *OperationBuilder {
	if scopes == nil {
		scopes = []string{}
	}
	for _, req := range b.meta.security {
		if _, ok := req[scheme]; ok {
			req[scheme] = scopes
			return b
		}
	}
	b.meta.security = append(b.meta.security, SecurityRequirement{scheme: scopes})
	return b
}

// ConsumesContentTypes overrides the document-wide consumed content types
// for this operation.
func (b *OperationBuilder) ConsumesContentTypes(contentTypes ...string) *OperationBuilder {
	b.meta.consumesContentTypes = contentTypes
	return b
}

// ProducesContentTypes overrides the document-wide produced content types
// for this operation.
func (b *OperationBuilder) ProducesContentTypes(contentTypes ...string) *OperationBuilder {
	b.meta.producesContentTypes = contentTypes
	return b
}
