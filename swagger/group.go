package swagger

// groupDefaults holds the default metadata a Group applies to every
// annotation builder it creates.
type groupDefaults struct {
	tags       []string
	security   []SecurityRequirement
	deprecated bool

	responses map[int]*responseMeta

	consumesContentTypes []string
	producesContentTypes []string
}

// Group provides shared annotation defaults for a logical group of
// operations, akin to a router blueprint. Builders created through the
// group are pre-populated with its defaults; operation-level attachments
// still win per field.
type Group struct {
	spec     *Spec
	defaults groupDefaults
}

// Group creates a new annotation group on the spec.
func (s *Spec) Group() *Group {
	return &Group{spec: s}
}

// Tags appends default tags. Operations created through the group inherit
// them unless they set their own.
func (g *Group) Tags(names ...string) *Group {
	g.defaults.tags = append(g.defaults.tags, names...)
	return g
}

// Security adds a default required security scheme. Re-attaching a scheme
// replaces its scopes.
func (g *Group) Security(scheme string, scopes ...string) *Group {
	if scopes == nil {
		scopes = []string{}
	}
	for _, req := range g.defaults.security {
		if _, ok := req[scheme]; ok {
			req[scheme] = scopes
			return g
		}
	}
	g.defaults.security = append(g.defaults.security, SecurityRequirement{scheme: scopes})
	return g
}

// Deprecated marks all operations in the group as deprecated.
func (g *Group) Deprecated() *Group {
	g.defaults.deprecated = true
	return g
}

// Response adds a shared response for the given status code. An
// operation-level Response call for the same code replaces it.
func (g *Group) Response(code int, description string, v any) *Group {
	if g.defaults.responses == nil {
		g.defaults.responses = make(map[int]*responseMeta)
	}
	g.defaults.responses[code] = &responseMeta{description: description, value: v}
	return g
}

// ConsumesContentTypes sets default consumed content types for the group.
func (g *Group) ConsumesContentTypes(contentTypes ...string) *Group {
	g.defaults.consumesContentTypes = contentTypes
	return g
}

// ProducesContentTypes sets default produced content types for the group.
func (g *Group) ProducesContentTypes(contentTypes ...string) *Group {
	g.defaults.producesContentTypes = contentTypes
	return g
}

// Op returns the annotation builder for the named operation, pre-populated
// with the group defaults. A builder that already exists is returned as-is,
// without applying defaults again.
func (g *Group) Op(name string) *OperationBuilder {
	if b, ok := g.spec.ops[name]; ok {
		return b
	}
	b := g.newBuilderWithDefaults()
	g.spec.ops[name] = b
	return b
}

func (g *Group) newBuilderWithDefaults() *OperationBuilder {
	b := newOperationBuilder()

	if len(g.defaults.tags) > 0 {
		b.Tags(g.defaults.tags...)
	}
	// Requirement maps are copied so an operation-level Security call on a
	// member rewrites its own scopes, not the group's.
	for _, req := range g.defaults.security {
		cp := make(SecurityRequirement, len(req))
		for scheme, scopes := range req {
			cp[scheme] = scopes
		}
		b.meta.security = append(b.meta.security, cp)
	}
	if g.defaults.deprecated {
		b.meta.deprecated = true
	}
	for code, rm := range g.defaults.responses {
		b.meta.responses[code] = &responseMeta{
			description: rm.description,
			value:       rm.value,
			examples:    rm.examples,
		}
	}
	if g.defaults.consumesContentTypes != nil {
		b.meta.consumesContentTypes = g.defaults.consumesContentTypes
	}
	if g.defaults.producesContentTypes != nil {
		b.meta.producesContentTypes = g.defaults.producesContentTypes
	}

	return b
}
