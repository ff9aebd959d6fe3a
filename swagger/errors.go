package swagger

import (
	"fmt"
	"reflect"
)

// UnsupportedTypeError reports a Go type the generator cannot express as a
// Swagger schema (channels, functions, complex numbers, non-string map keys,
// non-empty interfaces).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("swagger: unsupported type %s (kind %s)", e.Type, e.Type.Kind())
}

// InferenceError reports a model field whose descriptor could not be
// resolved to a schema node. Model and Field identify the declaration site.
type InferenceError struct {
	Model string
	Field string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("swagger: cannot infer schema for %s.%s: %v", e.Model, e.Field, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// AssemblyError wraps an inference failure with the route it surfaced on.
// Assembly fails as a whole on the first such error; no partial document is
// ever returned.
type AssemblyError struct {
	Method string
	Path   string
	Err    error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("swagger: building %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }
