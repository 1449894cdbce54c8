package presence

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// docRule is a documentation-only rule: it never fails validation.
type docRule struct {
	describe func(ref *openapi3.SchemaRef)
}

func (r docRule) Validate(any) error { return nil }

func (r docRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r.describe(ref)
	return nil
}

// Describe returns a documentation-only rule that appends desc to the schema description.
func Describe(desc string) Rule {
	return docRule{func(ref *openapi3.SchemaRef) {
		appendDescription(ref.Value, desc)
	}}
}

// Example returns a documentation-only rule that sets the schema example value.
func Example(ex any) Rule {
	return docRule{func(ref *openapi3.SchemaRef) {
		ref.Value.Example = ex
	}}
}

// Default returns a documentation-only rule that sets the schema default value.
func Default(a any) Rule {
	return docRule{func(ref *openapi3.SchemaRef) {
		ref.Value.Default = a
	}}
}

// Deprecate returns a documentation-only rule that marks the field as deprecated.
func Deprecate() Rule {
	return docRule{func(ref *openapi3.SchemaRef) {
		ref.Value.Deprecated = true
	}}
}

func appendDescription(s *openapi3.Schema, desc string) {
	if s.Description != "" && !strings.HasSuffix(s.Description, " ") {
		s.Description += " "
	}
	s.Description += desc
}
