package openapi

import (
	"github.com/Gobd/presence"
	"github.com/getkin/kin-openapi/openapi3"
)

// NewSchemaRefForValue generates an annotated OpenAPI schema for value
// with a zero presence.Annotator.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	return presence.NewSchemaRefForValue(value)
}

// FailuresSchema describes the body of a rejected request: an object whose
// keys are field names and whose values are lists of reasons.
func FailuresSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()).WithMinItems(1))
	s.Description = "Mandatory fields that were absent, keyed by field name."
	s.Example = map[string]any{
		"name": []any{"name is required. It cannot be deserialized to null."},
	}
	return s
}
