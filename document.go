package presence

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// Rule is a field rule that can both validate a value and document itself
	// on an OpenAPI schema. Every Rule is also an ozzo-validation rule.
	Rule interface {
		validation.Rule
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}

	// Ruler is implemented by request models that bind rules to their fields.
	//
	//	func (r *GreetingRequest) Rules() []*presence.FieldRules {
	//	    return []*presence.FieldRules{
	//	        presence.Field(&r.Name, presence.Required, presence.Example("Ada")),
	//	    }
	//	}
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is like Ruler but receives a context.
	// The extractor calls it with context.Background().
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// Absenter lets a field type decide for itself whether it carries a value.
	// Wrapper types such as nullable scalars implement it so that an explicit
	// zero value is distinguishable from a missing one.
	Absenter interface {
		IsAbsent() bool
	}

	// FieldDescriptor describes one exported field of a request model.
	FieldDescriptor struct {
		// Name is the Go field name.
		Name string
		// JSONName is the json tag name, or Name when the field is untagged.
		JSONName string
		// Index is the field's index path, usable with reflect.Value.FieldByIndex.
		Index []int
		// Required reports whether the field is mandatory.
		Required bool
	}
)
