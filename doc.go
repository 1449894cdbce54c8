// Package presence keeps request models, their runtime checks, and their
// OpenAPI 3 schemas in agreement about which fields are mandatory.
//
// A field is mandatory when its struct tag says so, when its type binds it
// with [Required] in Rules(), or when it was declared with [Declare]:
//
//	type GreetingRequest struct {
//	    Name string `json:"name" presence:"required"`
//	}
//
// After the request body has been decoded, [Check] rejects the request if a
// mandatory field was left absent by the decoder:
//
//	if err := presence.Check(&req); err != nil {
//	    // err is a Failures map: {"name": ["name is required. ..."]}
//	}
//
// While the schema is generated, [Annotate] (or [NewSchemaRefForValue]) marks
// the same fields as required and non-nullable.
//
// Sub-packages:
//   - openapi – document helpers that generate annotated request and response bodies
//   - echoguard – echo validator, binder and error handler built on [Check]
package presence
