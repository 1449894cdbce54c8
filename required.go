package presence

import (
	"reflect"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrAbsent is returned by [Required] when used as a plain ozzo-validation rule.
var ErrAbsent = validation.NewError("validation_presence_required", "is required. It cannot be deserialized to null")

type requiredRule struct{}

// Required marks a field as mandatory. It is what the extractor looks for in
// Rules(), and it also works as an ozzo-validation rule that fails on absent
// values.
var Required Rule = requiredRule{}

func (requiredRule) Validate(value any) error {
	if isAbsent(reflect.ValueOf(value)) {
		return ErrAbsent
	}
	return nil
}

func (requiredRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if !slices.Contains(schema.Required, name) {
		schema.Required = append(schema.Required, name)
		slices.Sort(schema.Required)
	}
	if ref != nil && ref.Value != nil {
		ref.Value.Nullable = false
	}
	return nil
}

// isAbsent reports whether v carries no value. Absenter wins; nillable kinds
// are absent when nil; anything else is absent when it is the zero value,
// which is what encoding/json leaves behind for a missing key or null.
func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return true
		}
	}
	if a, ok := asAbsenter(v); ok {
		return a.IsAbsent()
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return false
	}
	return v.IsZero()
}

// asAbsenter returns v, or its address, as an Absenter.
func asAbsenter(v reflect.Value) (Absenter, bool) {
	if v.CanInterface() {
		if a, ok := v.Interface().(Absenter); ok {
			return a, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if a, ok := v.Addr().Interface().(Absenter); ok {
			return a, true
		}
	}
	return nil, false
}
