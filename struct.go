package presence

import (
	"context"
	"reflect"
)

// Field creates a FieldRules binding a struct field pointer to its rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// rulesFor returns a fresh addressable instance of t and its field rules if
// *t implements Ruler or ContextRuler.
func rulesFor(t reflect.Type) (reflect.Value, []*FieldRules) {
	inst := reflect.New(t)
	switch r := inst.Interface().(type) {
	case Ruler:
		return inst, r.Rules()
	case ContextRuler:
		return inst, r.Rules(context.Background())
	}
	return reflect.Value{}, nil
}

// expandFields flattens embedded Ruler/ContextRuler field rules into the parent's rule set,
// so promoted fields are documented and checked under their own names.
func expandFields(structPtr reflect.Value, fields []*FieldRules) []*FieldRules {
	structVal := reflect.Indirect(structPtr)
	if !structVal.IsValid() || structVal.Kind() != reflect.Struct {
		return fields
	}

	result := make([]*FieldRules, 0, len(fields))
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() == reflect.Ptr {
			if sf, ok := findStructField(structVal, fv); ok && sf.Anonymous {
				switch r := fv.Interface().(type) {
				case Ruler:
					result = append(result, expandFields(fv, r.Rules())...)
					continue
				case ContextRuler:
					result = append(result, expandFields(fv, r.Rules(context.Background()))...)
					continue
				}
			}
		}
		result = append(result, fr)
	}
	return result
}

// findStructField returns the visible field of structVal whose address is
// fieldPtr. Promoted fields are found with their full index path.
func findStructField(structVal reflect.Value, fieldPtr reflect.Value) (reflect.StructField, bool) {
	if fieldPtr.Kind() != reflect.Ptr || fieldPtr.IsNil() {
		return reflect.StructField{}, false
	}
	ptr := fieldPtr.Pointer()
	elem := fieldPtr.Type().Elem()
	for _, sf := range reflect.VisibleFields(structVal.Type()) {
		fv, err := structVal.FieldByIndexErr(sf.Index)
		if err != nil || !fv.CanAddr() {
			continue
		}
		// The first field shares its address with the struct, so compare types too.
		if fv.Addr().Pointer() == ptr && sf.Type == elem {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}
