package transform

import (
	"reflect"
	"strings"
)

// StructTrimSpace runs [strings.TrimSpace] on every string reachable from v.
func StructTrimSpace(v any) {
	StructStringFunc(v, strings.TrimSpace)
}

// StructStringFunc applies f to every settable string reachable from v, a
// pointer to a struct. Nested structs, non-nil pointers, slices, arrays and
// map values are followed; interface fields are left alone.
func StructStringFunc(v any, f func(string) string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rewrite(rv.Elem(), f)
}

func rewrite(v reflect.Value, f func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(f(v.String()))
		}
	case reflect.Pointer:
		if !v.IsNil() {
			rewrite(v.Elem(), f)
		}
	case reflect.Struct:
		t := v.Type()
		for i := range v.NumField() {
			if t.Field(i).IsExported() {
				rewrite(v.Field(i), f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			rewrite(v.Index(i), f)
		}
	case reflect.Map:
		if v.IsNil() {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			// Map values are not addressable; rewrite a copy and store it back.
			cp := reflect.New(iter.Value().Type()).Elem()
			cp.Set(iter.Value())
			rewrite(cp, f)
			v.SetMapIndex(iter.Key(), cp)
		}
	}
}
