package presence

import (
	"context"
	"reflect"
)

// Normalizer is implemented by types that need custom normalization after
// decoding, such as trimming whitespace so that "  " becomes absent.
type Normalizer interface {
	Normalize()
}

// ContextNormalizer is like Normalizer but receives a context.
type ContextNormalizer interface {
	Normalize(context.Context)
}

// Normalize runs every Normalizer and ContextNormalizer reachable from v,
// top level first. Decoders other than [UnmarshalAndCheck] and
// [DecodeAndCheck] call it before [Check].
func Normalize(ctx context.Context, v any) {
	normalizeRecursive(ctx, v)
}

// normalizeRecursive calls Normalize on a, then on every nested value that
// implements Normalizer or ContextNormalizer, parents before children.
func normalizeRecursive(ctx context.Context, a any) {
	if a == nil {
		return
	}
	normalizeValue(ctx, reflect.ValueOf(a))
}

func normalizeValue(ctx context.Context, v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		if v.Elem().Kind() == reflect.Struct {
			normalizeValue(ctx, v.Elem())
			return
		}
		callNormalize(ctx, v)
	case reflect.Struct:
		if v.CanAddr() {
			callNormalize(ctx, v.Addr())
		} else {
			callNormalize(ctx, v)
		}
		t := v.Type()
		for i := range v.NumField() {
			if t.Field(i).IsExported() {
				normalizeValue(ctx, v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			normalizeValue(ctx, v.Index(i))
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			val := iter.Value()
			if val.Kind() != reflect.Struct {
				normalizeValue(ctx, val)
				continue
			}
			// Map values are not addressable; normalize a copy and store it back.
			cp := reflect.New(val.Type()).Elem()
			cp.Set(val)
			normalizeValue(ctx, cp)
			v.SetMapIndex(iter.Key(), cp)
		}
	}
}

func callNormalize(ctx context.Context, v reflect.Value) {
	if !v.CanInterface() {
		return
	}
	switch n := v.Interface().(type) {
	case ContextNormalizer:
		n.Normalize(ctx)
	case Normalizer:
		n.Normalize()
	}
}
