package presence

import (
	"fmt"
	"reflect"
)

// Check reports the mandatory fields of v that are absent, using [DefaultExtractor].
// See [Extractor.Check].
func Check(v any) error {
	return DefaultExtractor.Check(v)
}

// Check inspects a decoded request and returns [Failures] naming every
// mandatory field that is absent, or nil when all of them carry a value.
//
// Nested objects are checked too and reported under their wire path, such
// as "address.street" or "items[2].name". An optional non-pointer struct
// left at its zero value counts as not sent and is not descended into.
//
// A nil request, a nil pointer and non-struct values pass. v is only read.
func (e *Extractor) Check(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	c := checker{e: e}
	c.object("", rv)
	if len(c.failures) > 0 {
		return c.failures
	}
	return nil
}

type checker struct {
	e        *Extractor
	failures Failures
	seen     map[uintptr]bool
}

func (c *checker) object(prefix string, rv reflect.Value) {
	for _, fd := range c.e.Fields(rv.Type()) {
		key := prefix + fd.JSONName
		fv, err := rv.FieldByIndexErr(fd.Index)
		if err != nil || isAbsent(fv) {
			if fd.Required {
				c.fail(key)
			}
			continue
		}
		c.value(key, fv)
	}
}

func (c *checker) value(key string, v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() || c.seen[v.Pointer()] {
			return
		}
		if c.seen == nil {
			c.seen = map[uintptr]bool{}
		}
		c.seen[v.Pointer()] = true
		c.value(key, v.Elem())
		delete(c.seen, v.Pointer())
	case reflect.Struct:
		if _, ok := asAbsenter(v); ok {
			return
		}
		c.object(key+".", v)
	case reflect.Slice, reflect.Array:
		if structType(v.Type().Elem()) == nil {
			return
		}
		for i := range v.Len() {
			c.value(fmt.Sprintf("%s[%d]", key, i), v.Index(i))
		}
	case reflect.Map:
		if structType(v.Type().Elem()) == nil {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			c.value(fmt.Sprintf("%s[%v]", key, iter.Key()), iter.Value())
		}
	}
}

func (c *checker) fail(key string) {
	if c.failures == nil {
		c.failures = Failures{}
	}
	c.failures.Add(key, key+" is required. It cannot be deserialized to null.")
}
