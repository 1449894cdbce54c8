package presence

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Extractor derives field metadata from request model types and caches it
// per type for the lifetime of the process. The zero value is ready to use.
type Extractor struct {
	cache sync.Map // reflect.Type -> *typeEntry

	mu       sync.Mutex
	declared map[reflect.Type][]string
}

type typeEntry struct {
	once     sync.Once
	fields   []FieldDescriptor
	required []FieldDescriptor
}

// DefaultExtractor is the process-wide Extractor used by the package-level functions.
var DefaultExtractor = &Extractor{}

// RequiredFields returns the mandatory fields of t using [DefaultExtractor].
func RequiredFields(t reflect.Type) []FieldDescriptor {
	return DefaultExtractor.RequiredFields(t)
}

// Declare records fields (Go field names) of T as mandatory in [DefaultExtractor].
// It is meant for startup code, for types that cannot carry tags or rules.
func Declare[T any](fields ...string) {
	DefaultExtractor.Declare(reflect.TypeFor[T](), fields...)
}

// Declare records fields (Go field names) of t as mandatory.
// It panics if t was already resolved, since cached metadata never changes.
func (e *Extractor) Declare(t reflect.Type, fields ...string) {
	t = structType(t)
	if t == nil {
		panic("presence: cannot declare fields on a non-struct type")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.cache.Load(t); ok {
		panic(fmt.Sprintf("presence: Declare(%s) after its metadata was resolved", t))
	}
	if e.declared == nil {
		e.declared = map[reflect.Type][]string{}
	}
	e.declared[t] = append(e.declared[t], fields...)
}

// Fields returns every exported, JSON-visible field of t. Pointers are
// dereferenced; non-struct types have no fields.
func (e *Extractor) Fields(t reflect.Type) []FieldDescriptor {
	if entry := e.entry(t); entry != nil {
		return entry.fields
	}
	return nil
}

// RequiredFields returns the mandatory fields of t in declaration order.
func (e *Extractor) RequiredFields(t reflect.Type) []FieldDescriptor {
	if entry := e.entry(t); entry != nil {
		return entry.required
	}
	return nil
}

func (e *Extractor) entry(t reflect.Type) *typeEntry {
	t = structType(t)
	if t == nil {
		return nil
	}
	v, ok := e.cache.Load(t)
	if !ok {
		// Stored under mu so Declare can never race a resolution.
		e.mu.Lock()
		v, _ = e.cache.LoadOrStore(t, &typeEntry{})
		e.mu.Unlock()
	}
	entry := v.(*typeEntry)
	entry.once.Do(func() {
		e.mu.Lock()
		declared := slices.Clone(e.declared[t])
		e.mu.Unlock()
		e.resolve(t, entry, declared)
	})
	return entry
}

func (e *Extractor) resolve(t reflect.Type, entry *typeEntry, declared []string) {
	marked := map[string]bool{}
	for _, name := range declared {
		marked[name] = true
	}
	for _, name := range ruledRequired(t) {
		marked[name] = true
	}

	for _, f := range jsonFields(t) {
		fd := FieldDescriptor{
			Name:     f.sf.Name,
			JSONName: f.key,
			Index:    f.sf.Index,
			Required: marked[f.sf.Name] || taggedRequired(f.sf.Tag),
		}
		entry.fields = append(entry.fields, fd)
		if fd.Required {
			entry.required = append(entry.required, fd)
		}
	}
}

type jsonField struct {
	sf     reflect.StructField // Index is the full path from the root type
	key    string
	depth  int
	tagged bool
}

// jsonFields lists the fields encoding/json reads for t. Untagged embedded
// structs are flattened; an embedded struct with a json name is a single
// nested field. When several fields share a key, the shallowest wins, then
// the tagged one; any remaining tie hides them all.
func jsonFields(t reflect.Type) []jsonField {
	var all []jsonField
	collectFields(t, nil, 0, map[reflect.Type]bool{}, &all)

	byKey := map[string][]jsonField{}
	for _, f := range all {
		byKey[f.key] = append(byKey[f.key], f)
	}
	var out []jsonField
	for _, fs := range byKey {
		if f, ok := dominant(fs); ok {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b jsonField) int { return slices.Compare(a.sf.Index, b.sf.Index) })
	return out
}

func collectFields(t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool, out *[]jsonField) {
	if visiting[t] {
		return
	}
	visiting[t] = true
	defer delete(visiting, t)

	for i := range t.NumField() {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		path := append(slices.Clone(index), i)
		if sf.Anonymous {
			if et := structType(sf.Type); et != nil && name == "" {
				collectFields(et, path, depth+1, visiting, out)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		sf.Index = path
		key := name
		if key == "" {
			key = sf.Name
		}
		*out = append(*out, jsonField{sf: sf, key: key, depth: depth, tagged: name != ""})
	}
}

func dominant(fs []jsonField) (jsonField, bool) {
	minDepth := slices.MinFunc(fs, func(a, b jsonField) int { return a.depth - b.depth }).depth
	var top, tagged []jsonField
	for _, f := range fs {
		if f.depth != minDepth {
			continue
		}
		top = append(top, f)
		if f.tagged {
			tagged = append(tagged, f)
		}
	}
	switch {
	case len(top) == 1:
		return top[0], true
	case len(tagged) == 1:
		return tagged[0], true
	}
	return jsonField{}, false
}

// taggedRequired reports whether a struct tag marks the field as mandatory,
// either with presence:"required" or with a validate tag containing required.
func taggedRequired(tag reflect.StructTag) bool {
	if slices.Contains(strings.Split(tag.Get("presence"), ","), "required") {
		return true
	}
	for _, part := range strings.Split(tag.Get("validate"), ",") {
		if strings.TrimSpace(part) == "required" {
			return true
		}
	}
	return false
}

// ruledRequired returns the Go names of fields that t's Rules() binds with Required.
func ruledRequired(t reflect.Type) []string {
	inst, fields := rulesFor(t)
	if len(fields) == 0 {
		return nil
	}
	structVal := inst.Elem()
	var names []string
	for _, fr := range expandFields(inst, fields) {
		if !slices.ContainsFunc(fr.rules, isRequiredRule) {
			continue
		}
		if sf, ok := findStructField(structVal, reflect.ValueOf(fr.fieldPtr)); ok {
			names = append(names, sf.Name)
		}
	}
	return names
}

func isRequiredRule(r Rule) bool {
	_, ok := r.(requiredRule)
	return ok
}

func structType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
