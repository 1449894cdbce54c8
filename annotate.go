package presence

import (
	"reflect"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Annotator marks mandatory fields as required and non-nullable on generated
// schemas. A zero Annotator uses [DefaultExtractor] and [CamelCase].
type Annotator struct {
	// Extractor supplies field metadata. Nil means DefaultExtractor.
	Extractor *Extractor
	// Naming is the schema generator's naming policy. Nil means CamelCase.
	Naming NamingPolicy
}

// NewAnnotator returns an Annotator over [DefaultExtractor] using naming.
func NewAnnotator(naming NamingPolicy) *Annotator {
	return &Annotator{Extractor: DefaultExtractor, Naming: naming}
}

// Annotate applies a zero [Annotator] to schema.
func Annotate(t reflect.Type, schema *openapi3.Schema) {
	(&Annotator{}).Annotate(t, schema)
}

// Annotate replaces schema.Required with the property keys that correspond
// to t's mandatory fields and clears Nullable on those properties.
//
// Fields whose type cannot be nil are absent at their zero value, so their
// properties also reject it: minLength 1 for strings, not 0 for numbers,
// only true for booleans, and a note in the description for anything else.
//
// A property matches a field by Go name, by json name, or by the Go name
// passed through the naming policy. Mandatory fields without a property are
// ignored. Running Annotate again on the result changes nothing.
func (a *Annotator) Annotate(t reflect.Type, schema *openapi3.Schema) {
	if schema == nil {
		return
	}
	st := structType(t)
	required := a.extractor().RequiredFields(st)

	var matched []string
	for key, prop := range schema.Properties {
		i := slices.IndexFunc(required, func(fd FieldDescriptor) bool { return a.matches(fd, key) })
		if i < 0 {
			continue
		}
		matched = append(matched, key)
		if prop != nil && prop.Value != nil {
			prop.Value.Nullable = false
			rejectZero(st.FieldByIndex(required[i].Index).Type, prop.Value)
		}
	}
	slices.Sort(matched)
	schema.Required = matched
}

// ZeroValueNote is appended to the description of mandatory properties whose
// zero value the guard rejects but the schema cannot express.
const ZeroValueNote = "The zero value counts as absent."

var absenterType = reflect.TypeFor[Absenter]()

func rejectZero(ft reflect.Type, prop *openapi3.Schema) {
	if reflect.PointerTo(ft).Implements(absenterType) {
		return
	}
	switch ft.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return
	case reflect.String:
		if prop.Type.Is(openapi3.TypeString) {
			prop.MinLength = max(prop.MinLength, 1)
			return
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		if prop.Type.Is(openapi3.TypeInteger) || prop.Type.Is(openapi3.TypeNumber) {
			if prop.Not == nil {
				prop.Not = openapi3.NewSchemaRef("", &openapi3.Schema{Enum: []any{float64(0)}})
			}
			return
		}
	case reflect.Bool:
		if prop.Type.Is(openapi3.TypeBoolean) {
			if prop.Enum == nil {
				prop.Enum = []any{true}
			}
			return
		}
	}
	if !strings.Contains(prop.Description, ZeroValueNote) {
		appendDescription(prop, ZeroValueNote)
	}
}

func (a *Annotator) matches(fd FieldDescriptor, key string) bool {
	return key == fd.Name || key == fd.JSONName || key == a.naming()(fd.Name)
}

func (a *Annotator) extractor() *Extractor {
	if a.Extractor == nil {
		return DefaultExtractor
	}
	return a.Extractor
}

func (a *Annotator) naming() NamingPolicy {
	if a.Naming == nil {
		return CamelCase
	}
	return a.Naming
}
