package presence

import (
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// NewSchemaRefForValue generates an OpenAPI schema for value with a zero
// [Annotator]. See [Annotator.NewSchemaRefForValue].
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	return (&Annotator{}).NewSchemaRefForValue(value)
}

// NewSchemaRefForValue generates an OpenAPI schema for value whose struct
// schemas have been annotated with their mandatory fields and documented
// with their field rules. Untagged exported fields are included under their
// Go name, as encoding/json reads them.
func (a *Annotator) NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(
		openapi3gen.UseAllExportedFields(),
		openapi3gen.SchemaCustomizer(a.SchemaCustomizer()),
	)
	return g.NewSchemaRefForValue(value, nil)
}

// SchemaCustomizer returns an openapi3gen customizer that runs after the
// generic schema of each struct type has been built.
func (a *Annotator) SchemaCustomizer() openapi3gen.SchemaCustomizerFn {
	return func(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
		st := structType(t)
		if st == nil {
			return nil
		}
		removeSkippedFields(st, schema)
		a.Annotate(st, schema)
		return describeFields(st, schema)
	}
}

// removeSkippedFields deletes schema properties for fields tagged with docs:"skip".
func removeSkippedFields(t reflect.Type, schema *openapi3.Schema) {
	for _, sf := range reflect.VisibleFields(t) {
		if strings.Split(sf.Tag.Get("docs"), ",")[0] != "skip" {
			continue
		}
		delete(schema.Properties, jsonName(sf))
	}
}

// describeFields calls Describe on the rules of each field that has a
// matching schema property.
func describeFields(t reflect.Type, schema *openapi3.Schema) error {
	inst, fields := rulesFor(t)
	if len(fields) == 0 {
		return nil
	}
	fields = expandFields(inst, fields)
	structVal := inst.Elem()
	for _, fr := range fields {
		sf, ok := findStructField(structVal, reflect.ValueOf(fr.fieldPtr))
		if !ok || sf.Anonymous {
			continue
		}
		fr.tag = jsonName(sf)
		propRef, ok := schema.Properties[fr.tag]
		if !ok || propRef == nil || propRef.Value == nil {
			continue
		}
		for _, rule := range fr.rules {
			if err := rule.Describe(fr.tag, schema, propRef); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonName returns the json tag name of sf, or its Go name when untagged.
func jsonName(sf reflect.StructField) string {
	if name := strings.Split(sf.Tag.Get("json"), ",")[0]; name != "" {
		return name
	}
	return sf.Name
}
