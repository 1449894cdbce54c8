package transform_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gobd/presence/transform"
)

type address struct {
	City string
}

type person struct {
	Name     string
	Nick     *string
	Tags     []string
	Home     address
	Work     *address
	Labels   map[string]string
	Previous map[string]address
	Any      any
	hidden   string
}

func TestStructTrimSpace(t *testing.T) {
	nick := "  ace "
	p := person{
		Name:     "  Ada ",
		Nick:     &nick,
		Tags:     []string{" a", "b "},
		Home:     address{City: " London "},
		Work:     &address{City: "\tCambridge\n"},
		Labels:   map[string]string{"k": " v "},
		Previous: map[string]address{"old": {City: " Paris "}},
		Any:      " left ",
		hidden:   " kept ",
	}

	transform.StructTrimSpace(&p)

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ace", *p.Nick)
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.Equal(t, "London", p.Home.City)
	assert.Equal(t, "Cambridge", p.Work.City)
	assert.Equal(t, "v", p.Labels["k"])
	assert.Equal(t, "Paris", p.Previous["old"].City)
	assert.Equal(t, " left ", p.Any)
	assert.Equal(t, " kept ", p.hidden)
}

func TestStructStringFuncIgnoresNonPointers(t *testing.T) {
	p := person{Name: "ada"}
	transform.StructStringFunc(p, strings.ToUpper)
	assert.Equal(t, "ada", p.Name)

	transform.StructStringFunc((*person)(nil), strings.ToUpper)
	transform.StructStringFunc("ada", strings.ToUpper)
}

func TestStructStringFuncNilFields(t *testing.T) {
	p := person{Name: "ada"}
	transform.StructStringFunc(&p, strings.ToUpper)
	assert.Equal(t, "ADA", p.Name)
	assert.Nil(t, p.Nick)
	assert.Nil(t, p.Labels)
}
