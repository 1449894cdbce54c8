package greeting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/presence"
	"github.com/Gobd/presence/internal/greeting"
)

func TestGreet(t *testing.T) {
	assert.Equal(t, greeting.Response{Greeting: "HELLO ADA"}, greeting.Greet(greeting.Request{Name: "Ada"}))
}

func TestRequestRejectsMissingName(t *testing.T) {
	var req greeting.Request
	err := presence.UnmarshalAndCheck([]byte(`{}`), &req)

	failures, ok := presence.AsFailures(err)
	require.True(t, ok)
	assert.Equal(t, presence.Failures{
		"Name": {"Name is required. It cannot be deserialized to null."},
	}, failures)
}

func TestRequestAcceptsName(t *testing.T) {
	var req greeting.Request
	require.NoError(t, presence.UnmarshalAndCheck([]byte(`{"Name":"Ada"}`), &req))
	assert.Equal(t, "Ada", req.Name)
}

func TestRequestSchema(t *testing.T) {
	ref, err := presence.NewSchemaRefForValue(greeting.Request{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name"}, ref.Value.Required)
	name := ref.Value.Properties["Name"].Value
	assert.False(t, name.Nullable)
	assert.Equal(t, "Who to greet.", name.Description)
	assert.Equal(t, "Ada", name.Example)
}

func TestRequestRejectsBlankName(t *testing.T) {
	var req greeting.Request
	err := presence.UnmarshalAndCheck([]byte(`{"Name":"   "}`), &req)

	failures, ok := presence.AsFailures(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Name"}, failures.Fields())
}

func TestRequestTrimsName(t *testing.T) {
	var req greeting.Request
	require.NoError(t, presence.UnmarshalAndCheck([]byte(`{"Name":"  Ada "}`), &req))
	assert.Equal(t, "Ada", req.Name)
}
