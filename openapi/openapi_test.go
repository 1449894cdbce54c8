package openapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/presence"
	"github.com/Gobd/presence/openapi"
)

type item struct {
	Name  string  `json:"name" presence:"required"`
	Price float64 `json:"price" presence:"required"`
	Note  *string `json:"note"`
}

type itemPatch struct {
	Name *string `json:"name"`
}

type problem struct {
	Error string `json:"error"`
}

func jsonSchema(t *testing.T, c openapi3.Content) *openapi3.Schema {
	t.Helper()
	mt := c.Get("application/json")
	require.NotNil(t, mt)
	return mt.Schema.Value
}

func TestNewRequest(t *testing.T) {
	body, err := openapi.NewRequest(item{})
	require.NoError(t, err)

	assert.True(t, body.Value.Required)
	s := jsonSchema(t, body.Value.Content)
	assert.Equal(t, []string{"name", "price"}, s.Required)
	assert.False(t, s.Properties["name"].Value.Nullable)
}

func TestNewRequestOneOf(t *testing.T) {
	body, err := openapi.NewRequest(item{}, itemPatch{})
	require.NoError(t, err)

	s := jsonSchema(t, body.Value.Content)
	require.Len(t, s.OneOf, 2)
	assert.Equal(t, []string{"name", "price"}, s.OneOf[0].Value.Required)
	assert.Empty(t, s.OneOf[1].Value.Required)
}

func TestNewRequestNoValues(t *testing.T) {
	_, err := openapi.NewRequest()
	assert.Error(t, err)
	assert.Panics(t, func() { openapi.NewRequestMust() })
}

func TestNewResponse(t *testing.T) {
	resps, err := openapi.NewResponse(map[string]openapi.Response{
		"200": {Desc: "OK", Bodies: []any{item{}}},
		"204": {Desc: "No content"},
	})
	require.NoError(t, err)

	ok := resps.Status(http.StatusOK).Value
	assert.Equal(t, "OK", *ok.Description)
	assert.Equal(t, []string{"name", "price"}, jsonSchema(t, ok.Content).Required)
	assert.Nil(t, resps.Status(http.StatusNoContent).Value.Content)

	_, err = openapi.NewResponse(nil)
	assert.Error(t, err)
}

func TestPostDocumentsFailures(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{
		Summary:  "Create an item",
		Request:  item{},
		Response: item{},
	})

	op := doc.Paths.Value("/items").Post
	require.NotNil(t, op)
	assert.Equal(t, "createItem", op.OperationID)

	bad := op.Responses.Status(http.StatusBadRequest)
	require.NotNil(t, bad)
	fs := jsonSchema(t, bad.Value.Content)
	require.NotNil(t, fs.AdditionalProperties.Schema)
	assert.True(t, fs.AdditionalProperties.Schema.Value.Type.Is(openapi3.TypeArray))

	require.NoError(t, doc.Validate(context.Background()))
}

func TestFailureStatusAndExplicitResponses(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Put(doc, "/items/{id}", "replaceItem", openapi.Endpoint{
		Request:       item{},
		FailureStatus: http.StatusUnprocessableEntity,
	})
	openapi.Patch(doc, "/items/{id}", "patchItem", openapi.Endpoint{
		Request: itemPatch{},
		Responses: map[string]openapi.Response{
			"400": {Desc: "Custom problem", Bodies: []any{problem{}}},
		},
	})

	put := doc.Paths.Value("/items/{id}").Put
	assert.NotNil(t, put.Responses.Status(http.StatusUnprocessableEntity))
	assert.Nil(t, put.Responses.Status(http.StatusBadRequest))

	patch := doc.Paths.Value("/items/{id}").Patch
	assert.Equal(t, "Custom problem", *patch.Responses.Status(http.StatusBadRequest).Value.Description)
}

func TestGetAndDeleteHaveNoFailureResponse(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Get(doc, "/items", "listItems", openapi.Endpoint{Response: []item{}})
	openapi.Delete(doc, "/items", "purgeItems", openapi.Endpoint{})

	p := doc.Paths.Value("/items")
	assert.Nil(t, p.Get.RequestBody)
	assert.Nil(t, p.Get.Responses.Status(http.StatusBadRequest))
	assert.NotNil(t, p.Delete)
}

func TestBuilderUsesItsAnnotator(t *testing.T) {
	type signup struct {
		FirstName string `presence:"required"`
		Nickname  string
	}
	var e presence.Extractor
	e.Declare(reflect.TypeFor[signup](), "Nickname")

	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	docs := openapi.NewBuilder(doc, &presence.Annotator{Extractor: &e, Naming: presence.SnakeCase})
	docs.Post("/signup", "signup", openapi.Endpoint{Request: signup{}})

	s := jsonSchema(t, doc.Paths.Value("/signup").Post.RequestBody.Value.Content)
	assert.Contains(t, s.Properties, "FirstName")
	assert.Equal(t, []string{"FirstName", "Nickname"}, s.Required)

	plain := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Post(plain, "/signup", "signup", openapi.Endpoint{Request: signup{}})
	s = jsonSchema(t, plain.Paths.Value("/signup").Post.RequestBody.Value.Content)
	assert.Equal(t, []string{"FirstName"}, s.Required, "package helpers use the default extractor")
}

func TestDocsHandler(t *testing.T) {
	doc := openapi.DocBase("Shop API", "Example API", "1.0.0")
	openapi.Post(doc, "/items", "createItem", openapi.Endpoint{Request: item{}, Response: item{}})

	h, err := openapi.DocsHandler(doc)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "3.0.3", got["openapi"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openapi.json", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDocsHandlerInvalidDocument(t *testing.T) {
	doc := openapi.DocBase("", "", "")
	_, err := openapi.DocsHandler(doc)
	assert.Error(t, err)
	assert.Panics(t, func() { openapi.DocsHandlerMust(doc) })
}
