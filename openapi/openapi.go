package openapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Gobd/presence"
	"github.com/getkin/kin-openapi/openapi3"
)

// Builder adds operations to Doc, generating every body schema with
// Annotator. A nil Annotator means a zero presence.Annotator. A Builder is
// meant to be used from one goroutine while the document is assembled.
type Builder struct {
	Doc       *openapi3.T
	Annotator *presence.Annotator
}

// NewBuilder returns a Builder for doc using a.
func NewBuilder(doc *openapi3.T, a *presence.Annotator) *Builder {
	return &Builder{Doc: doc, Annotator: a}
}

func (b *Builder) annotator() *presence.Annotator {
	if b.Annotator == nil {
		return &presence.Annotator{}
	}
	return b.Annotator
}

// Response describes an HTTP response with a description and body types for schema generation.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint describes a single API operation for the convenience helpers
// [Get], [Post], [Put], [Patch], and [Delete].
type Endpoint struct {
	Summary     string
	Description string
	Request     any                 // single request body type (convenience)
	Requests    []any               // multiple request body types (oneOf)
	Response    any                 // single 200 response type (convenience)
	Responses   map[string]Response // full response map (overrides Response if both set)

	// FailureStatus is the status documented for rejected request bodies.
	// Zero means 400. It is ignored when Responses already has that status.
	FailureStatus int
}

// NewRequestMust is like [NewRequest] but panics on error.
func NewRequestMust(vs ...any) *openapi3.RequestBodyRef {
	o, err := NewRequest(vs...)
	if err != nil {
		panic(err)
	}
	return o
}

// NewRequest generates a required JSON request body from the given value
// types with a zero presence.Annotator.
func NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	return (&Builder{}).NewRequest(vs...)
}

// NewRequest generates a required JSON request body from the given value types.
func (b *Builder) NewRequest(vs ...any) (*openapi3.RequestBodyRef, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	refs := make(openapi3.SchemaRefs, 0, len(vs))
	for i := range vs {
		schema, err := b.annotator().NewSchemaRefForValue(vs[i])
		if err != nil {
			return nil, err
		}
		refs = append(refs, schema)
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.NewContentWithJSONSchemaRef(oneOf(refs)))
	return &openapi3.RequestBodyRef{Value: body}, nil
}

// NewResponseMust is like [NewResponse] but panics on error.
// Map key is status code (e.g. "200", "4xx").
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object with a zero
// presence.Annotator. Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	return (&Builder{}).NewResponse(vs)
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func (b *Builder) NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))
	for statusCode, resp := range vs {
		desc := resp.Desc

		refs := make(openapi3.SchemaRefs, 0, len(resp.Bodies))
		for _, body := range resp.Bodies {
			schema, err := b.annotator().NewSchemaRefForValue(body)
			if err != nil {
				return nil, err
			}
			refs = append(refs, schema)
		}

		r := &openapi3.Response{Description: &desc}
		if len(refs) > 0 {
			r.Content = openapi3.NewContentWithJSONSchemaRef(oneOf(refs))
		}
		opts = append(opts, openapi3.WithName(statusCode, r))
	}

	return openapi3.NewResponses(opts...), nil
}

// oneOf returns the only ref, or a oneOf wrapper around several.
func oneOf(refs openapi3.SchemaRefs) *openapi3.SchemaRef {
	if len(refs) == 1 {
		return refs[0]
	}
	return openapi3.NewSchemaRef("", &openapi3.Schema{OneOf: refs})
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	s.Paths.Set(path, p)
}

// addEndpoint builds an [openapi3.Operation] from ep and registers it at path+method.
func (b *Builder) addEndpoint(path, method, operationID string, ep Endpoint) {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
	}

	switch {
	case len(ep.Requests) > 0:
		op.RequestBody = must(b.NewRequest(ep.Requests...))
	case ep.Request != nil:
		op.RequestBody = must(b.NewRequest(ep.Request))
	}

	responses := ep.Responses
	if responses == nil && ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{ep.Response}},
		}
	}
	if responses != nil {
		op.Responses = must(b.NewResponse(responses))
	} else {
		op.Responses = openapi3.NewResponses()
	}

	if op.RequestBody != nil {
		status := ep.FailureStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		if op.Responses.Status(status) == nil {
			desc := "Mandatory fields are absent"
			op.Responses.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: &openapi3.Response{
				Description: &desc,
				Content:     openapi3.NewContentWithJSONSchema(FailuresSchema()),
			}})
		}
	}

	AddPath(path, method, b.Doc, op)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Get registers a GET endpoint on Doc.
func (b *Builder) Get(path, operationID string, ep Endpoint) {
	b.addEndpoint(path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on Doc.
func (b *Builder) Post(path, operationID string, ep Endpoint) {
	b.addEndpoint(path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint on Doc.
func (b *Builder) Put(path, operationID string, ep Endpoint) {
	b.addEndpoint(path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint on Doc.
func (b *Builder) Patch(path, operationID string, ep Endpoint) {
	b.addEndpoint(path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint on Doc.
func (b *Builder) Delete(path, operationID string, ep Endpoint) {
	b.addEndpoint(path, http.MethodDelete, operationID, ep)
}

// Get registers a GET endpoint on doc with a zero presence.Annotator.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	NewBuilder(doc, nil).Get(path, operationID, ep)
}

// Post registers a POST endpoint on doc with a zero presence.Annotator.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	NewBuilder(doc, nil).Post(path, operationID, ep)
}

// Put registers a PUT endpoint on doc with a zero presence.Annotator.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) {
	NewBuilder(doc, nil).Put(path, operationID, ep)
}

// Patch registers a PATCH endpoint on doc with a zero presence.Annotator.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) {
	NewBuilder(doc, nil).Patch(path, operationID, ep)
}

// Delete registers a DELETE endpoint on doc with a zero presence.Annotator.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) {
	NewBuilder(doc, nil).Delete(path, operationID, ep)
}
