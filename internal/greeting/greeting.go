// Package greeting is the demo endpoint: it greets the caller by name and
// shows a mandatory field being enforced at runtime and in the schema.
package greeting

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Gobd/presence"
	"github.com/Gobd/presence/echoguard"
	"github.com/Gobd/presence/openapi"
	"github.com/Gobd/presence/transform"
)

// Path is where the greeting endpoint is mounted.
const Path = "/greeting"

// Request asks for a greeting.
type Request struct {
	Name string `json:"Name"`
}

func (r *Request) Rules() []*presence.FieldRules {
	return []*presence.FieldRules{
		presence.Field(&r.Name, presence.Required, presence.Describe("Who to greet."), presence.Example("Ada")),
	}
}

// Normalize trims whitespace so a blank name counts as absent.
func (r *Request) Normalize() {
	transform.StructTrimSpace(r)
}

// Response carries the greeting.
type Response struct {
	Greeting string `json:"Greeting" presence:"required"`
}

// Greet shouts a greeting at req.Name.
func Greet(req Request) Response {
	return Response{Greeting: "HELLO " + strings.ToUpper(req.Name)}
}

// Register mounts the endpoint on e and documents it with docs.
// failureStatus is the status rejected requests are answered with.
func Register(e *echo.Echo, docs *openapi.Builder, failureStatus int) {
	e.POST(Path, echoguard.Handle(func(_ echo.Context, req Request) (Response, error) {
		return Greet(req), nil
	}))

	docs.Post(Path, "greet", openapi.Endpoint{
		Summary:       "Greet someone",
		Request:       Request{},
		FailureStatus: failureStatus,
		Responses: map[string]openapi.Response{
			"200": {Desc: "The greeting", Bodies: []any{Response{}}},
		},
	})
}

