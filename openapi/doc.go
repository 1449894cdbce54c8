// Package openapi builds OpenAPI 3 documents whose request and response
// bodies are generated with [presence.Annotator], so mandatory fields are
// documented as required and non-nullable.
//
// Use [DocBase] to create a base document, register endpoints with [Get],
// [Post], [Put], [Patch], or [Delete], and serve it with [DocsHandler]:
//
//	doc := openapi.DocBase("greeting", "Greets people", "1.0")
//	openapi.Post(doc, "/greeting", "greet", openapi.Endpoint{
//	    Request:  GreetingRequest{},
//	    Response: GreetingResponse{},
//	})
//	http.Handle("/openapi.json", openapi.DocsHandlerMust(doc))
//
// To match schema properties against a naming policy, build through a
// [Builder] carrying its own [presence.Annotator]:
//
//	docs := openapi.NewBuilder(doc, presence.NewAnnotator(presence.SnakeCase))
//	docs.Post("/greeting", "greet", openapi.Endpoint{Request: GreetingRequest{}})
//
// Endpoints with a request body also document the response clients receive
// when [presence.Check] rejects the body.
package openapi
