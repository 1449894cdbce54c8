// Package echoguard plugs [presence.Check] into echo's request pipeline.
//
//	e := echo.New()
//	e.Validator = echoguard.NewValidator(echoguard.NewPlayground())
//	e.HTTPErrorHandler = echoguard.ErrorHandler(http.StatusBadRequest, e.DefaultHTTPErrorHandler)
//	e.POST("/greeting", echoguard.Handle(greet))
//
// The guard runs after echo has bound the body and before the handler; a
// rejected request is answered with the field-keyed failure map.
package echoguard
