package echoguard

import (
	"errors"
	"net/http"

	"github.com/Gobd/presence"
	"github.com/labstack/echo/v4"
)

// Bind binds the request into a new T, normalizes it and runs the echo
// validator on it.
// When no validator is registered, presence.Check runs instead, so a bound
// request never skips the guard.
func Bind[T any](c echo.Context) (T, error) {
	var req T
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	presence.Normalize(c.Request().Context(), &req)
	err := c.Validate(&req)
	if errors.Is(err, echo.ErrValidatorNotRegistered) {
		err = presence.Check(&req)
	}
	return req, err
}

// Handle wraps fn into an echo.HandlerFunc that binds and guards the
// request, then writes fn's result as JSON with status 200.
func Handle[T, R any](fn func(c echo.Context, req T) (R, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := Bind[T](c)
		if err != nil {
			return err
		}
		resp, err := fn(c, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// ErrorHandler renders presence.Failures with status and passes every other
// error to next.
func ErrorHandler(status int, next echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		failures, ok := presence.AsFailures(err)
		if !ok {
			next(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		if jerr := c.JSON(status, failures); jerr != nil {
			next(jerr, c)
		}
	}
}
