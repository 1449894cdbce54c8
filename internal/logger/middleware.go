package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Gobd/presence"
)

// Middleware logs one line per request. Client errors, including requests
// rejected for absent mandatory fields, are logged at info; server errors
// at error.
func Middleware(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = log.Error().Err(err)
			case status >= 400:
				event = log.Info()
			default:
				event = log.Debug()
			}
			if failures, ok := presence.AsFailures(err); ok {
				event = event.Strs("absent_fields", failures.Fields())
			}
			event.
				Str("method", req.Method).
				Str("path", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
