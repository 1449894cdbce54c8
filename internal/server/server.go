// Package server assembles the greeting service: echo with the presence
// guard, request logging, the greeting endpoint and its OpenAPI document.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Gobd/presence"
	"github.com/Gobd/presence/echoguard"
	"github.com/Gobd/presence/internal/config"
	"github.com/Gobd/presence/internal/greeting"
	"github.com/Gobd/presence/internal/logger"
	"github.com/Gobd/presence/openapi"
)

const shutdownTimeout = 10 * time.Second

// Server is the configured echo instance and the document it serves.
type Server struct {
	Echo *echo.Echo
	Doc  *openapi3.T

	cfg *config.Config
	log zerolog.Logger
}

// Document builds the OpenAPI document for cfg without starting anything.
func Document(cfg *config.Config) *openapi3.T {
	docs := newDocs(cfg)
	greeting.Register(echo.New(), docs, cfg.Validation.Status)
	return docs.Doc
}

// newDocs returns a builder over an empty document whose schemas follow the
// configured naming policy.
func newDocs(cfg *config.Config) *openapi.Builder {
	doc := openapi.DocBase(cfg.Docs.Title, "Greets people by name.", cfg.Docs.Version)
	return openapi.NewBuilder(doc, presence.NewAnnotator(cfg.Validation.NamingPolicy()))
}

// New wires the routes, the guard and the docs endpoint.
func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = echoguard.NewValidator(echoguard.NewPlayground())
	e.HTTPErrorHandler = echoguard.ErrorHandler(cfg.Validation.Status, e.DefaultHTTPErrorHandler)
	e.Use(logger.Middleware(log))

	docs := newDocs(cfg)
	greeting.Register(e, docs, cfg.Validation.Status)
	doc := docs.Doc

	handler, err := openapi.DocsHandler(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	e.GET(cfg.Docs.Path, echo.WrapHandler(handler))

	return &Server{Echo: e, Doc: doc, cfg: cfg, log: log}, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Server.Addr()).Msg("listening")
		errCh <- s.Echo.Start(s.cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Echo.Shutdown(shutdownCtx)
}
