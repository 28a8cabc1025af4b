// Package server exposes the parser, diagram and scaffold generators over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/chriserin/specdraw/internal/codegen"
	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/db"
	"github.com/chriserin/specdraw/internal/diagram"
	"github.com/chriserin/specdraw/internal/llm"
	"github.com/chriserin/specdraw/internal/metrics"
	"github.com/chriserin/specdraw/internal/prompts"
)

const maxBodyBytes = 10 << 20

// Options configures a Server. Completer and Store may be nil.
type Options struct {
	Completer llm.Completer
	Prompts   *prompts.Loader
	Store     *db.Store
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	Status    config.Status
}

type Server struct {
	opts     Options
	logger   *slog.Logger
	metrics  *metrics.Metrics
	specs    *llm.SpecParser
	diagrams *diagram.Generator
	code     *codegen.Generator
	router   chi.Router
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	diagrams := diagram.NewGenerator(opts.Completer, opts.Prompts, logger).
		OnFallback(func(kind string) { m.LLMFallbacksTotal.WithLabelValues(kind + "_diagram").Inc() })
	code := codegen.NewGenerator(opts.Completer, opts.Prompts, logger).
		OnFallback(func() { m.LLMFallbacksTotal.WithLabelValues("code").Inc() })

	s := &Server{
		opts:     opts,
		logger:   logger,
		metrics:  m,
		specs:    llm.NewSpecParser(opts.Completer, opts.Prompts, logger),
		diagrams: diagrams,
		code:     code,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/generate-diagrams", s.handleGenerateDiagrams)
		r.Post("/generate-sequence-diagram", s.handleGenerateSequence)
		r.Post("/generate-code", s.handleGenerateCode)

		if s.opts.Store != nil {
			r.Get("/history", s.handleHistory)
			r.Get("/history/{id}", s.handleHistoryItem)
		}
	})
	r.Get("/config/status", s.handleConfigStatus)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
