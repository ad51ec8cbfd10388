// Package server exposes the AI services over HTTP. It is a thin transport
// layer: catalogs, currencies and dates always come from the request, the
// server holds no per-user state.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fintouch/assistant/internal/categorize"
	"fintouch/assistant/internal/extract"
	"fintouch/assistant/internal/icons"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/summary"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Server wires the AI services into an HTTP handler.
type Server struct {
	categorizer   *categorize.Service
	extractor     *extract.Service
	summarizer    *summary.Service
	iconSuggester *icons.Service
	log           logging.Logger
	maxAudioBytes int64
}

// Options bundles the collaborators a Server needs.
type Options struct {
	Categorizer   *categorize.Service
	Extractor     *extract.Service
	Summarizer    *summary.Service
	IconSuggester *icons.Service
	Logger        logging.Logger
	MaxAudioBytes int64
}

// New creates a Server from its collaborators.
func New(opts Options) *Server {
	return &Server{
		categorizer:   opts.Categorizer,
		extractor:     opts.Extractor,
		summarizer:    opts.Summarizer,
		iconSuggester: opts.IconSuggester,
		log:           opts.Logger,
		maxAudioBytes: opts.MaxAudioBytes,
	}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(metricsMiddleware(metrics))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/categorize", s.handleCategorize)
		r.Post("/transactions/audio", s.handleAudio)
		r.Post("/transactions/receipt", s.handleReceipt)
		r.Post("/summary", s.handleSummary)
		r.Post("/icons/suggest", s.handleIcons)
	})

	return r
}

// RunConfig carries the listener settings for Run.
type RunConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves the handler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, handler http.Handler, cfg RunConfig, log logging.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", cfg.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
