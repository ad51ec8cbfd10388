// Package serve runs the HTTP server exposing the AI services
package serve

import (
	"os/signal"
	"syscall"
	"time"

	"fintouch/assistant/cmd/root"
	"fintouch/assistant/internal/categorize"
	"fintouch/assistant/internal/extract"
	"fintouch/assistant/internal/icons"
	"fintouch/assistant/internal/server"
	"fintouch/assistant/internal/summary"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serve the AI services over HTTP.

Endpoints are mounted under /v1 (categorize, transactions/audio,
transactions/receipt, summary, icons/suggest), with /healthz and
Prometheus metrics on /metrics.

Example:
  fintouch-assistant serve`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	invoker, err := root.NewInvoker(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := invoker.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close Gemini client")
		}
	}()

	cfg := root.Cfg
	srv := server.New(server.Options{
		Categorizer:   categorize.NewService(invoker, cfg.AI.Model, root.Log),
		Extractor:     extract.NewService(invoker, cfg.AI.FallbackModel, root.Log),
		Summarizer:    summary.NewService(invoker, cfg.AI.Model, cfg.AI.FallbackModel, root.Log),
		IconSuggester: icons.NewService(invoker, cfg.AI.FallbackModel, root.Log),
		Logger:        root.Log,
		MaxAudioBytes: cfg.Server.MaxAudioBytes,
	})

	handler := srv.Router(server.NewMetrics())

	// Durations were validated when the configuration loaded.
	readTimeout, _ := time.ParseDuration(cfg.Server.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.Server.WriteTimeout)
	shutdownTimeout, _ := time.ParseDuration(cfg.Server.ShutdownTimeout)

	return server.Run(ctx, handler, server.RunConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, root.Log)
}
