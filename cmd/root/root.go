// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/catalog"
	"fintouch/assistant/internal/config"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced with the
	// configured logger once the root command's PersistentPreRun has run.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration, available to subcommands.
	Cfg *config.Config

	// CatalogFile overrides the configured category catalog location.
	CatalogFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintouch-assistant",
		Short: "AI services for personal finance: categorization, extraction and insights.",
		Long: `fintouch-assistant runs the Gemini-backed services behind a personal
finance application. It can categorize transaction descriptions, extract
transactions from voice notes and receipts, suggest icons for categories
and generate spending insights, either as one-shot commands or as an
HTTP server.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintouch-assistant!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			return nil
		},
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVar(&CatalogFile, "catalog", "", "Category catalog YAML file (defaults to the built-in catalog)")
}

// NewInvoker builds a Gemini invoker from the loaded configuration.
func NewInvoker(ctx context.Context) (*ai.GeminiInvoker, error) {
	if Cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return ai.NewGeminiInvoker(ctx, Cfg.AI.APIKey, Log)
}

// LoadCatalog loads the category catalog from the --catalog flag, the
// configured file, or the built-in defaults, in that order.
func LoadCatalog() ([]models.Category, error) {
	file := CatalogFile
	if file == "" {
		file = Cfg.Catalog.File
	}
	return catalog.NewStore(file, Log).Load()
}
