// Package categorize handles one-shot transaction categorization
package categorize

import (
	"fmt"

	"fintouch/assistant/cmd/root"
	"fintouch/assistant/internal/categorize"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/spf13/cobra"
)

var (
	description string
	threshold   float64
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description using Gemini model",
	Long: `Categorize a transaction description against the category catalog.

The confidence threshold decides whether the suggested category is
accepted or the fallback is applied instead.

Example:
  fintouch-assistant categorize -d "uber al aeropuerto"`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().Float64VarP(&threshold, "threshold", "t", -1, "Confidence threshold (defaults to the configured value)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Categorize command called")

	invoker, err := root.NewInvoker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = invoker.Close() }()

	categories, err := root.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load category catalog: %w", err)
	}

	if threshold < 0 {
		threshold = root.Cfg.Categorization.ConfidenceThreshold
	}

	svc := categorize.NewService(invoker, root.Cfg.AI.Model, root.Log)
	result := svc.Infer(cmd.Context(), description, models.CategoryNames(categories))

	root.Log.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: result.Category},
		logging.Field{Key: logging.FieldConfidence, Value: result.Confidence},
	).Info("Categorization result")

	if result.Confidence < threshold {
		fmt.Printf("%s (confidence %.2f below threshold %.2f, suggested: %s)\n",
			models.CategoryFallback, result.Confidence, threshold, result.Category)
		return nil
	}
	fmt.Printf("%s (confidence %.2f)\n", result.Category, result.Confidence)
	return nil
}
