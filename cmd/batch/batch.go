// Package batch handles batch categorization of CSV files
package batch

import (
	"fmt"
	"os"

	"fintouch/assistant/cmd/root"
	"fintouch/assistant/internal/categorize"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	inputFile   string
	outputFile  string
	concurrency int
)

// Row is one line of a batch categorization file. Category and Confidence
// are filled in by the run.
type Row struct {
	Description string  `csv:"description"`
	Category    string  `csv:"category"`
	Confidence  float64 `csv:"confidence"`
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Categorize a CSV of transaction descriptions",
	Long: `Batch categorize transaction descriptions from a CSV file.

The input file needs a "description" column. The output file carries the
same rows with "category" and "confidence" columns filled in.

Example:
  fintouch-assistant batch -i transactions.csv -o categorized.csv`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	Cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "Number of rows categorized in parallel")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("output")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Batch command called")

	rows, err := readRows(inputFile)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("input file %s has no rows", inputFile)
	}

	invoker, err := root.NewInvoker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = invoker.Close() }()

	categories, err := root.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load category catalog: %w", err)
	}
	names := models.CategoryNames(categories)

	svc := categorize.NewService(invoker, root.Cfg.AI.Model, root.Log)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i := range rows {
		g.Go(func() error {
			result := svc.Infer(ctx, rows[i].Description, names)
			rows[i].Category = result.Category
			rows[i].Confidence = result.Confidence
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeRows(outputFile, rows); err != nil {
		return err
	}

	root.Log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldPath, Value: outputFile},
	).Info("Batch categorization complete")
	return nil
}

func readRows(path string) ([]*Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rows []*Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse input CSV: %w", err)
	}
	return rows, nil
}

func writeRows(path string, rows []*Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write output CSV: %w", err)
	}
	return nil
}
