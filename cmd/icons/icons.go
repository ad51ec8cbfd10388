// Package icons suggests icons for a category name
package icons

import (
	"fmt"

	"fintouch/assistant/cmd/root"
	"fintouch/assistant/internal/icons"

	"github.com/spf13/cobra"
)

var categoryName string

// Cmd represents the icons command
var Cmd = &cobra.Command{
	Use:   "icons",
	Short: "Suggest icons for a category name",
	Long: `Suggest up to five icon names from the supported icon set for a
category name.

Example:
  fintouch-assistant icons -n Mascotas`,
	RunE: iconsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&categoryName, "name", "n", "", "Category name to suggest icons for")
	_ = Cmd.MarkFlagRequired("name")
}

func iconsFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Icons command called")

	invoker, err := root.NewInvoker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = invoker.Close() }()

	svc := icons.NewService(invoker, root.Cfg.AI.FallbackModel, root.Log)
	suggestions := svc.Suggest(cmd.Context(), categoryName)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions")
		return nil
	}
	for _, name := range suggestions {
		fmt.Println(name)
	}
	return nil
}
