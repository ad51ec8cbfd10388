// Package catalog loads the default category catalog used by the CLI when a
// caller does not supply one. The HTTP API never touches this: catalogs are
// per-user data owned by the document store and arrive with every request.
package catalog

import (
	"fmt"
	"os"

	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a catalog file.
type catalogFile struct {
	Categories []models.Category `yaml:"categories"`
}

// Store loads category catalogs from a YAML file with a built-in default.
type Store struct {
	file string
	log  logging.Logger
}

// NewStore creates a catalog store. An empty file path means "defaults only".
func NewStore(file string, logger logging.Logger) *Store {
	return &Store{
		file: file,
		log:  logger,
	}
}

// Load returns the categories from the configured file, or the built-in
// defaults when no file is configured. A configured but unreadable or
// malformed file is an error rather than a silent fallback.
func (s *Store) Load() ([]models.Category, error) {
	if s.file == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(s.file)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog file %s: %w", s.file, err)
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("could not parse catalog file %s: %w", s.file, err)
	}
	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no categories", s.file)
	}

	s.log.WithFields(
		logging.Field{Key: logging.FieldPath, Value: s.file},
		logging.Field{Key: logging.FieldCount, Value: len(parsed.Categories)},
	).Debug("Loaded category catalog from file")

	return parsed.Categories, nil
}

// Default returns the seed catalog new users start with. The fallback
// category exists for both transaction types.
func Default() []models.Category {
	return []models.Category{
		// Expenses
		{Name: "Supermercado", Type: models.TypeExpense, Icon: "ShoppingCart", Color: "#3A8CFF"},
		{Name: "Comida", Type: models.TypeExpense, Icon: "Utensils", Color: "#FF7A5A"},
		{Name: "Transporte", Type: models.TypeExpense, Icon: "Car", Color: "#FFD24C"},
		{Name: "Servicios", Type: models.TypeExpense, Icon: "Wrench", Color: "#29B6F6"},
		{Name: "Mascotas", Type: models.TypeExpense, Icon: "PawPrint", Color: "#A6E22E"},
		{Name: "Ropa", Type: models.TypeExpense, Icon: "Shirt", Color: "#FF66B3"},
		{Name: "Salud", Type: models.TypeExpense, Icon: "HeartPulse", Color: "#30D98A"},
		{Name: "Educación", Type: models.TypeExpense, Icon: "GraduationCap", Color: "#B37FFF"},
		{Name: "Regalos", Type: models.TypeExpense, Icon: "Gift", Color: "#D960FF"},
		{Name: "Viajes", Type: models.TypeExpense, Icon: "Plane", Color: "#00C8E5"},
		{Name: "Entretenimiento", Type: models.TypeExpense, Icon: "Wallet", Color: "#FF9E40"},
		{Name: "Impuestos", Type: models.TypeExpense, Icon: "Landmark", Color: "#C7AA6D"},
		{Name: "Inversiones", Type: models.TypeExpense, Icon: "TrendingUp", Color: "#6F5CFF"},
		{Name: models.CategoryFallback, Type: models.TypeExpense, Icon: "MoreHorizontal", Color: "#FF6E57"},

		// Income
		{Name: "Salario", Type: models.TypeIncome, Icon: "Briefcase", Color: "#30D98A"},
		{Name: "Inversiones", Type: models.TypeIncome, Icon: "TrendingUp", Color: "#7AD7C9"},
		{Name: "Regalos", Type: models.TypeIncome, Icon: "Gift", Color: "#D960FF"},
		{Name: models.CategoryFallback, Type: models.TypeIncome, Icon: "MoreHorizontal", Color: "#4DD3FF"},
	}
}
