package models

import "strings"

// Category is one entry of a user's category catalog. Catalogs are
// user-editable runtime values supplied fresh on every call; the services
// never cache them or assume a fixed set.
type Category struct {
	Name  string          `yaml:"name" json:"name"`
	Type  TransactionType `yaml:"type" json:"type"`
	Icon  string          `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color string          `yaml:"color,omitempty" json:"color,omitempty"`
}

// MatchCategory compares candidate against the catalog names, trimming
// whitespace and ignoring case. On a match it returns the caller's original
// spelling so downstream exact-string lookups by category name succeed.
func MatchCategory(candidate string, available []string) (string, bool) {
	trimmed := strings.TrimSpace(candidate)
	for _, name := range available {
		if strings.EqualFold(trimmed, name) {
			return name, true
		}
	}
	return "", false
}

// CategoryNames extracts the names of the given categories, preserving order.
func CategoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// NamesOfType extracts the names of categories with the given type,
// preserving order.
func NamesOfType(categories []Category, t TransactionType) []string {
	var names []string
	for _, c := range categories {
		if c.Type == t {
			names = append(names, c.Name)
		}
	}
	return names
}
