package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCategory(t *testing.T) {
	available := []string{"Supermercado", "Comida", "Transporte"}

	tests := []struct {
		name      string
		candidate string
		expected  string
		found     bool
	}{
		{"exact match", "Comida", "Comida", true},
		{"case-insensitive match keeps caller casing", "supermercado", "Supermercado", true},
		{"whitespace trimmed", "  TRANSPORTE  ", "Transporte", true},
		{"no match", "Groceries", "", false},
		{"empty candidate", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, found := MatchCategory(tt.candidate, available)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, matched)
		})
	}
}

func TestMatchCategory_EmptyCatalog(t *testing.T) {
	_, found := MatchCategory("Comida", nil)
	assert.False(t, found)
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.True(t, TypeExpense.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.False(t, TransactionType("").Valid())
}

func TestRecurrenceValid(t *testing.T) {
	for _, r := range []Recurrence{RecurrenceOnce, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Recurrence("daily").Valid())
}

func TestInsightTypeValid(t *testing.T) {
	for _, it := range []InsightType{InsightAlert, InsightWarning, InsightPositive, InsightInfo} {
		assert.True(t, it.Valid())
	}
	assert.False(t, InsightType("critical").Valid())
}

func TestConsolidatedTransactionEmpty(t *testing.T) {
	assert.True(t, ConsolidatedTransaction{}.Empty())
	assert.False(t, ConsolidatedTransaction{Amount: 10}.Empty())
	assert.False(t, ConsolidatedTransaction{Description: "coffee"}.Empty())
}

func TestDateRoundTrip(t *testing.T) {
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	formatted := FormatDate(date)
	assert.Equal(t, "2025-03-14", formatted)

	parsed, err := ParseDate(formatted)
	require.NoError(t, err)
	assert.Equal(t, date, parsed)

	_, err = ParseDate("14/03/2025")
	assert.Error(t, err)
}

func TestCategoryNames(t *testing.T) {
	categories := []Category{
		{Name: "Comida", Type: TypeExpense},
		{Name: "Salario", Type: TypeIncome},
	}
	assert.Equal(t, []string{"Comida", "Salario"}, CategoryNames(categories))
	assert.Equal(t, []string{"Comida"}, NamesOfType(categories, TypeExpense))
	assert.Equal(t, []string{"Salario"}, NamesOfType(categories, TypeIncome))
}
