// Package models defines the request and response values exchanged between
// the AI services and their callers. Everything here is transient: values are
// built from caller-supplied state at call time and discarded with the
// response, persistence belongs to the external document store.
package models

import (
	"fmt"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Recurrence describes how often a transaction repeats.
type Recurrence string

const (
	RecurrenceOnce    Recurrence = "once"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is a known recurrence value.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// CategoryFallback is the literal category used whenever no specific category
// can be chosen: empty catalogs, backend failures, and audio recordings that
// mix unrelated categories. User catalogs seed it for both types.
const CategoryFallback = "Otros"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// CategorizationResult is the outcome of a category inference call.
// Confidence is the model's self-reported certainty in [0,1]; a confidence of
// zero means "do not auto-apply", whatever the category field says.
type CategorizationResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ConsolidatedTransaction is the single transaction produced from one audio
// recording. Multiple mentioned purchases are summed into Amount and merged
// into Description; a recording never yields more than one of these.
type ConsolidatedTransaction struct {
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Currency    string          `json:"currency"`
	Recurrence  Recurrence      `json:"recurrence"`
}

// Empty reports whether no transaction could be identified in the audio.
// Callers must not persist an empty result.
func (t ConsolidatedTransaction) Empty() bool {
	return t.Amount == 0 && t.Description == ""
}

// ReceiptDetails holds the fields extracted from a receipt image.
type ReceiptDetails struct {
	Date     string  `json:"date"`
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

// PeriodSummary aggregates one period's income and expenses.
type PeriodSummary struct {
	PeriodName string  `json:"periodName"`
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
}

// CategorySpending is one entry of the top-spending-categories list.
type CategorySpending struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BudgetPerformance compares spending against the budgeted amount for one
// category. It is the only source of truth for budget insights.
type BudgetPerformance struct {
	Category string  `json:"category"`
	Budgeted float64 `json:"budgeted"`
	Spent    float64 `json:"spent"`
}

// CategoryAverage is the average monthly spend for a category over the last
// six months.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

// SummaryRequest carries the period-over-period aggregates the financial
// summary is generated from. BudgetPerformance and HistoricalAverages are
// optional; absence means no budgets or not enough history.
type SummaryRequest struct {
	UserName           string              `json:"userName"`
	Currency           string              `json:"currency"`
	CurrentPeriod      PeriodSummary       `json:"currentPeriod"`
	PreviousPeriod     PeriodSummary       `json:"previousPeriod"`
	TopCategories      []CategorySpending  `json:"topSpendingCategories"`
	BudgetPerformance  []BudgetPerformance `json:"budgetPerformance,omitempty"`
	HistoricalAverages []CategoryAverage   `json:"historicalCategoryAverages,omitempty"`
}

// InsightType classifies an insight for styling and priority.
type InsightType string

const (
	InsightAlert    InsightType = "alert"
	InsightWarning  InsightType = "warning"
	InsightPositive InsightType = "positive"
	InsightInfo     InsightType = "info"
)

// Valid reports whether t is a known insight type.
func (t InsightType) Valid() bool {
	switch t {
	case InsightAlert, InsightWarning, InsightPositive, InsightInfo:
		return true
	}
	return false
}

// Insight is one generated observation about the user's finances. Icon is a
// symbolic name from the UI's icon vocabulary and is passed through untouched.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
}

// MinInsights and MaxInsights bound the number of insights a successful
// summary generation produces.
const (
	MinInsights = 3
	MaxInsights = 5
)

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a wire-format date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
