// Package summary generates a short prioritized list of financial insights
// from period-over-period aggregates.
//
// This is the only service with a fallback retry: the primary model is tried
// first and one more attempt runs against the cheaper fallback model before
// the failure surfaces. Callers treat total failure as "insufficient data"
// and render an empty insights state, never an error page.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/currencyutils"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// ErrGenerationFailed indicates both the primary and the fallback attempt
// failed. Callers degrade to an empty insights list.
var ErrGenerationFailed = errors.New("financial summary generation failed")

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"insights": {
			Type:        genai.TypeArray,
			Description: "An array of 3 to 5 key financial insights, ordered from most to least important.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": {
						Type:        genai.TypeString,
						Enum:        []string{"positive", "warning", "info", "alert"},
						Description: "The type of insight, used for styling.",
					},
					"title": {
						Type:        genai.TypeString,
						Description: "A short, catchy title for the insight (max 5 words).",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "A one-sentence explanation of the insight, providing specific numbers.",
					},
					"icon": {
						Type:        genai.TypeString,
						Description: "The most relevant Lucide icon name for this insight (e.g., \"TrendingUp\", \"AlertTriangle\", \"Award\", \"Info\").",
					},
				},
				Required: []string{"type", "title", "description", "icon"},
			},
		},
	},
	Required: []string{"insights"},
}

type modelOutput struct {
	Insights []models.Insight `json:"insights"`
}

// Service generates financial summaries through a model invoker.
type Service struct {
	invoker       ai.Invoker
	primaryModel  string
	fallbackModel string
	log           logging.Logger
}

// NewService creates a summary service with a primary and a fallback model.
func NewService(invoker ai.Invoker, primaryModel, fallbackModel string, logger logging.Logger) *Service {
	return &Service{
		invoker:       invoker,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		log:           logger,
	}
}

// Generate returns 3 to 5 insights ordered most to least important. Output
// with more than 5 valid insights is truncated; output with fewer than 3 is
// treated as a failed generation.
func (s *Service) Generate(ctx context.Context, req models.SummaryRequest) ([]models.Insight, error) {
	prompt := buildPrompt(req)

	insights, err := s.attempt(ctx, prompt, s.primaryModel)
	if err == nil {
		return insights, nil
	}

	s.log.WithError(err).WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "generate_summary"},
		logging.Field{Key: logging.FieldModel, Value: s.primaryModel},
	).Warn("Primary model failed for financial summary, retrying with fallback model")

	insights, err = s.attempt(ctx, prompt, s.fallbackModel)
	if err != nil {
		s.log.WithError(err).WithFields(
			logging.Field{Key: logging.FieldOperation, Value: "generate_summary"},
			logging.Field{Key: logging.FieldModel, Value: s.fallbackModel},
		).Error("Fallback model failed for financial summary")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return insights, nil
}

func (s *Service) attempt(ctx context.Context, prompt, model string) ([]models.Insight, error) {
	raw, err := s.invoker.Invoke(ctx, ai.Request{
		Prompt: prompt,
		Schema: outputSchema,
		Model:  model,
	})
	if err != nil {
		return nil, err
	}

	var out modelOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrSchemaMismatch, err)
	}

	// Drop structurally invalid items, preserve model ordering.
	insights := make([]models.Insight, 0, len(out.Insights))
	for _, insight := range out.Insights {
		if !insight.Type.Valid() || insight.Title == "" || insight.Description == "" {
			continue
		}
		insights = append(insights, insight)
	}

	if len(insights) < models.MinInsights {
		return nil, fmt.Errorf("%w: got %d valid insights, need at least %d",
			ai.ErrSchemaMismatch, len(insights), models.MinInsights)
	}
	if len(insights) > models.MaxInsights {
		insights = insights[:models.MaxInsights]
	}
	return insights, nil
}

func buildPrompt(req models.SummaryRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are Fintouch, an expert financial analyst AI. Your task is to analyze the user's monthly financial data and provide clear, actionable, and insightful feedback in Spanish.

User's name: %s
Currency: %s

**Current Month Data (%s):**
- Income: %s%s
- Expenses: %s%s

**Previous Month Data (%s):**
- Income: %s%s
- Expenses: %s%s

`,
		req.UserName, req.Currency,
		req.CurrentPeriod.PeriodName,
		req.Currency, currencyutils.FormatAmount(req.CurrentPeriod.Income),
		req.Currency, currencyutils.FormatAmount(req.CurrentPeriod.Expenses),
		req.PreviousPeriod.PeriodName,
		req.Currency, currencyutils.FormatAmount(req.PreviousPeriod.Income),
		req.Currency, currencyutils.FormatAmount(req.PreviousPeriod.Expenses))

	b.WriteString("**Top Spending Categories this month:**\n")
	for _, c := range req.TopCategories {
		fmt.Fprintf(&b, "- %s: %s%s\n", c.Name, req.Currency, currencyutils.FormatAmount(c.Amount))
	}

	b.WriteString("\n**Budget Performance this month (Source of Truth):**\n")
	if len(req.BudgetPerformance) > 0 {
		for _, p := range req.BudgetPerformance {
			fmt.Fprintf(&b, "- %s: Gastado %s%s de un presupuesto de %s%s\n",
				p.Category,
				req.Currency, currencyutils.FormatAmount(p.Spent),
				req.Currency, currencyutils.FormatAmount(p.Budgeted))
		}
	} else {
		b.WriteString("No hay presupuestos definidos para este período.\n")
	}

	b.WriteString("\n**Historical Spending Averages (last 6 months):**\n")
	if len(req.HistoricalAverages) > 0 {
		for _, a := range req.HistoricalAverages {
			fmt.Fprintf(&b, "- %s: Promedio %s%s\n", a.Category, req.Currency, currencyutils.FormatAmount(a.Average))
		}
	} else {
		b.WriteString("No hay datos históricos suficientes para comparar.\n")
	}

	fmt.Fprintf(&b, `
**Your Task & Analysis Framework:**
Analyze all the data provided and generate an array of 3 to 5 distinct, valuable insights for %s. Follow this framework for analysis and prioritize your insights from most to least critical.

1. **Critical Alerts (Highest Priority - type: 'alert', icon: 'AlertTriangle'):**
   * **Budget Overspends:** Iterate through the budget performance list. You MUST create a separate 'alert' insight for EACH category where 'spent' is greater than 'budgeted'. This is the most important type of insight. Do NOT invent budgets for categories not present in the budget performance list.
   * **Major Deficit:** Is total spending for the month significantly higher than total income? State the deficit amount clearly.
   * **Unusual Spending Spikes:** Is spending in any category this month drastically higher (e.g., >50%%) than its 6-month historical average? Highlight this unusual deviation.

2. **Important Warnings (Medium Priority - type: 'warning', icon: 'TrendingDown' or 'AlertCircle'):**
   * **Approaching Budget Limits:** Is any category's spending close to its budget (e.g., >80%% spent but not yet over)? Warn the user. DO NOT warn if spending is below 80%% of the budget.
   * **Negative Trends:** Is this month's total spending significantly higher than last month's? Highlight this negative trend.

3. **Positive Reinforcement (Medium Priority - type: 'positive', icon: 'Award' or 'TrendingUp'):**
   * **Staying Well Under Budget:** Did the user do exceptionally well on a budget (e.g., spent <50%% of the allocated amount)? Acknowledge this positive achievement. This is not a warning.
   * **Increased Surplus:** Did the user have a larger surplus (income - expenses) this month compared to last month? Congratulate them.
   * **Reduced Spending:** Did the user significantly reduce spending in a key category compared to its historical average? Praise this positive change.

4. **Informational Insights (Lowest Priority - type: 'info', icon: 'Info'):**
   * If no other significant insights are found, provide a general summary.
   * Mention the largest spending category for the month if it hasn't already been covered in a more critical insight.

Your response must be a JSON object with a single root key called "insights" holding an array of 3 to 5 insight objects, each with the string properties type, title, description and icon.`,
		req.UserName)

	return b.String()
}
