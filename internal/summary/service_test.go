package summary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() models.SummaryRequest {
	return models.SummaryRequest{
		UserName: "Lucia",
		Currency: "$",
		CurrentPeriod: models.PeriodSummary{
			PeriodName: "Marzo 2025",
			Income:     500000,
			Expenses:   430000,
		},
		PreviousPeriod: models.PeriodSummary{
			PeriodName: "Febrero 2025",
			Income:     480000,
			Expenses:   390000,
		},
		TopCategories: []models.CategorySpending{
			{Name: "Supermercado", Amount: 180000},
			{Name: "Servicios", Amount: 120000},
		},
		BudgetPerformance: []models.BudgetPerformance{
			{Category: "Servicios", Budgeted: 100000, Spent: 120000},
			{Category: "Supermercado", Budgeted: 200000, Spent: 180000},
		},
		HistoricalAverages: []models.CategoryAverage{
			{Category: "Supermercado", Average: 150000},
		},
	}
}

func insightsJSON(n int) json.RawMessage {
	out := modelOutput{}
	for i := 0; i < n; i++ {
		insightType := models.InsightInfo
		if i == 0 {
			insightType = models.InsightAlert
		}
		out.Insights = append(out.Insights, models.Insight{
			Type:        insightType,
			Title:       "Título",
			Description: "Descripción con números.",
			Icon:        "Info",
		})
	}
	raw, _ := json.Marshal(out)
	return raw
}

func newTestService(invoker ai.Invoker) *Service {
	return NewService(invoker, "pro-model", "flash-model", &logging.MockLogger{})
}

func TestGenerate_SuccessWithinBounds(t *testing.T) {
	invoker := &ai.MockInvoker{Output: insightsJSON(4)}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, insights, 4)
	assert.GreaterOrEqual(t, len(insights), models.MinInsights)
	assert.LessOrEqual(t, len(insights), models.MaxInsights)

	require.Len(t, invoker.Calls, 1, "a successful primary attempt must not trigger the fallback")
	assert.Equal(t, "pro-model", invoker.Calls[0].Model)
}

func TestGenerate_TruncatesBeyondFiveInsights(t *testing.T) {
	invoker := &ai.MockInvoker{Output: insightsJSON(8)}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, insights, 5)
	assert.Equal(t, models.InsightAlert, insights[0].Type, "ordering is preserved when truncating")
}

func TestGenerate_TooFewInsightsTriggersFallback(t *testing.T) {
	invoker := &ai.MockInvoker{
		InvokeFunc: func(ctx context.Context, req ai.Request) (json.RawMessage, error) {
			if req.Model == "pro-model" {
				return insightsJSON(2), nil
			}
			return insightsJSON(3), nil
		},
	}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, insights, 3)

	require.Len(t, invoker.Calls, 2)
	assert.Equal(t, "pro-model", invoker.Calls[0].Model)
	assert.Equal(t, "flash-model", invoker.Calls[1].Model)
}

func TestGenerate_PrimaryErrorRetriesOnFallbackModel(t *testing.T) {
	invoker := &ai.MockInvoker{
		InvokeFunc: func(ctx context.Context, req ai.Request) (json.RawMessage, error) {
			if req.Model == "pro-model" {
				return nil, errors.New("model overloaded")
			}
			return insightsJSON(3), nil
		},
	}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, insights, 3)
	require.Len(t, invoker.Calls, 2)
}

func TestGenerate_TotalFailureSurfacesTypedError(t *testing.T) {
	invoker := &ai.MockInvoker{Err: errors.New("backend unavailable")}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	assert.Nil(t, insights)
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Len(t, invoker.Calls, 2, "exactly one fallback attempt, no further retries")
}

func TestGenerate_InvalidInsightItemsAreDropped(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{"insights": [
			{"type": "alert", "title": "Presupuesto superado", "description": "Servicios por encima del presupuesto.", "icon": "AlertTriangle"},
			{"type": "catastrophic", "title": "Bad type", "description": "x", "icon": "Info"},
			{"type": "positive", "title": "", "description": "missing title", "icon": "Award"},
			{"type": "warning", "title": "Cerca del límite", "description": "Supermercado al 90%.", "icon": "AlertCircle"},
			{"type": "info", "title": "Mayor gasto", "description": "Supermercado fue tu mayor gasto.", "icon": "Info"}
		]}`),
	}
	svc := newTestService(invoker)

	insights, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, insights, 3)
	assert.Equal(t, models.InsightAlert, insights[0].Type)
	assert.Equal(t, models.InsightWarning, insights[1].Type)
	assert.Equal(t, models.InsightInfo, insights[2].Type)
}

func TestGenerate_PromptCarriesAggregates(t *testing.T) {
	invoker := &ai.MockInvoker{Output: insightsJSON(3)}
	svc := newTestService(invoker)

	_, err := svc.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	prompt := invoker.Calls[0].Prompt
	assert.Contains(t, prompt, "Lucia")
	assert.Contains(t, prompt, "Marzo 2025")
	assert.Contains(t, prompt, "$430000.00")
	assert.Contains(t, prompt, "Servicios: Gastado $120000.00 de un presupuesto de $100000.00")
	assert.Contains(t, prompt, "Supermercado: Promedio $150000.00")
}

func TestGenerate_PromptMarksMissingBudgetsAndHistory(t *testing.T) {
	invoker := &ai.MockInvoker{Output: insightsJSON(3)}
	svc := newTestService(invoker)

	req := testRequest()
	req.BudgetPerformance = nil
	req.HistoricalAverages = nil

	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	prompt := invoker.Calls[0].Prompt
	assert.Contains(t, prompt, "No hay presupuestos definidos")
	assert.Contains(t, prompt, "No hay datos históricos suficientes")
}
