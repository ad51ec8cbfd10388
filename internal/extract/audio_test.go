package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

func testAudioRequest() AudioRequest {
	return AudioRequest{
		Data:                []byte("fake-webm-bytes"),
		MIMEType:            "audio/webm",
		AvailableCategories: []string{"Supermercado", "Mascotas", "Comida", "Entretenimiento", "Otros"},
		UserCurrency:        "ARS",
		CurrentDate:         testDate,
	}
}

func newAudioService(invoker ai.Invoker) *Service {
	return NewService(invoker, "test-model", &logging.MockLogger{})
}

func TestFromAudio_ConsolidatedSum(t *testing.T) {
	// "3000 on vegetables and 5000 on meat" comes back from the model as one
	// summed transaction; the service must pass the total through untouched.
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 8000,
			"date": "2025-03-14",
			"description": "Vegetables and meat",
			"category": "Supermercado",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ConsolidatedTransaction{
		Amount:      8000,
		Date:        "2025-03-14",
		Description: "Vegetables and meat",
		Category:    "Supermercado",
		Type:        models.TypeExpense,
		Currency:    "ARS",
		Recurrence:  models.RecurrenceOnce,
	}, tx)
}

func TestFromAudio_MixedCategoriesFallBackToOtros(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 15500,
			"date": "2025-03-14",
			"description": "Dog food, coke and streaming subscription",
			"category": "Otros",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.Equal(t, "Otros", tx.Category)
}

func TestFromAudio_CategoryNormalizedToCallerCasing(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 1200,
			"date": "2025-03-13",
			"description": "Cinema tickets",
			"category": "entretenimiento",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.Equal(t, "Entretenimiento", tx.Category)
}

func TestFromAudio_NonMemberCategoryCoercedToFallback(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 900,
			"date": "2025-03-14",
			"description": "Hardware store",
			"category": "Ferreteria",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.Equal(t, "Otros", tx.Category)
}

func TestFromAudio_DegenerateRecordingIsNotAnError(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 0,
			"date": "2025-03-14",
			"description": "",
			"category": "Otros",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.True(t, tx.Empty(), "zero amount and empty description mean nothing was extracted")
}

func TestFromAudio_InvalidFieldsCoercedToDefaults(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 500,
			"date": "last tuesday",
			"description": "Snacks",
			"category": "Comida",
			"type": "transfer",
			"currency": "pesos",
			"recurrence": "sometimes"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", tx.Date, "unresolvable date defaults to the supplied current date")
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.Equal(t, models.RecurrenceOnce, tx.Recurrence)
	assert.Equal(t, "ARS", tx.Currency, "unrecognized currency defaults to the user currency")
}

func TestFromAudio_SpokenCurrencyIsNormalized(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 30,
			"date": "2025-03-14",
			"description": "Lunch abroad",
			"category": "Comida",
			"type": "expense",
			"currency": "usd",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.Equal(t, "USD", tx.Currency)
}

func TestFromAudio_NegativeAmountNeutralized(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": -250,
			"date": "2025-03-14",
			"description": "Refund noise",
			"category": "Otros",
			"type": "expense",
			"currency": "ARS",
			"recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	tx, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)
	assert.Equal(t, 250.0, tx.Amount)
}

func TestFromAudio_InvokerErrorSurfacesAsExtractionError(t *testing.T) {
	invoker := &ai.MockInvoker{Err: errors.New("backend unavailable")}
	svc := newAudioService(invoker)

	_, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "audio", extractionErr.Source)
}

func TestFromAudio_EmptyPayloadRejectedLocally(t *testing.T) {
	invoker := &ai.MockInvoker{}
	svc := newAudioService(invoker)

	req := testAudioRequest()
	req.Data = nil
	_, err := svc.FromAudio(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, invoker.Calls)
}

func TestFromAudio_PromptCarriesRequestState(t *testing.T) {
	invoker := &ai.MockInvoker{
		Output: json.RawMessage(`{
			"amount": 10, "date": "2025-03-14", "description": "x",
			"category": "Otros", "type": "expense", "currency": "ARS", "recurrence": "once"
		}`),
	}
	svc := newAudioService(invoker)

	_, err := svc.FromAudio(context.Background(), testAudioRequest())
	require.NoError(t, err)

	require.Len(t, invoker.Calls, 1)
	call := invoker.Calls[0]
	assert.Contains(t, call.Prompt, "2025-03-14")
	assert.Contains(t, call.Prompt, `["Supermercado","Mascotas","Comida","Entretenimiento","Otros"]`)
	assert.Contains(t, call.Prompt, "ARS")
	require.NotNil(t, call.Media)
	assert.Equal(t, "audio/webm", call.Media.MIMEType)
	assert.NotNil(t, call.Schema)
}
