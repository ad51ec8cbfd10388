// Package extract turns voice recordings and receipt images into structured
// transaction data through a single model call per input.
//
// The audio path consolidates everything mentioned in one recording into
// exactly one transaction: amounts are summed, items merged into one
// description, and the category is either the single one all items share or
// the literal fallback when they span unrelated categories. The model is
// instructed to do the consolidation and the validator re-checks what comes
// back against the caller's catalog.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/currencyutils"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// AudioRequest is one voice recording plus the caller state needed to
// resolve it: the category catalog, the user's default currency, and the
// date relative terms like "yesterday" resolve against. Passing the date in
// keeps the service pure and testable; it never reads the wall clock.
type AudioRequest struct {
	Data                []byte
	MIMEType            string
	AvailableCategories []string
	UserCurrency        string
	CurrentDate         time.Time
}

var audioSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"amount": {
			Type:        genai.TypeNumber,
			Description: "The SUM of all amounts mentioned in the audio.",
		},
		"date": {
			Type:        genai.TypeString,
			Description: "The date of the transaction in YYYY-MM-DD format.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "A concise, combined description of all items mentioned.",
		},
		"category": {
			Type:        genai.TypeString,
			Description: "The determined category. If items are varied, this MUST be \"Otros\". Must be one of the available categories.",
		},
		"type": {
			Type:        genai.TypeString,
			Enum:        []string{"income", "expense"},
			Description: "The type of the transaction (income or expense).",
		},
		"currency": {
			Type:        genai.TypeString,
			Description: "The currency code for the transaction (e.g., USD, EUR). Defaults to user currency if not specified.",
		},
		"recurrence": {
			Type:        genai.TypeString,
			Enum:        []string{"once", "weekly", "monthly", "yearly"},
			Description: "The recurrence of the transaction. Defaults to \"once\" if not specified.",
		},
	},
	Required: []string{"amount", "date", "description", "category", "type", "currency", "recurrence"},
}

type audioOutput struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Currency    string  `json:"currency"`
	Recurrence  string  `json:"recurrence"`
}

// Service extracts transactions from audio recordings and receipt images.
type Service struct {
	invoker ai.Invoker
	model   string
	log     logging.Logger
}

// NewService creates an extraction service that runs on the given model.
func NewService(invoker ai.Invoker, model string, logger logging.Logger) *Service {
	return &Service{
		invoker: invoker,
		model:   model,
		log:     logger,
	}
}

// FromAudio extracts one consolidated transaction from a voice recording.
// A recording with no identifiable transaction yields an amount of 0 and an
// empty description, not an error; callers must not persist such a result.
func (s *Service) FromAudio(ctx context.Context, req AudioRequest) (models.ConsolidatedTransaction, error) {
	if len(req.Data) == 0 {
		return models.ConsolidatedTransaction{}, &ExtractionError{Source: "audio", Err: fmt.Errorf("empty audio payload")}
	}
	if req.MIMEType == "" {
		return models.ConsolidatedTransaction{}, &ExtractionError{Source: "audio", Err: fmt.Errorf("missing audio MIME type")}
	}

	raw, err := s.invoker.Invoke(ctx, ai.Request{
		Prompt: buildAudioPrompt(req),
		Media:  &ai.Media{MIMEType: req.MIMEType, Data: req.Data},
		Schema: audioSchema,
		Model:  s.model,
	})
	if err != nil {
		s.log.WithError(err).WithFields(
			logging.Field{Key: logging.FieldOperation, Value: "extract_audio"},
			logging.Field{Key: logging.FieldMIMEType, Value: req.MIMEType},
		).Error("Audio extraction model call failed")
		return models.ConsolidatedTransaction{}, &ExtractionError{Source: "audio", Err: err}
	}

	var out audioOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.ConsolidatedTransaction{}, &ExtractionError{Source: "audio", Err: fmt.Errorf("%w: %v", ai.ErrSchemaMismatch, err)}
	}

	return s.sanitize(out, req), nil
}

// sanitize re-checks the model output against the caller's catalog and the
// request defaults. Well-formed but domain-invalid values are neutralized
// locally, never surfaced as errors.
func (s *Service) sanitize(out audioOutput, req AudioRequest) models.ConsolidatedTransaction {
	tx := models.ConsolidatedTransaction{
		Amount:      math.Abs(out.Amount),
		Description: strings.TrimSpace(out.Description),
	}

	if _, err := models.ParseDate(out.Date); err == nil {
		tx.Date = out.Date
	} else {
		tx.Date = models.FormatDate(req.CurrentDate)
	}

	if matched, ok := models.MatchCategory(out.Category, req.AvailableCategories); ok {
		tx.Category = matched
	} else {
		if out.Category != "" {
			s.log.WithField(logging.FieldCategory, out.Category).
				Warn("Model chose a category outside the caller's catalog, using fallback")
		}
		tx.Category = models.CategoryFallback
	}

	tx.Type = models.TransactionType(out.Type)
	if !tx.Type.Valid() {
		tx.Type = models.TypeExpense
	}

	tx.Recurrence = models.Recurrence(out.Recurrence)
	if !tx.Recurrence.Valid() {
		tx.Recurrence = models.RecurrenceOnce
	}

	if code, ok := currencyutils.NormalizeCode(out.Currency); ok {
		tx.Currency = code
	} else {
		fallbackCode, _ := currencyutils.NormalizeCode(req.UserCurrency)
		tx.Currency = fallbackCode
	}

	return tx
}

func buildAudioPrompt(req AudioRequest) string {
	categories, _ := json.Marshal(req.AvailableCategories)

	return fmt.Sprintf(`You are a personal finance assistant. Your task is to listen to an audio clip, transcribe it, and extract a SINGLE consolidated transaction from it, even if multiple purchases or items are mentioned.

Current Date: %s
User's Default Currency: %s

Analyze the attached audio and follow these rules STRICTLY:
1. **Amount**: You MUST sum up ALL monetary values mentioned to get a single total amount for the transaction. For example, if the user says "I spent 3000 on vegetables and 5000 on meat", the final amount is 8000.
2. **Description**: Create a concise, combined description of all items mentioned. For example, "Vegetables and meat" or "Dog food, Coca-cola, Netflix subscription".
3. **Type**: Is it an 'income' or an 'expense'? All items are assumed to be of the same type. If mixed, default to 'expense'.
4. **Date**: Resolve any relative terms like "today" or "yesterday" to a 'YYYY-MM-DD' format based on the current date. If no date is mentioned, use the current date.
5. **Category**: This is the most important rule.
   * If all items mentioned clearly belong to a single, specific category (e.g., "vegetables" and "meat" both fit into 'Supermercado'), you MUST use that specific category.
   * If the items are from different, unrelated categories (e.g., "dog food", "a coke", "netflix"), you MUST use the category 'Otros'.
   * You MUST choose one from this list of available categories: %s.
6. **Currency**: Identify the currency code (e.g., USD, ARS, EUR). Default to the user's currency if not specified.
7. **Recurrence**: Default to 'once' unless explicitly mentioned otherwise.

Your final output MUST be a single JSON object representing ONE consolidated transaction. Do NOT return an array. If no transaction can be clearly identified, respond with an amount of 0 and an empty description.`,
		models.FormatDate(req.CurrentDate),
		req.UserCurrency,
		string(categories))
}
