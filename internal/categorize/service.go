// Package categorize infers the most likely category for a transaction
// description from the caller's current category catalog.
//
// Inference is a best-effort hint consumed while the user types: the service
// never returns an error. Anything that goes wrong (empty catalog, transport
// failure, hallucinated category) degrades to a zero-confidence result the
// caller simply won't auto-apply. Thresholding is caller policy.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// outputSchema is the structured-output contract for inference calls.
var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category": {
			Type:        genai.TypeString,
			Description: "The predicted category. Must be one of the available categories.",
		},
		"confidence": {
			Type:        genai.TypeNumber,
			Description: "Confidence level of the categorization, between 0 and 1.",
		},
	},
	Required: []string{"category", "confidence"},
}

type modelOutput struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Service performs category inference through a model invoker.
type Service struct {
	invoker ai.Invoker
	model   string
	log     logging.Logger
}

// NewService creates a category inference service that runs on the given
// model.
func NewService(invoker ai.Invoker, model string, logger logging.Logger) *Service {
	return &Service{
		invoker: invoker,
		model:   model,
		log:     logger,
	}
}

// Infer returns a best-guess category for the description plus a confidence
// in [0,1]. The returned category keeps the caller's original casing when it
// matches an entry of availableCategories; a non-matching model answer is
// passed through with confidence forced to zero so the caller never
// auto-applies it.
func (s *Service) Infer(ctx context.Context, description string, availableCategories []string) models.CategorizationResult {
	fallback := models.CategorizationResult{Category: models.CategoryFallback, Confidence: 0}

	// An empty catalog makes every model answer invalid, skip the round trip.
	if len(availableCategories) == 0 {
		s.log.WithField(logging.FieldOperation, "infer_category").
			Debug("Empty category catalog, returning fallback without model call")
		return fallback
	}

	raw, err := s.invoker.Invoke(ctx, ai.Request{
		Prompt: buildPrompt(description, availableCategories),
		Schema: outputSchema,
		Model:  s.model,
	})
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldOperation, "infer_category").
			Warn("Category inference failed, returning fallback")
		return fallback
	}

	var out modelOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.WithError(err).WithField(logging.FieldOperation, "infer_category").
			Warn("Category inference output did not unmarshal, returning fallback")
		return fallback
	}

	if matched, ok := models.MatchCategory(out.Category, availableCategories); ok {
		return models.CategorizationResult{
			Category:   matched,
			Confidence: clamp01(out.Confidence),
		}
	}

	// Hallucinated or malformed category: keep the raw answer for display but
	// force confidence to zero so it is never auto-applied.
	s.log.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "infer_category"},
		logging.Field{Key: logging.FieldCategory, Value: out.Category},
	).Warn("Model suggested a category outside the caller's catalog")
	return models.CategorizationResult{Category: strings.TrimSpace(out.Category), Confidence: 0}
}

func buildPrompt(description string, availableCategories []string) string {
	return fmt.Sprintf(`You are a personal finance expert tasked with categorizing a transaction based on its description.
Based on the transaction description, determine the most appropriate category for the transaction from the provided list.
Respond with the category and a confidence level (0-1).

Transaction Description: %s

You MUST choose one of the following categories: %s`,
		description,
		strings.Join(availableCategories, ", "))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
