package icons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"

	"github.com/google/generative-ai-go/genai"
)

// MaxSuggestions caps how many icon names a suggestion call returns.
const MaxSuggestions = 5

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"icons": {
			Type:        genai.TypeArray,
			Description: "An array of up to 5 suggested icon names from the available list.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"icons"},
}

type modelOutput struct {
	Icons []string `json:"icons"`
}

// Service suggests icons for category names. Like category inference this is
// a background hint: failures degrade to an empty suggestion list.
type Service struct {
	invoker ai.Invoker
	model   string
	log     logging.Logger
}

// NewService creates an icon suggestion service that runs on the given model.
func NewService(invoker ai.Invoker, model string, logger logging.Logger) *Service {
	return &Service{
		invoker: invoker,
		model:   model,
		log:     logger,
	}
}

// Suggest returns up to MaxSuggestions icon names for the category, every one
// of them a vocabulary member. Hallucinated names are silently dropped.
func (s *Service) Suggest(ctx context.Context, categoryName string) []string {
	raw, err := s.invoker.Invoke(ctx, ai.Request{
		Prompt: buildPrompt(categoryName),
		Schema: outputSchema,
		Model:  s.model,
	})
	if err != nil {
		s.log.WithError(err).WithFields(
			logging.Field{Key: logging.FieldOperation, Value: "suggest_icons"},
			logging.Field{Key: logging.FieldCategory, Value: categoryName},
		).Warn("Icon suggestion failed, returning no suggestions")
		return nil
	}

	var out modelOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.WithError(err).WithField(logging.FieldOperation, "suggest_icons").
			Warn("Icon suggestion output did not unmarshal, returning no suggestions")
		return nil
	}

	valid := Filter(out.Icons)
	if len(valid) > MaxSuggestions {
		valid = valid[:MaxSuggestions]
	}
	return valid
}

func buildPrompt(categoryName string) string {
	return fmt.Sprintf(`You are a UI/UX expert specializing in personal finance apps.
Your task is to suggest the most relevant icons for a given category name.

Category Name: %s

Based on the category name, choose the 5 most appropriate icon names from the following list.
Return your answer as a JSON object with an "icons" array.

Available Icons:
%s`,
		categoryName,
		strings.Join(Vocabulary, ", "))
}
