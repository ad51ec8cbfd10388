package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"fintouch/assistant/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiInvoker implements Invoker against the Google Gemini API with
// JSON-mode structured output.
type GeminiInvoker struct {
	client *genai.Client
	log    logging.Logger
}

// NewGeminiInvoker creates an invoker backed by a shared Gemini client.
// Callers own the lifecycle and should Close it on shutdown.
func NewGeminiInvoker(ctx context.Context, apiKey string, logger logging.Logger) (*GeminiInvoker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is empty (set GEMINI_API_KEY)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiInvoker{
		client: client,
		log:    logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiInvoker) Close() error {
	return g.client.Close()
}

// Invoke performs one generation call. The response is forced to
// application/json and validated against req.Schema server-side; anything
// that still comes back empty or unparseable surfaces as ErrSchemaMismatch.
func (g *GeminiInvoker) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("no model name given")
	}

	model := g.client.GenerativeModel(req.Model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema

	parts := []genai.Part{genai.Text(req.Prompt)}
	if req.Media != nil {
		parts = append(parts, genai.Blob{
			MIMEType: req.Media.MIMEType,
			Data:     req.Media.Data,
		})
	}

	g.log.WithFields(
		logging.Field{Key: logging.FieldModel, Value: req.Model},
		logging.Field{Key: "has_media", Value: req.Media != nil},
	).Debug("Invoking generation model")

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no candidates returned", ErrSchemaMismatch)
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw = string(text)
			break
		}
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: no text part in response", ErrSchemaMismatch)
	}

	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrSchemaMismatch)
	}

	return json.RawMessage(raw), nil
}
