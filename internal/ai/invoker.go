// Package ai provides the model-invocation layer shared by all services: a
// narrow Invoker interface that sends a rendered prompt (plus optional media)
// to a generation backend under a strict output schema and hands back the raw
// structured response.
//
// The invoker makes exactly one attempt per call. Model fallback, local
// defaults and retries are caller policy, not invoker behavior.
package ai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/generative-ai-go/genai"
)

// ErrSchemaMismatch indicates the backend answered, but the response did not
// conform to the declared output schema. Callers treat it like any other
// model error and apply their own fallback.
var ErrSchemaMismatch = errors.New("model response does not match output schema")

// Media is a binary payload (audio recording, receipt photo) attached to a
// request alongside the prompt.
type Media struct {
	MIMEType string
	Data     []byte
}

// Request describes one generation call: the instruction text, an optional
// media part, the output schema the response must conform to, and the model
// to run it on.
type Request struct {
	Prompt string
	Media  *Media
	Schema *genai.Schema
	Model  string
}

// Invoker sends a single generation request and returns the raw JSON the
// model produced. A nil error guarantees the returned message is valid JSON;
// unmarshaling into the caller's typed output may still fail and is the
// caller's responsibility to guard.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (json.RawMessage, error)
}
