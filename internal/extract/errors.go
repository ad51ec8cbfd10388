package extract

import "fmt"

// ExtractionError wraps a failed extraction attempt. Extraction is a
// user-initiated primary action, so unlike category inference these failures
// are surfaced to the caller instead of silently defaulted.
type ExtractionError struct {
	Source string // "audio" or "receipt"
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
