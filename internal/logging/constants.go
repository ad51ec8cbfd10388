package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps log output easy to filter and aggregate.
const (
	FieldOperation  = "operation"
	FieldModel      = "model"
	FieldCategory   = "category"
	FieldConfidence = "confidence"
	FieldMIMEType   = "mime_type"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldStatus     = "status"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldRequestID  = "request_id"
)
