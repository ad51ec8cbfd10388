package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"fintouch/assistant/internal/ai"
	"fintouch/assistant/internal/logging"
	"fintouch/assistant/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// ReceiptRequest is one receipt photo to extract transaction details from.
type ReceiptRequest struct {
	Data     []byte
	MIMEType string
}

var receiptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"date": {
			Type:        genai.TypeString,
			Description: "The date of the transaction.",
		},
		"merchant": {
			Type:        genai.TypeString,
			Description: "The name of the merchant.",
		},
		"amount": {
			Type:        genai.TypeNumber,
			Description: "The total amount of the transaction.",
		},
	},
	Required: []string{"date", "merchant", "amount"},
}

// FromReceipt extracts the date, merchant and total amount from a receipt
// image.
func (s *Service) FromReceipt(ctx context.Context, req ReceiptRequest) (models.ReceiptDetails, error) {
	if len(req.Data) == 0 {
		return models.ReceiptDetails{}, &ExtractionError{Source: "receipt", Err: fmt.Errorf("empty image payload")}
	}
	if req.MIMEType == "" {
		return models.ReceiptDetails{}, &ExtractionError{Source: "receipt", Err: fmt.Errorf("missing image MIME type")}
	}

	raw, err := s.invoker.Invoke(ctx, ai.Request{
		Prompt: receiptPrompt,
		Media:  &ai.Media{MIMEType: req.MIMEType, Data: req.Data},
		Schema: receiptSchema,
		Model:  s.model,
	})
	if err != nil {
		s.log.WithError(err).WithFields(
			logging.Field{Key: logging.FieldOperation, Value: "extract_receipt"},
			logging.Field{Key: logging.FieldMIMEType, Value: req.MIMEType},
		).Error("Receipt extraction model call failed")
		return models.ReceiptDetails{}, &ExtractionError{Source: "receipt", Err: err}
	}

	var details models.ReceiptDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return models.ReceiptDetails{}, &ExtractionError{Source: "receipt", Err: fmt.Errorf("%w: %v", ai.ErrSchemaMismatch, err)}
	}

	details.Merchant = strings.TrimSpace(details.Merchant)
	details.Amount = math.Abs(details.Amount)
	return details, nil
}

const receiptPrompt = `You are an expert in extracting transaction details from receipts.

Given an image of a receipt, extract the date, merchant name, and total amount.

Return the extracted details in JSON format.`
