// Package currencyutils provides helpers for currency codes and monetary
// formatting shared by the prompt builders and validators.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeCode trims and uppercases a currency code. It returns the
// normalized code and whether it looks like an ISO 4217 code (three ASCII
// letters). Spoken currencies come back from the model in arbitrary casing,
// so validation happens on the normalized form.
func NormalizeCode(code string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return normalized, false
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return normalized, false
		}
	}
	return normalized, true
}

// FormatAmount renders a monetary amount with two decimal places for prompt
// text. Going through decimal avoids float artifacts like 1199.9999999999998
// leaking into the instruction the model reads.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
