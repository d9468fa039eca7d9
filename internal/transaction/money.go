package transaction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the exclusive upper bound on a single amount, in cents. It keeps
// sums of realistic ledgers far away from int64 overflow.
const MaxAmount int64 = 1_000_000_000_000_000

var maxAmount = decimal.New(MaxAmount, -2)

// ParseAmount parses a decimal string such as "250", "12.5" or "0.01" into cents.
// Values are rounded half away from zero to two decimal places and must be positive.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: "amount", Reason: "is required"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: "must be a number"}
	}

	return AmountFromDecimal(d)
}

// AmountFromDecimal converts a decimal value into positive cents.
func AmountFromDecimal(d decimal.Decimal) (int64, error) {
	if d.GreaterThanOrEqual(maxAmount) {
		return 0, &ValidationError{Field: "amount", Reason: "is too large"}
	}

	cents := d.Round(2).Shift(2).IntPart()
	if cents <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	return cents, nil
}

// AmountDecimal returns cents as a decimal in major units.
func AmountDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatAmount renders cents in the canonical wire form: no grouping,
// no currency, and trailing zeros dropped ("250", "12.5", "0.01").
func FormatAmount(cents int64) string {
	return AmountDecimal(cents).String()
}
