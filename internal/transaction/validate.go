package transaction

import (
	"strings"
)

// normalize trims the description, canonicalises the category and type spelling,
// drops any time-of-day from the date and then checks every invariant.
func normalize(tx Transaction) (Transaction, error) {
	tx.Description = strings.TrimSpace(tx.Description)
	if tx.Description == "" {
		return tx, &ValidationError{Field: "description", Reason: "is required"}
	}

	if tx.Date.IsZero() {
		return tx, &ValidationError{Field: "date", Reason: "is required"}
	}

	tx.Date = truncateDate(tx.Date)

	c, ok := ParseCategory(string(tx.Category))
	if !ok {
		return tx, &ValidationError{Field: "category", Reason: "must be one of Food, Transport, Shopping, Utilities, Other"}
	}

	tx.Category = c

	t, ok := ParseType(string(tx.Type))
	if !ok {
		return tx, &ValidationError{Field: "type", Reason: "must be income or expense"}
	}

	tx.Type = t

	if tx.Amount <= 0 {
		return tx, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	if tx.Amount >= MaxAmount {
		return tx, &ValidationError{Field: "amount", Reason: "is too large"}
	}

	return tx, nil
}
