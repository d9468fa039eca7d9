package transaction

import (
	"strings"
)

// Matches reports whether tx contains text in its description, category, type
// or date. Matching ignores case; the date is tried in both the canonical and
// the display form. Empty text matches everything.
func Matches(tx Transaction, text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return true
	}

	fields := []string{
		tx.Description,
		string(tx.Category),
		string(tx.Type),
		FormatDate(tx.Date),
		tx.Date.Format(DisplayDateLayout),
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}

	return false
}

func (f ListFilter) matches(tx Transaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}

	if f.Category != nil && tx.Category != *f.Category {
		return false
	}

	if f.StartDate != nil && tx.Date.Before(truncateDate(*f.StartDate)) {
		return false
	}

	if f.EndDate != nil && tx.Date.After(truncateDate(*f.EndDate)) {
		return false
	}

	return Matches(tx, f.Text)
}
