package transaction

import (
	"strings"
	"time"
)

// DisplayDateLayout is the day-first form users type and search for.
const DisplayDateLayout = "02/01/2006"

// ParseDate accepts the canonical YYYY-MM-DD form or the DD/MM/YYYY display form
// and returns the date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	layout := time.DateOnly
	if strings.Contains(s, "/") {
		layout = DisplayDateLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD or DD/MM/YYYY"}
	}

	return t, nil
}

// FormatDate renders the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
