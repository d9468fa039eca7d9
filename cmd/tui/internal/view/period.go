package view

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Period is a predefined date range used to narrow lists and summaries.
type Period int

const (
	PeriodAll Period = iota
	PeriodThisMonth
	PeriodLastMonth
	PeriodThisYear

	periodCount
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "All Time"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodThisYear:
		return "This Year"
	}

	return "Unknown"
}

// Next cycles through the periods.
func (p Period) Next() Period {
	return (p + 1) % periodCount
}

// Range returns the inclusive first and last day of the period around now.
// ok is false for PeriodAll.
func (p Period) Range(now time.Time) (start, end time.Time, ok bool) {
	y, m, _ := now.Date()

	switch p {
	case PeriodThisMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case PeriodLastMonth:
		start = time.Date(y, m-1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	case PeriodThisYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

// Apply sets or clears the date bounds of filter.
func (p Period) Apply(filter *transaction.ListFilter, now time.Time) {
	start, end, ok := p.Range(now)
	if !ok {
		filter.StartDate = nil
		filter.EndDate = nil

		return
	}

	filter.StartDate = &start
	filter.EndDate = &end
}
