package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const storeTimeout = 5 * time.Second

// FormatAmount formats an amount stored as cents with two decimals.
func FormatAmount(cents int64) string {
	return transaction.AmountDecimal(cents).StringFixed(2)
}

// FormatSigned prefixes the amount with + for income and - for expenses.
func FormatSigned(tx transaction.Transaction) string {
	if tx.Type == transaction.TypeIncome {
		return "+" + FormatAmount(tx.Amount)
	}

	return "-" + FormatAmount(tx.Amount)
}

// FormatDate formats a date in the day-first display form.
func FormatDate(t time.Time) string {
	return t.Format(transaction.DisplayDateLayout)
}

// storeCtx returns a context with a standard timeout for storage operations.
func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
