package transaction

import (
	"strings"
	"time"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// ParseType accepts a type name regardless of case.
func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, true
	case TypeExpense:
		return TypeExpense, true
	}

	return "", false
}

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryFood      Category = "Food"
	CategoryTransport Category = "Transport"
	CategoryShopping  Category = "Shopping"
	CategoryUtilities Category = "Utilities"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order. Breakdowns follow this order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryUtilities,
	CategoryOther,
}

// ParseCategory matches s against the known categories case-insensitively
// and returns the canonical spelling.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}

	return "", false
}

// Transaction represents a single dated ledger entry.
type Transaction struct {
	ID          int64
	Date        time.Time
	Description string
	Category    Category
	Amount      int64 // Amount in cents
	Type        Type
}

// CreateParams holds everything a new transaction needs except its id.
type CreateParams struct {
	Date        time.Time
	Description string
	Category    Category
	Amount      int64
	Type        Type
}

func (p CreateParams) toTransaction(id int64) Transaction {
	return Transaction{
		ID:          id,
		Date:        p.Date,
		Description: p.Description,
		Category:    p.Category,
		Amount:      p.Amount,
		Type:        p.Type,
	}
}

// ListFilter narrows List results. Nil fields match everything.
type ListFilter struct {
	Type      *Type
	Category  *Category
	StartDate *time.Time
	EndDate   *time.Time
	Text      string
}
