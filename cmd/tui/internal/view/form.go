package view

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// categoryAuto lets the category rules pick the category on save.
const categoryAuto = ""

// transactionForm holds the add/edit field bindings. It lives behind a pointer
// so huh keeps writing to the same values while the model is copied around.
type transactionForm struct {
	id          int64
	date        string
	description string
	category    string
	amount      string
	txType      string
}

func newTransactionForm(tx *transaction.Transaction, today time.Time) *transactionForm {
	if tx == nil {
		return &transactionForm{
			date:     FormatDate(today),
			category: categoryAuto,
			txType:   string(transaction.TypeExpense),
		}
	}

	return &transactionForm{
		id:          tx.ID,
		date:        FormatDate(tx.Date),
		description: tx.Description,
		category:    string(tx.Category),
		amount:      FormatAmount(tx.Amount),
		txType:      string(tx.Type),
	}
}

func (f *transactionForm) editing() bool { return f.id != 0 }

func (f *transactionForm) build() *huh.Form {
	categories := make([]huh.Option[string], 0, len(transaction.Categories)+1)
	if !f.editing() {
		categories = append(categories, huh.NewOption("Auto (from rules)", categoryAuto))
	}

	for _, c := range transaction.Categories {
		categories = append(categories, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("DD/MM/YYYY").
				Value(&f.date).
				Validate(func(s string) error {
					_, err := transaction.ParseDate(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&f.amount).
				Validate(func(s string) error {
					_, err := transaction.ParseAmount(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.TypeExpense)),
					huh.NewOption("Income", string(transaction.TypeIncome)),
				).
				Value(&f.txType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&f.category),
		),
	).WithWidth(45).WithShowHelp(false)
}

// transaction converts the bound values. Category is left empty when the
// rules should choose it.
func (f *transactionForm) transaction() (transaction.Transaction, error) {
	date, err := transaction.ParseDate(f.date)
	if err != nil {
		return transaction.Transaction{}, err
	}

	amount, err := transaction.ParseAmount(f.amount)
	if err != nil {
		return transaction.Transaction{}, err
	}

	return transaction.Transaction{
		ID:          f.id,
		Date:        date,
		Description: strings.TrimSpace(f.description),
		Category:    transaction.Category(f.category),
		Amount:      amount,
		Type:        transaction.Type(f.txType),
	}, nil
}
