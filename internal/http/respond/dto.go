package respond

import (
	"encoding/json"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type TransactionResponse struct {
	ID          int64                `json:"id"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Category    transaction.Category `json:"category"`
	Amount      json.Number          `json:"amount"`
	Type        transaction.Type     `json:"type"`
}

type CategoryTotalResponse struct {
	Category transaction.Category `json:"category"`
	Amount   json.Number          `json:"amount"`
}

type SummaryResponse struct {
	Count        int                     `json:"count"`
	TotalIncome  json.Number             `json:"total_income"`
	TotalExpense json.Number             `json:"total_expense"`
	Balance      json.Number             `json:"balance"`
	Breakdown    []CategoryTotalResponse `json:"breakdown"`
}

// MutationResponse is returned by every request that changes the ledger.
type MutationResponse struct {
	Message     string               `json:"message"`
	Summary     SummaryResponse      `json:"summary"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

func amount(cents int64) json.Number {
	return json.Number(transaction.FormatAmount(cents))
}

func Transaction(tx transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Date:        transaction.FormatDate(tx.Date),
		Description: tx.Description,
		Category:    tx.Category,
		Amount:      amount(tx.Amount),
		Type:        tx.Type,
	}
}

func Transactions(txs []transaction.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = Transaction(tx)
	}

	return resp
}

func Summary(s transaction.Summary) SummaryResponse {
	resp := SummaryResponse{
		Count:        s.Count,
		TotalIncome:  amount(s.TotalIncome),
		TotalExpense: amount(s.TotalExpense),
		Balance:      amount(s.Balance),
		Breakdown:    make([]CategoryTotalResponse, len(s.Breakdown)),
	}

	for i, ct := range s.Breakdown {
		resp.Breakdown[i] = CategoryTotalResponse{Category: ct.Category, Amount: amount(ct.Amount)}
	}

	return resp
}
