package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestSummarize_Empty(t *testing.T) {
	s := transaction.Summarize(nil)

	assert.Zero(t, s.Count)
	assert.Zero(t, s.Balance)
	require.Len(t, s.Breakdown, len(transaction.Categories))

	for i, ct := range s.Breakdown {
		assert.Equal(t, transaction.Categories[i], ct.Category)
		assert.Zero(t, ct.Amount)
	}
}

func TestSummarize_Identities(t *testing.T) {
	txs := []transaction.Transaction{
		{Category: transaction.CategoryFood, Amount: 1, Type: transaction.TypeExpense},
		{Category: transaction.CategoryFood, Amount: 2, Type: transaction.TypeExpense},
		{Category: transaction.CategoryUtilities, Amount: 10, Type: transaction.TypeExpense},
		{Category: transaction.CategoryOther, Amount: 123456, Type: transaction.TypeIncome},
		{Category: transaction.CategoryTransport, Amount: 30, Type: transaction.TypeIncome},
	}

	// Ten thousand one-cent expenses expose any float drift.
	for range 10000 {
		txs = append(txs, transaction.Transaction{Category: transaction.CategoryShopping, Amount: 1, Type: transaction.TypeExpense})
	}

	s := transaction.Summarize(txs)

	assert.Equal(t, s.TotalIncome-s.TotalExpense, s.Balance)

	var sum int64
	for _, ct := range s.Breakdown {
		sum += ct.Amount
	}

	assert.Equal(t, s.TotalExpense, sum)
	assert.Equal(t, int64(10013), s.TotalExpense)
	assert.Equal(t, int64(123486), s.TotalIncome)
	assert.Equal(t, int64(3), s.ByCategory(transaction.CategoryFood))
	assert.Equal(t, int64(10000), s.ByCategory(transaction.CategoryShopping))
	assert.Zero(t, s.ByCategory(transaction.CategoryTransport), "income does not count towards the breakdown")
}
