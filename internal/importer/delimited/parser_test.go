package delimited_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/importer/delimited"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Typed(t *testing.T) {
	csv := `Date,Description,Category,Amount,Type
2025-03-01,Lunch,Food,12.50,expense
02/03/2025,"Salary, March",,"1,000.00",Income
`

	txs, err := delimited.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2025, 3, 1), txs[0].Date)
	assert.Equal(t, "Lunch", txs[0].Description)
	assert.Equal(t, transaction.CategoryFood, txs[0].Category)
	assert.Equal(t, int64(1250), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, date(2025, 3, 2), txs[1].Date)
	assert.Equal(t, "Salary, March", txs[1].Description)
	assert.Empty(t, txs[1].Category)
	assert.Equal(t, int64(100000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_Signed(t *testing.T) {
	csv := `Data;Descrição;Montante
01/02/2026;Supermercado;-1.234,56

03/02/2026;Transferência;800,00
`

	txs, err := delimited.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Supermercado", txs[0].Description)
	assert.Equal(t, int64(123456), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, "Transferência", txs[1].Description)
	assert.Equal(t, int64(80000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_Split(t *testing.T) {
	csv := `Account statement
Date,Memo,Debit,Credit
2026-01-05,Bus pass,40.00,
2026-01-06,Refund,,15.25
`

	txs, err := delimited.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(4000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, int64(1525), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name      string
		csv       string
		wantIndex int
		wantMsg   string
	}

	tests := []testCase{
		{
			name:      "no header",
			csv:       "foo,bar\n1,2\n",
			wantIndex: -1,
			wantMsg:   "no header",
		},
		{
			name:      "bad date",
			csv:       "date,description,amount\n2025-01-01,Ok,-1\nyesterday,Bad,-2\n",
			wantIndex: 1,
			wantMsg:   "line 3",
		},
		{
			name:      "bad amount",
			csv:       "date,description,amount\n2025-01-01,Bad,abc\n",
			wantIndex: 0,
			wantMsg:   "invalid amount",
		},
		{
			name:      "zero amount",
			csv:       "date,description,amount,type\n2025-01-01,Free,0,expense\n",
			wantIndex: 0,
			wantMsg:   "must not be zero",
		},
		{
			name:      "unknown type",
			csv:       "date,description,amount,type\n2025-01-01,Lunch,5,refund\n",
			wantIndex: 0,
			wantMsg:   "unknown type",
		},
		{
			name:      "unknown category",
			csv:       "date,description,category,amount\n2025-01-01,Lunch,Travel,-5\n",
			wantIndex: 0,
			wantMsg:   "unknown category",
		},
		{
			name:      "missing description",
			csv:       "date,description,amount\n2025-01-01,,-5\n",
			wantIndex: 0,
			wantMsg:   "missing description",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := delimited.NewParser().Parse(strings.NewReader(tc.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, transaction.ErrImportFormat)

			var formatErr *transaction.ImportFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tc.wantIndex, formatErr.Index)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
