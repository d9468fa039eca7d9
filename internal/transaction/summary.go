package transaction

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category Category
	Amount   int64
}

// Summary holds the aggregates derived from a set of transactions. All amounts are cents.
type Summary struct {
	Count        int
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
	// Breakdown always has one entry per category, in Categories order.
	Breakdown []CategoryTotal
}

// ByCategory returns the expense total for c.
func (s Summary) ByCategory(c Category) int64 {
	for _, ct := range s.Breakdown {
		if ct.Category == c {
			return ct.Amount
		}
	}

	return 0
}

// Summarize recomputes every aggregate from scratch.
func Summarize(txs []Transaction) Summary {
	s := Summary{
		Count:     len(txs),
		Breakdown: make([]CategoryTotal, len(Categories)),
	}

	index := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		s.Breakdown[i] = CategoryTotal{Category: c}
		index[c] = i
	}

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			s.TotalIncome += tx.Amount
		case TypeExpense:
			s.TotalExpense += tx.Amount
			if i, ok := index[tx.Category]; ok {
				s.Breakdown[i].Amount += tx.Amount
			}
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpense

	return s
}
