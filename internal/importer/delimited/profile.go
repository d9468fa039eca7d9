package delimited

// amountMode determines how amount and type are extracted from a row.
type amountMode int

const (
	// amountTyped means an unsigned amount column plus an income/expense type column.
	amountTyped amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
	// amountSigned means one signed column: negative values are expenses.
	amountSigned
)

// Column names are matched case-insensitively against these aliases.
var (
	dateAliases     = []string{"date", "data", "fecha", "datum"}
	descAliases     = []string{"description", "desc", "memo", "details", "descrição"}
	categoryAliases = []string{"category", "categoria"}
	amountAliases   = []string{"amount", "value", "montante"}
	typeAliases     = []string{"type", "kind"}
	debitAliases    = []string{"debit", "débito", "withdrawal"}
	creditAliases   = []string{"credit", "crédito", "deposit"}
)

// Profile describes one supported column layout.
type Profile struct {
	Name       string
	AmountMode amountMode
}

// required returns the aliases of every column that must be present for this profile to match.
func (p Profile) required() [][]string {
	cols := [][]string{dateAliases, descAliases}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, amountAliases, typeAliases)
	case amountSplit:
		cols = append(cols, debitAliases, creditAliases)
	case amountSigned:
		cols = append(cols, amountAliases)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{Name: "typed", AmountMode: amountTyped},
	{Name: "split", AmountMode: amountSplit},
	{Name: "signed", AmountMode: amountSigned},
}
