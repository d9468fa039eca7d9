package importer

import (
	"io"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Importer parses an external file into candidate transactions. Candidates
// are validated again when merged into the ledger.
type Importer interface {
	Parse(r io.Reader) ([]transaction.Transaction, error)
}
