package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

var ErrNothingToExport = errors.New("no transactions to export")

// Ledger is the read side of transaction.Service used for backups.
type Ledger interface {
	List(filter transaction.ListFilter) []transaction.Transaction
}

// Service writes pretty-printed JSON backups of the ledger.
type Service struct {
	ledger Ledger
	now    func() time.Time
}

// NewService creates a new export Service. now may be nil to use the wall clock.
func NewService(ledger Ledger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{ledger: ledger, now: now}
}

// Filename returns the backup file name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("transactions_backup_%s.json", t.Format(time.DateOnly))
}

// Filename returns the backup file name for an export taken now.
func (s *Service) Filename() string {
	return Filename(s.now())
}

// Export writes the backup into outputDir and returns the file path.
func (s *Service) Export(outputDir string) (string, error) {
	txs := s.ledger.List(transaction.ListFilter{})
	if len(txs) == 0 {
		return "", ErrNothingToExport
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, s.Filename())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := transaction.EncodeJSON(f, txs, true); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

// Write streams the backup to w. The transactions written are returned so
// callers can report on them.
func (s *Service) Write(w io.Writer) ([]transaction.Transaction, error) {
	txs := s.ledger.List(transaction.ListFilter{})
	if len(txs) == 0 {
		return nil, ErrNothingToExport
	}

	if err := transaction.EncodeJSON(w, txs, true); err != nil {
		return nil, err
	}

	return txs, nil
}

// Transactions returns the transactions an export would contain.
func (s *Service) Transactions() []transaction.Transaction {
	return s.ledger.List(transaction.ListFilter{})
}

// GenerateSummary creates a plain-text report of the exported transactions.
func GenerateSummary(txs []transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s%s\n",
			transaction.FormatDate(tx.Date), tx.Description, tx.Category, sign, transaction.AmountDecimal(tx.Amount).StringFixed(2))
	}

	sum := transaction.Summarize(txs)

	fmt.Fprintf(&sb, "\nTransactions: %d\n", sum.Count)
	fmt.Fprintf(&sb, "Income:  %s\n", transaction.AmountDecimal(sum.TotalIncome).StringFixed(2))
	fmt.Fprintf(&sb, "Expense: %s\n", transaction.AmountDecimal(sum.TotalExpense).StringFixed(2))
	fmt.Fprintf(&sb, "Balance: %s\n", transaction.AmountDecimal(sum.Balance).StringFixed(2))

	for _, ct := range sum.Breakdown {
		if ct.Amount == 0 {
			continue
		}

		fmt.Fprintf(&sb, "  %-10s %s\n", ct.Category, transaction.AmountDecimal(ct.Amount).StringFixed(2))
	}

	return sb.String()
}
