package delimited

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Parser reads comma- or semicolon-separated exports with a header row.
// The column layout is detected by matching header names against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &transaction.ImportFormatError{Index: -1, Err: fmt.Errorf("read csv: %w", err)}
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, &transaction.ImportFormatError{
			Index: -1,
			Err:   errors.New("no header found: expected date, description and amount columns"),
		}
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' when the first line has more semicolons than commas.
func detectDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i
		}
	}

	return -1
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, aliases := range p.required() {
		if cols.find(aliases) < 0 {
			return false
		}
	}

	return true
}

// parseRows converts data rows into transactions. Blank rows are skipped; any
// other unreadable row rejects the file. firstLine is the 0-based line of rows[0].
func parseRows(p *Profile, cols colIndex, rows [][]string, firstLine int) ([]transaction.Transaction, error) {
	var (
		dateIdx     = cols.find(dateAliases)
		descIdx     = cols.find(descAliases)
		categoryIdx = cols.find(categoryAliases)
	)

	txs := make([]transaction.Transaction, 0, len(rows))

	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		entry := len(txs)
		fail := func(format string, args ...any) error {
			return &transaction.ImportFormatError{
				Index: entry,
				Err:   fmt.Errorf("line %d: %s", firstLine+i+1, fmt.Sprintf(format, args...)),
			}
		}

		date, err := transaction.ParseDate(cellValue(row, dateIdx))
		if err != nil {
			return nil, fail("%v", err)
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fail("missing description")
		}

		var category transaction.Category

		if s := cellValue(row, categoryIdx); s != "" {
			c, ok := transaction.ParseCategory(s)
			if !ok {
				return nil, fail("unknown category %q", s)
			}

			category = c
		}

		amount, txType, err := rowAmount(p, cols, row)
		if err != nil {
			return nil, fail("%v", err)
		}

		txs = append(txs, transaction.Transaction{
			Date:        date,
			Description: desc,
			Category:    category,
			Amount:      amount,
			Type:        txType,
		})
	}

	return txs, nil
}

// rowAmount extracts the amount and transaction type from a row based on the profile's amount mode.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, error) {
	switch p.AmountMode {
	case amountTyped:
		cents, err := positiveAmount(cellValue(row, cols.find(amountAliases)))
		if err != nil {
			return 0, "", err
		}

		s := cellValue(row, cols.find(typeAliases))

		t, ok := transaction.ParseType(s)
		if !ok {
			return 0, "", fmt.Errorf("unknown type %q", s)
		}

		return cents, t, nil

	case amountSplit:
		if s := cellValue(row, cols.find(debitAliases)); s != "" {
			cents, err := positiveAmount(s)
			return cents, transaction.TypeExpense, err
		}

		if s := cellValue(row, cols.find(creditAliases)); s != "" {
			cents, err := positiveAmount(s)
			return cents, transaction.TypeIncome, err
		}

		return 0, "", errors.New("missing debit or credit")

	case amountSigned:
		s := cellValue(row, cols.find(amountAliases))
		if s == "" {
			return 0, "", errors.New("missing amount")
		}

		cents, err := parseAmount(s)
		if err != nil {
			return 0, "", fmt.Errorf("invalid amount %q", s)
		}

		if cents < 0 {
			return -cents, transaction.TypeExpense, nil
		}

		if cents == 0 {
			return 0, "", errors.New("amount must not be zero")
		}

		return cents, transaction.TypeIncome, nil
	}

	return 0, "", errors.New("unsupported layout")
}

func positiveAmount(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("missing amount")
	}

	cents, err := parseAmount(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if cents < 0 {
		cents = -cents
	}

	if cents == 0 {
		return 0, errors.New("amount must not be zero")
	}

	return cents, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
