package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// record is the JSON shape shared by the persisted snapshot, exports and imports.
type record struct {
	ID          int64       `json:"id,omitempty"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
}

func toRecord(tx Transaction) record {
	return record{
		ID:          tx.ID,
		Date:        FormatDate(tx.Date),
		Description: tx.Description,
		Category:    string(tx.Category),
		Amount:      json.Number(FormatAmount(tx.Amount)),
		Type:        string(tx.Type),
	}
}

func fromRecord(r record) (Transaction, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Transaction{}, err
	}

	if r.Amount == "" {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "is required"}
	}

	d, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be a number"}
	}

	amount, err := AmountFromDecimal(d)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		ID:          r.ID,
		Date:        date,
		Description: r.Description,
		Category:    Category(r.Category),
		Amount:      amount,
		Type:        Type(r.Type),
	}

	return normalize(tx)
}

// EncodeJSON writes txs as a JSON array. With pretty set the output is
// indented by two spaces, matching the backup file format.
func EncodeJSON(w io.Writer, txs []Transaction, pretty bool) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = toRecord(tx)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}

	return nil
}

// DecodeJSON reads a JSON array of transactions. Anything other than an array
// of well-formed transaction objects fails with an *ImportFormatError.
func DecodeJSON(r io.Reader) ([]Transaction, error) {
	elems, err := decodeArray(r)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(elems))

	for i, raw := range elems {
		tx, err := decodeEntry(i, raw)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

// DecodeSnapshot reads a persisted ledger. Unlike DecodeJSON it keeps every
// valid entry and reports the invalid ones in skipped. err is only set when
// the document is not an array at all.
func DecodeSnapshot(r io.Reader) (txs []Transaction, skipped []*ImportFormatError, err error) {
	elems, err := decodeArray(r)
	if err != nil {
		return nil, nil, err
	}

	txs = make([]Transaction, 0, len(elems))

	for i, raw := range elems {
		tx, err := decodeEntry(i, raw)
		if err != nil {
			var formatErr *ImportFormatError
			if !errors.As(err, &formatErr) {
				return nil, nil, err
			}

			skipped = append(skipped, formatErr)

			continue
		}

		txs = append(txs, tx)
	}

	return txs, skipped, nil
}

func decodeArray(r io.Reader) ([]json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &ImportFormatError{Index: -1, Err: errors.New("top level must be an array")}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &ImportFormatError{Index: -1, Err: err}
	}

	return elems, nil
}

func decodeEntry(i int, raw json.RawMessage) (Transaction, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Transaction{}, &ImportFormatError{Index: i, Err: errors.New("entry must be an object")}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec record
	if err := dec.Decode(&rec); err != nil {
		return Transaction{}, &ImportFormatError{Index: i, Err: err}
	}

	tx, err := fromRecord(rec)
	if err != nil {
		return Transaction{}, &ImportFormatError{Index: i, Err: err}
	}

	return tx, nil
}
