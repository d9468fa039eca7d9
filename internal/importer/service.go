package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/importer/delimited"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Suggester proposes a category for a description; matching.Service satisfies it.
type Suggester interface {
	Suggest(ctx context.Context, description string) (transaction.Category, error)
}

type Service struct {
	jsonImporter Importer
	csvImporter  Importer
	suggester    Suggester
}

// NewService builds an import service. suggester may be nil, in which case
// uncategorised rows fall into Other.
func NewService(suggester Suggester) *Service {
	return &Service{
		jsonImporter: jsonImporter{},
		csvImporter:  delimited.NewParser(),
		suggester:    suggester,
	}
}

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "json":
		return FormatJSON, true
	case "csv", "txt":
		return FormatCSV, true
	}

	return "", false
}

func (s *Service) Import(ctx context.Context, format Format, r io.Reader) ([]transaction.Transaction, error) {
	var importer Importer

	switch format {
	case FormatJSON:
		importer = s.jsonImporter
	case FormatCSV:
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	txs, err := importer.Parse(utf8r)
	if err != nil {
		return nil, err
	}

	s.fillCategories(ctx, txs)

	return txs, nil
}

func (s *Service) fillCategories(ctx context.Context, txs []transaction.Transaction) {
	for i := range txs {
		if txs[i].Category != "" {
			continue
		}

		txs[i].Category = transaction.CategoryOther

		if s.suggester == nil {
			continue
		}

		suggested, err := s.suggester.Suggest(ctx, txs[i].Description)
		if err != nil {
			slog.WarnContext(ctx, "category suggestion failed", "error", err)
			continue
		}

		if suggested != "" {
			txs[i].Category = suggested
		}
	}
}

type jsonImporter struct{}

func (jsonImporter) Parse(r io.Reader) ([]transaction.Transaction, error) {
	return transaction.DecodeJSON(r)
}
