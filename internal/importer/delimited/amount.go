package delimited

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a possibly signed amount into cents. Whichever of '.' and ','
// appears last is the decimal separator and the other one groups thousands, so
// "1.234,56", "1,234.56" and "1234.56" all yield 123456.
func parseAmount(s string) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', '€', '$', '£', '₹':
			return -1
		}

		return r
	}, s)

	if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(2).Shift(2).IntPart(), nil
}
