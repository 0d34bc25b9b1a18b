package lineimport

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// parseNumber reads a quantity or price cell. Currency symbols, codes and
// spaces are ignored. With decimalComma, "." groups thousands and ","
// separates decimals; otherwise the reverse.
func parseNumber(s string, decimalComma bool) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}

		return -1
	}, s)

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
