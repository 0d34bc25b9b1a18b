// Package money formats decimal amounts for documents and reports.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// Format renders amount with two decimals and thousands grouping, prefixed
// by its ISO currency code. Unknown codes fall back to GBP.
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.GBP
	}

	return printer.Sprintf("%s %.2f", unit.String(), amount.Round(2).InexactFloat64())
}

// Plain renders amount with two decimals and no grouping, for CSV cells.
func Plain(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
