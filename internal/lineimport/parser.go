// Package lineimport turns supplier quote spreadsheets (saved as CSV) into
// purchase order line items.
package lineimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/poflow/internal/encoding"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

var ErrNoHeader = errors.New("no recognised header row: expected description, quantity and price columns")

// Result is what a quote file yielded.
type Result struct {
	Profile   string
	Charset   string
	LineItems []purchaseorder.LineItem
	// Skipped counts data rows that had a description but an unreadable
	// quantity or price.
	Skipped int
}

// Parser reads supplier quote CSVs. It auto-detects the text encoding,
// the delimiter and which column layout is in use.
type Parser struct {
	currency string
}

func NewParser(currency string) *Parser {
	if currency == "" {
		currency = purchaseorder.DefaultCurrency
	}

	return &Parser{currency: currency}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read quote: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoHeader
	}

	res := &Result{Profile: profile.Name, Charset: charset}

	for _, row := range rows[headerIdx+1:] {
		desc := cellValue(row, cols.desc)
		if desc == "" || isTotalRow(desc) {
			continue
		}

		qty, err := parseNumber(cellValue(row, cols.qty), profile.DecimalComma)
		if err != nil {
			res.Skipped++
			continue
		}

		price, err := parseNumber(cellValue(row, cols.price), profile.DecimalComma)
		if err != nil {
			res.Skipped++
			continue
		}

		res.LineItems = append(res.LineItems, purchaseorder.LineItem{
			Description: desc,
			Quantity:    qty,
			Unit:        cellValue(row, cols.unit),
			UnitPrice:   price.Round(2),
			Currency:    p.currency,
		})
	}

	return res, nil
}

// sniffDelimiter picks ';', '\t' or ',' by which is most common in the
// first few lines.
func sniffDelimiter(data []byte) rune {
	counts := map[rune]int{}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 0; n < 20 && sc.Scan(); n++ {
		line := sc.Text()
		counts[';'] += strings.Count(line, ";")
		counts['\t'] += strings.Count(line, "\t")
		counts[','] += strings.Count(line, ",")
	}

	best := ','
	for _, d := range []rune{';', '\t'} {
		if counts[d] > counts[best] {
			best = d
		}
	}

	return best
}

func detectProfile(rows [][]string) (*Profile, columns, int) {
	for rowIdx, row := range rows {
		idx := make(colIndex)

		for i, cell := range row {
			if name := normalizeHeading(cell); name != "" {
				if _, dup := idx[name]; !dup {
					idx[name] = i
				}
			}
		}

		for i := range profiles {
			if cols, ok := profiles[i].match(idx); ok {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, columns{}, 0
}

func isTotalRow(desc string) bool {
	switch normalizeHeading(desc) {
	case "total", "sub total", "subtotal", "net total", "vat", "grand total":
		return true
	}

	return false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// Total is the net value of the imported items.
func (r *Result) Total() decimal.Decimal {
	var sum decimal.Decimal

	for _, li := range r.LineItems {
		sum = sum.Add(li.Total())
	}

	return sum
}
