package lineimport

import "strings"

// Profile describes the column headings of one supplier quote layout.
// Each field lists accepted spellings; matching ignores case and spacing.
type Profile struct {
	Name  string
	Desc  []string
	Qty   []string
	Unit  []string
	Price []string
	// DecimalComma reads "1.234,56" instead of "1,234.56".
	DecimalComma bool
}

// profiles are tried in order against every row until one matches.
// More specific profiles come first.
var profiles = []Profile{
	{
		Name:  "merchant",
		Desc:  []string{"product description", "item description"},
		Qty:   []string{"order qty", "qty ordered"},
		Unit:  []string{"uom", "unit of measure"},
		Price: []string{"nett price", "net price", "nett unit price"},
	},
	{
		Name:         "continental",
		Desc:         []string{"bezeichnung", "désignation", "designation"},
		Qty:          []string{"menge", "quantité"},
		Unit:         []string{"einheit", "unité"},
		Price:        []string{"einzelpreis", "prix unitaire"},
		DecimalComma: true,
	},
	{
		Name:  "generic",
		Desc:  []string{"description", "item", "details"},
		Qty:   []string{"qty", "quantity", "quan"},
		Unit:  []string{"unit", "units", "uom"},
		Price: []string{"unit price", "price", "rate", "unit cost"},
	},
}

func normalizeHeading(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// colIndex maps normalised headings to their index in the row.
type colIndex map[string]int

func (c colIndex) find(names []string) int {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i
		}
	}

	return -1
}

// columns are resolved indexes; unit is optional and may be -1.
type columns struct {
	desc, qty, unit, price int
}

func (p *Profile) match(c colIndex) (columns, bool) {
	cols := columns{
		desc:  c.find(p.Desc),
		qty:   c.find(p.Qty),
		unit:  c.find(p.Unit),
		price: c.find(p.Price),
	}

	return cols, cols.desc >= 0 && cols.qty >= 0 && cols.price >= 0
}
