package lineimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/poflow/internal/lineimport"
)

func TestParser_Generic(t *testing.T) {
	csv := `Quotation Q-7781,,,,
Acme Steel Ltd,,,,
,,,,
Item,Qty,Unit,Unit Price,Line Total
M12 x 50 bolts grade 8.8,200,ea,£0.35,£70.00
"Angle 50x50x6, S275",12,m,"£1,204.50","£14,454.00"
Delivery,1,,POA,
,,,,
Sub Total,,,,"£14,524.00"
`

	res, err := lineimport.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "generic", res.Profile)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.LineItems, 2)

	first := res.LineItems[0]
	assert.Equal(t, "M12 x 50 bolts grade 8.8", first.Description)
	assert.Equal(t, "200", first.Quantity.String())
	assert.Equal(t, "ea", first.Unit)
	assert.Equal(t, "0.35", first.UnitPrice.StringFixed(2))
	assert.Equal(t, "GBP", first.Currency)

	second := res.LineItems[1]
	assert.Equal(t, "Angle 50x50x6, S275", second.Description)
	assert.Equal(t, "1204.50", second.UnitPrice.StringFixed(2))

	assert.Equal(t, "14524.00", res.Total().StringFixed(2))
}

func TestParser_MerchantSemicolon(t *testing.T) {
	csv := "Product Code;Product Description;Order Qty;UOM;Nett Price\n" +
		"CG20;Cable gland 20mm;50;EA;1.10\n" +
		"CG25;Cable gland 25mm;25;EA;1.45\n"

	res, err := lineimport.NewParser("GBP").Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "merchant", res.Profile)
	require.Len(t, res.LineItems, 2)
	assert.Equal(t, "Cable gland 25mm", res.LineItems[1].Description)
	assert.Equal(t, "EA", res.LineItems[1].Unit)
	assert.Equal(t, "1.45", res.LineItems[1].UnitPrice.StringFixed(2))
}

func TestParser_ContinentalWindows1252(t *testing.T) {
	csv := "Désignation;Quantité;Unité;Prix unitaire\n" +
		"Tôle inox 2mm;3;pce;1.234,50 €\n"

	latin, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	res, err := lineimport.NewParser("EUR").Parse(bytes.NewReader(latin))
	require.NoError(t, err)

	assert.Equal(t, "continental", res.Profile)
	require.Len(t, res.LineItems, 1)
	assert.Equal(t, "Tôle inox 2mm", res.LineItems[0].Description)
	assert.Equal(t, "1234.50", res.LineItems[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "EUR", res.LineItems[0].Currency)
}

func TestParser_TabSeparatedWithoutUnit(t *testing.T) {
	csv := "Description\tQuantity\tPrice\nHire of MEWP (week)\t2\t385\n"

	res, err := lineimport.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, res.LineItems, 1)
	assert.Empty(t, res.LineItems[0].Unit)
	assert.Equal(t, "385.00", res.LineItems[0].UnitPrice.StringFixed(2))
}

func TestParser_NoHeader(t *testing.T) {
	_, err := lineimport.NewParser("").Parse(strings.NewReader("just,some,numbers\n1,2,3\n"))
	assert.ErrorIs(t, err, lineimport.ErrNoHeader)
}
