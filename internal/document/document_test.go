package document_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/document"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

func detail() *purchaseorder.Detail {
	delivery := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	return &purchaseorder.Detail{
		PurchaseOrder: &purchaseorder.PurchaseOrder{
			ID:                    uuid.New(),
			PONumber:              42,
			Status:                purchaseorder.StatusIssued,
			Revision:              "2",
			ManualDeliveryAddress: new("Gate 3\nHarbour Road\nHull"),
		},
		Metadata: &purchaseorder.Metadata{
			DeliveryTerms:           "DAP site",
			DeliveryDate:            &delivery,
			SupplierReferenceNumber: new("Q-7781"),
		},
		LineItems: []purchaseorder.LineItem{
			{Description: "M12 bolts £ grade 8.8", Quantity: decimal.NewFromInt(200), Unit: "ea", UnitPrice: decimal.RequireFromString("0.35"), Currency: "GBP"},
			{Description: purchaseorder.TestCertificatesDescription, Quantity: decimal.NewFromInt(1), Unit: "Set", Currency: "GBP"},
		},
		Project:         &directory.Project{Number: "2417", Name: "Depot roof"},
		Supplier:        &directory.Supplier{Name: "Acme Steel", AddressLine1: "4 Mill Lane", City: "Leeds"},
		DeliveryContact: &directory.Contact{Name: "Stores", Phone: "01482 000000"},
	}
}

func TestRenderer_Render(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := document.NewRenderer("Example Engineering Ltd", document.WithClock(func() time.Time { return now }))

	out, err := r.Render(detail())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(bytes.TrimSpace(out[len(out)-16:])), "%%EOF")
}

func TestRenderer_RenderNothing(t *testing.T) {
	_, err := document.NewRenderer("x").Render(&purchaseorder.Detail{})
	assert.Error(t, err)
}

func TestFilenameAndSubdir(t *testing.T) {
	d := detail()

	assert.Equal(t, "PO_000042_2.pdf", document.Filename(d.PurchaseOrder))
	assert.Equal(t, "2417", document.Subdir(d))

	d.Project = nil
	assert.Equal(t, "unassigned", document.Subdir(d))

	d.PurchaseOrder.ProjectNumber = "2502"
	assert.Equal(t, "2502", document.Subdir(d))
}
