package purchaseorder_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

func TestNormalizeLineItems(t *testing.T) {
	delivery := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	expected := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	items := []purchaseorder.LineItem{
		{Description: "  M12 bolts ", Quantity: decimal.NewFromInt(100), Unit: " ea", UnitPrice: decimal.RequireFromString("0.35")},
		{Description: "   "},
		{Description: "test certificates", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(40)},
		{Description: "Flange", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(12), Currency: "EUR", ExpectedDate: &expected},
	}

	t.Run("injects certificates when required", func(t *testing.T) {
		meta := purchaseorder.Metadata{TestCertificatesRequired: true, DeliveryDate: &delivery}

		got, err := purchaseorder.NormalizeLineItems(meta, items)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "M12 bolts", got[0].Description)
		assert.Equal(t, "ea", got[0].Unit)
		assert.Equal(t, "GBP", got[0].Currency)
		require.NotNil(t, got[0].ExpectedDate)
		assert.True(t, delivery.Equal(*got[0].ExpectedDate))

		assert.Equal(t, "EUR", got[1].Currency)
		assert.True(t, expected.Equal(*got[1].ExpectedDate))

		cert := got[2]
		assert.Equal(t, purchaseorder.TestCertificatesDescription, cert.Description)
		assert.True(t, cert.Quantity.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, "Set", cert.Unit)
		assert.True(t, cert.UnitPrice.IsZero())
	})

	t.Run("removes certificates when not required", func(t *testing.T) {
		got, err := purchaseorder.NormalizeLineItems(purchaseorder.Metadata{}, items)
		require.NoError(t, err)
		require.Len(t, got, 2)

		for _, li := range got {
			assert.NotEqual(t, purchaseorder.TestCertificatesDescription, li.Description)
		}

		assert.Nil(t, got[0].ExpectedDate)
	})

	t.Run("does not alias the delivery date", func(t *testing.T) {
		meta := purchaseorder.Metadata{DeliveryDate: &delivery}

		got, err := purchaseorder.NormalizeLineItems(meta, items[:1])
		require.NoError(t, err)

		*got[0].ExpectedDate = got[0].ExpectedDate.AddDate(0, 0, 1)
		assert.Equal(t, 2, delivery.Day())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := purchaseorder.NormalizeLineItems(purchaseorder.Metadata{}, []purchaseorder.LineItem{
			{Description: "Pipe", Quantity: decimal.NewFromInt(-1)},
		})
		assert.ErrorIs(t, err, purchaseorder.ErrValidation)
	})
}

func TestMetadataPatch_Apply(t *testing.T) {
	ref := "Q-1001"
	base := purchaseorder.Metadata{
		DeliveryTerms:            "Ex works",
		SupplierReferenceNumber:  &ref,
		TestCertificatesRequired: true,
	}

	terms := "Delivered"
	no := false

	patch := purchaseorder.MetadataPatch{DeliveryTerms: &terms, TestCertificatesRequired: &no}
	got := patch.Apply(base)

	assert.Equal(t, "Delivered", got.DeliveryTerms)
	assert.False(t, got.TestCertificatesRequired)
	require.NotNil(t, got.SupplierReferenceNumber)
	assert.Equal(t, "Q-1001", *got.SupplierReferenceNumber)

	assert.True(t, purchaseorder.MetadataPatch{}.IsEmpty())
	assert.False(t, patch.IsEmpty())
}
