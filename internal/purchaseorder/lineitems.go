package purchaseorder

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TestCertificatesDescription is the description of the line injected when
// the supplier must send test certificates.
const TestCertificatesDescription = "Test Certificates"

// NormalizeLineItems prepares submitted lines for storage: blank lines are
// dropped, the currency defaults to GBP, the expected date defaults to the
// delivery date, and exactly one test certificates line exists iff meta
// requires it.
func NormalizeLineItems(meta Metadata, items []LineItem) ([]LineItem, error) {
	out := make([]LineItem, 0, len(items)+1)

	for i, li := range items {
		li.Description = strings.TrimSpace(li.Description)
		if li.Description == "" {
			continue
		}

		if strings.EqualFold(li.Description, TestCertificatesDescription) {
			continue
		}

		if li.Quantity.IsNegative() {
			return nil, validationError("line %d: quantity cannot be negative", i+1)
		}

		if li.UnitPrice.IsNegative() {
			return nil, validationError("line %d: unit price cannot be negative", i+1)
		}

		out = append(out, li)
	}

	if meta.TestCertificatesRequired {
		out = append(out, LineItem{
			Description: TestCertificatesDescription,
			Quantity:    decimal.NewFromInt(1),
			Unit:        "Set",
			UnitPrice:   decimal.Zero,
		})
	}

	for i := range out {
		out[i].Unit = strings.TrimSpace(out[i].Unit)

		if out[i].Currency == "" {
			out[i].Currency = DefaultCurrency
		}

		if out[i].ExpectedDate == nil && meta.DeliveryDate != nil {
			d := *meta.DeliveryDate
			out[i].ExpectedDate = &d
		}
	}

	return out, nil
}
