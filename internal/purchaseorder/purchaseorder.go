package purchaseorder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
)

// DefaultCurrency is applied to line items submitted without one.
const DefaultCurrency = "GBP"

// PurchaseOrder is one snapshot row. Every revision that creates a new
// snapshot inserts a new row sharing PONumber; only one is Active.
type PurchaseOrder struct {
	ID                    uuid.UUID
	PONumber              int64
	ProjectID             uuid.UUID
	SupplierID            uuid.UUID
	DeliveryAddressID     *uuid.UUID
	ManualDeliveryAddress *string
	DeliveryContactID     *uuid.UUID
	Status                Status
	Revision              string
	Active                bool
	AccComplete           bool
	InvoiceReference      *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Loaded via JOIN
	ProjectNumber string
	SupplierName  string
}

// DisplayNumber is the zero-padded form used on documents and emails.
func (po *PurchaseOrder) DisplayNumber() string {
	return fmt.Sprintf("%06d", po.PONumber)
}

// Precondition is the optimistic concurrency guard for writes against an
// existing snapshot row.
func (po *PurchaseOrder) Precondition() Precondition {
	return Precondition{Revision: po.Revision, UpdatedAt: po.UpdatedAt}
}

// Precondition holds the values a row must still carry for a conditional
// write to apply.
type Precondition struct {
	Revision  string
	UpdatedAt time.Time
}

// Metadata holds the per-snapshot delivery and supplier details.
type Metadata struct {
	ID                       uuid.UUID
	POID                     uuid.UUID
	DeliveryTerms            string
	DeliveryDate             *time.Time
	TestCertificatesRequired bool
	SupplierReferenceNumber  *string
	SupplierContactName      *string
	Active                   bool
}

// MetadataPatch carries only the fields a caller submitted. Nil fields
// leave the stored value untouched.
type MetadataPatch struct {
	DeliveryTerms            *string
	DeliveryDate             *time.Time
	TestCertificatesRequired *bool
	SupplierReferenceNumber  *string
	SupplierContactName      *string
}

func (p MetadataPatch) IsEmpty() bool {
	return p.DeliveryTerms == nil &&
		p.DeliveryDate == nil &&
		p.TestCertificatesRequired == nil &&
		p.SupplierReferenceNumber == nil &&
		p.SupplierContactName == nil
}

// Apply returns m with every non-nil field of p written over it.
func (p MetadataPatch) Apply(m Metadata) Metadata {
	if p.DeliveryTerms != nil {
		m.DeliveryTerms = *p.DeliveryTerms
	}

	if p.DeliveryDate != nil {
		m.DeliveryDate = p.DeliveryDate
	}

	if p.TestCertificatesRequired != nil {
		m.TestCertificatesRequired = *p.TestCertificatesRequired
	}

	if p.SupplierReferenceNumber != nil {
		m.SupplierReferenceNumber = p.SupplierReferenceNumber
	}

	if p.SupplierContactName != nil {
		m.SupplierContactName = p.SupplierContactName
	}

	return m
}

// LineItem is one ordered product on a snapshot.
type LineItem struct {
	ID            uuid.UUID
	POID          uuid.UUID
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	Currency      string
	QtyReceived   *decimal.Decimal
	ExpectedDate  *time.Time
	CompletedDate *time.Time
	Active        bool
}

// Total is quantity multiplied by unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Detail is a purchase order with everything needed to render it.
type Detail struct {
	PurchaseOrder   *PurchaseOrder
	Metadata        *Metadata
	LineItems       []LineItem
	Project         *directory.Project
	Supplier        *directory.Supplier
	DeliveryAddress *directory.Supplier
	DeliveryContact *directory.Contact
}

// Totals returns net, VAT and gross for the active line items.
func (d *Detail) Totals(vatRate decimal.Decimal) (net, vat, gross decimal.Decimal) {
	for _, li := range d.LineItems {
		net = net.Add(li.Total())
	}

	vat = net.Mul(vatRate).Round(2)

	return net, vat, net.Add(vat)
}

// DeliveryInput is the delivery section of a create or save request.
type DeliveryInput struct {
	AddressID     *uuid.UUID
	ManualAddress *string
	ContactID     *uuid.UUID
	ManualContact *ManualContact
}

// ManualContact is a delivery contact typed in on the form. It is created
// on save.
type ManualContact struct {
	Name      string
	Email     string
	Phone     string
	AddressID *uuid.UUID
}

// ListFilter narrows List to active snapshots matching every set field.
type ListFilter struct {
	Status    *Status
	ProjectID *uuid.UUID
	PONumber  *int64
}

// MaxRevisions is the highest draft letter and released number a PO has
// carried across all of its snapshots.
type MaxRevisions struct {
	Alpha   string
	Numeric string
}
