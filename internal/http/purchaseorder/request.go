package purchaseorder

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type deliveryRequest struct {
	AddressID     *uuid.UUID            `json:"address_id"`
	ManualAddress *string               `json:"manual_address"`
	ContactID     *uuid.UUID            `json:"contact_id"`
	ManualContact *manualContactRequest `json:"manual_contact"`
}

type manualContactRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone" validate:"max=50"`
	AddressID *uuid.UUID `json:"address_id"`
}

type metadataRequest struct {
	DeliveryTerms            *string `json:"delivery_terms"`
	DeliveryDate             *string `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	TestCertificatesRequired *bool   `json:"test_certificates_required"`
	SupplierReferenceNumber  *string `json:"supplier_reference_number"`
	SupplierContactName      *string `json:"supplier_contact_name"`
}

type lineItemRequest struct {
	Description        string           `json:"description"`
	Quantity           decimal.Decimal  `json:"quantity"`
	Unit               string           `json:"unit"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	Currency           string           `json:"currency" validate:"omitempty,len=3"`
	QtyReceived        *decimal.Decimal `json:"qty_received"`
	ExpedExpectedDate  *string          `json:"exped_expected_date" validate:"omitempty,datetime=2006-01-02"`
	ExpedCompletedDate *string          `json:"exped_completed_date" validate:"omitempty,datetime=2006-01-02"`
}

type createRequest struct {
	FormToken  string            `json:"form_token"`
	ProjectID  uuid.UUID         `json:"project_id" validate:"required"`
	SupplierID uuid.UUID         `json:"supplier_id" validate:"required"`
	Delivery   deliveryRequest   `json:"delivery"`
	Metadata   metadataRequest   `json:"metadata"`
	LineItems  []lineItemRequest `json:"line_items" validate:"dive"`
}

type saveRequest struct {
	FormToken  string            `json:"form_token"`
	Status     string            `json:"status" validate:"required"`
	Bump       bool              `json:"bump"`
	ProjectID  *uuid.UUID        `json:"project_id"`
	SupplierID *uuid.UUID        `json:"supplier_id"`
	Delivery   deliveryRequest   `json:"delivery"`
	Metadata   metadataRequest   `json:"metadata"`
	LineItems  []lineItemRequest `json:"line_items" validate:"dive"`
}

// parseDate reads an optional YYYY-MM-DD value. Validation has already
// checked the layout.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", *s, err)
	}

	return &t, nil
}

func (d deliveryRequest) toInput() purchaseorder.DeliveryInput {
	in := purchaseorder.DeliveryInput{
		AddressID:     d.AddressID,
		ManualAddress: d.ManualAddress,
		ContactID:     d.ContactID,
	}

	if d.ManualContact != nil {
		in.ManualContact = &purchaseorder.ManualContact{
			Name:      d.ManualContact.Name,
			Email:     d.ManualContact.Email,
			Phone:     d.ManualContact.Phone,
			AddressID: d.ManualContact.AddressID,
		}
	}

	return in
}

func (m metadataRequest) toPatch() (purchaseorder.MetadataPatch, error) {
	date, err := parseDate(m.DeliveryDate)
	if err != nil {
		return purchaseorder.MetadataPatch{}, err
	}

	return purchaseorder.MetadataPatch{
		DeliveryTerms:            m.DeliveryTerms,
		DeliveryDate:             date,
		TestCertificatesRequired: m.TestCertificatesRequired,
		SupplierReferenceNumber:  m.SupplierReferenceNumber,
		SupplierContactName:      m.SupplierContactName,
	}, nil
}

func toLineItems(reqs []lineItemRequest) ([]purchaseorder.LineItem, error) {
	items := make([]purchaseorder.LineItem, 0, len(reqs))

	for _, r := range reqs {
		expected, err := parseDate(r.ExpedExpectedDate)
		if err != nil {
			return nil, err
		}

		completed, err := parseDate(r.ExpedCompletedDate)
		if err != nil {
			return nil, err
		}

		items = append(items, purchaseorder.LineItem{
			Description:   r.Description,
			Quantity:      r.Quantity,
			Unit:          r.Unit,
			UnitPrice:     r.UnitPrice,
			Currency:      r.Currency,
			QtyReceived:   r.QtyReceived,
			ExpectedDate:  expected,
			CompletedDate: completed,
		})
	}

	return items, nil
}

func (r createRequest) toCreate() (purchaseorder.CreateRequest, error) {
	meta, err := r.Metadata.toPatch()
	if err != nil {
		return purchaseorder.CreateRequest{}, err
	}

	items, err := toLineItems(r.LineItems)
	if err != nil {
		return purchaseorder.CreateRequest{}, err
	}

	return purchaseorder.CreateRequest{
		ProjectID:  r.ProjectID,
		SupplierID: r.SupplierID,
		Delivery:   r.Delivery.toInput(),
		Metadata:   meta,
		LineItems:  items,
	}, nil
}

func (r saveRequest) toSave(id uuid.UUID) (purchaseorder.SaveRequest, error) {
	meta, err := r.Metadata.toPatch()
	if err != nil {
		return purchaseorder.SaveRequest{}, err
	}

	items, err := toLineItems(r.LineItems)
	if err != nil {
		return purchaseorder.SaveRequest{}, err
	}

	return purchaseorder.SaveRequest{
		ID:         id,
		Status:     r.Status,
		Bump:       r.Bump,
		ProjectID:  r.ProjectID,
		SupplierID: r.SupplierID,
		Delivery:   r.Delivery.toInput(),
		Metadata:   meta,
		LineItems:  items,
	}, nil
}
