package purchaseorder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dirhttp "github.com/MrJamesThe3rd/poflow/internal/http/directory"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

const dateLayout = time.DateOnly

type purchaseOrderResponse struct {
	ID                    uuid.UUID            `json:"id"`
	PONumber              int64                `json:"po_number"`
	DisplayNumber         string               `json:"display_number"`
	ProjectID             uuid.UUID            `json:"project_id"`
	ProjectNumber         string               `json:"project_number,omitempty"`
	SupplierID            uuid.UUID            `json:"supplier_id"`
	SupplierName          string               `json:"supplier_name,omitempty"`
	DeliveryAddressID     *uuid.UUID           `json:"delivery_address_id,omitempty"`
	ManualDeliveryAddress *string              `json:"manual_delivery_address,omitempty"`
	DeliveryContactID     *uuid.UUID           `json:"delivery_contact_id,omitempty"`
	Status                purchaseorder.Status `json:"status"`
	Revision              string               `json:"revision"`
	Active                bool                 `json:"active"`
	AccComplete           bool                 `json:"acc_complete"`
	InvoiceReference      *string              `json:"invoice_reference,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

type metadataResponse struct {
	DeliveryTerms            string  `json:"delivery_terms"`
	DeliveryDate             *string `json:"delivery_date,omitempty"`
	TestCertificatesRequired bool    `json:"test_certificates_required"`
	SupplierReferenceNumber  *string `json:"supplier_reference_number,omitempty"`
	SupplierContactName      *string `json:"supplier_contact_name,omitempty"`
}

type lineItemResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Description        string           `json:"description"`
	Quantity           decimal.Decimal  `json:"quantity"`
	Unit               string           `json:"unit"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	Currency           string           `json:"currency"`
	Total              decimal.Decimal  `json:"total"`
	QtyReceived        *decimal.Decimal `json:"qty_received,omitempty"`
	ExpedExpectedDate  *string          `json:"exped_expected_date,omitempty"`
	ExpedCompletedDate *string          `json:"exped_completed_date,omitempty"`
}

type totalsResponse struct {
	Net   decimal.Decimal `json:"net"`
	VAT   decimal.Decimal `json:"vat"`
	Gross decimal.Decimal `json:"gross"`
}

type detailResponse struct {
	PurchaseOrder   purchaseOrderResponse     `json:"purchase_order"`
	Metadata        *metadataResponse         `json:"metadata,omitempty"`
	LineItems       []lineItemResponse        `json:"line_items"`
	Totals          totalsResponse            `json:"totals"`
	Project         *dirhttp.ProjectResponse  `json:"project,omitempty"`
	Supplier        *dirhttp.SupplierResponse `json:"supplier,omitempty"`
	DeliveryAddress *dirhttp.SupplierResponse `json:"delivery_address,omitempty"`
	DeliveryContact *dirhttp.ContactResponse  `json:"delivery_contact,omitempty"`
	AllowedStatuses []purchaseorder.Status    `json:"allowed_statuses"`
}

type saveResponse struct {
	ID uuid.UUID `json:"id"`
}

type formOptionsResponse struct {
	AllowedStatuses   []purchaseorder.Status     `json:"allowed_statuses"`
	Projects          []dirhttp.ProjectResponse  `json:"projects"`
	Suppliers         []dirhttp.SupplierResponse `json:"suppliers"`
	DeliveryAddresses []dirhttp.SupplierResponse `json:"delivery_addresses"`
	Contacts          []dirhttp.ContactResponse  `json:"contacts"`
	FormToken         string                     `json:"form_token,omitempty"`
}

type importResponse struct {
	Profile   string             `json:"profile"`
	Charset   string             `json:"charset"`
	Skipped   int                `json:"skipped"`
	Total     decimal.Decimal    `json:"total"`
	LineItems []lineItemResponse `json:"line_items"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(dateLayout))
}

func toResponse(po *purchaseorder.PurchaseOrder) purchaseOrderResponse {
	return purchaseOrderResponse{
		ID:                    po.ID,
		PONumber:              po.PONumber,
		DisplayNumber:         po.DisplayNumber(),
		ProjectID:             po.ProjectID,
		ProjectNumber:         po.ProjectNumber,
		SupplierID:            po.SupplierID,
		SupplierName:          po.SupplierName,
		DeliveryAddressID:     po.DeliveryAddressID,
		ManualDeliveryAddress: po.ManualDeliveryAddress,
		DeliveryContactID:     po.DeliveryContactID,
		Status:                po.Status,
		Revision:              po.Revision,
		Active:                po.Active,
		AccComplete:           po.AccComplete,
		InvoiceReference:      po.InvoiceReference,
		CreatedAt:             po.CreatedAt,
		UpdatedAt:             po.UpdatedAt,
	}
}

func toResponseList(pos []*purchaseorder.PurchaseOrder) []purchaseOrderResponse {
	resp := make([]purchaseOrderResponse, len(pos))
	for i, po := range pos {
		resp[i] = toResponse(po)
	}

	return resp
}

func toLineItemResponses(items []purchaseorder.LineItem) []lineItemResponse {
	resp := make([]lineItemResponse, len(items))
	for i, li := range items {
		resp[i] = lineItemResponse{
			ID:                 li.ID,
			Description:        li.Description,
			Quantity:           li.Quantity,
			Unit:               li.Unit,
			UnitPrice:          li.UnitPrice,
			Currency:           li.Currency,
			Total:              li.Total(),
			QtyReceived:        li.QtyReceived,
			ExpedExpectedDate:  formatDate(li.ExpectedDate),
			ExpedCompletedDate: formatDate(li.CompletedDate),
		}
	}

	return resp
}

func toDetailResponse(d *purchaseorder.Detail, vatRate decimal.Decimal) detailResponse {
	net, vat, gross := d.Totals(vatRate)

	resp := detailResponse{
		PurchaseOrder:   toResponse(d.PurchaseOrder),
		LineItems:       toLineItemResponses(d.LineItems),
		Totals:          totalsResponse{Net: net, VAT: vat, Gross: gross},
		Project:         dirhttp.ToProject(d.Project),
		Supplier:        dirhttp.ToSupplier(d.Supplier),
		DeliveryAddress: dirhttp.ToSupplier(d.DeliveryAddress),
		DeliveryContact: dirhttp.ToContact(d.DeliveryContact),
		AllowedStatuses: allowedStatuses(d.PurchaseOrder),
	}

	if d.Metadata != nil {
		resp.Metadata = &metadataResponse{
			DeliveryTerms:            d.Metadata.DeliveryTerms,
			DeliveryDate:             formatDate(d.Metadata.DeliveryDate),
			TestCertificatesRequired: d.Metadata.TestCertificatesRequired,
			SupplierReferenceNumber:  d.Metadata.SupplierReferenceNumber,
			SupplierContactName:      d.Metadata.SupplierContactName,
		}
	}

	return resp
}

// allowedStatuses is what the edit form may offer. An inactive snapshot
// is read-only.
func allowedStatuses(po *purchaseorder.PurchaseOrder) []purchaseorder.Status {
	if po == nil {
		return []purchaseorder.Status{purchaseorder.StatusDraft}
	}

	if !po.Active {
		return []purchaseorder.Status{}
	}

	return purchaseorder.AllowedNextStatuses(po.Status)
}
