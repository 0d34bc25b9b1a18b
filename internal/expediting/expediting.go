package expediting

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

const PageSize = 50

var (
	ErrNotFound  = errors.New("line item not found")
	ErrNoChanges = errors.New("no updatable fields")
	ErrInvalid   = errors.New("invalid line item update")
)

type SortField string

const (
	SortPONumber  SortField = "po_number"
	SortUpdatedAt SortField = "updated_at"
)

// Query selects one page of active purchase orders.
type Query struct {
	ProjectNumber string
	SupplierName  string
	Status        *purchaseorder.Status
	UpdatedFrom   *time.Time
	UpdatedTo     *time.Time
	Sort          SortField
	Ascending     bool
	Page          int
}

// Normalize clamps unknown sorts and pages to their defaults.
func (q Query) Normalize() Query {
	if q.Sort != SortUpdatedAt {
		q.Sort = SortPONumber
	}

	if q.Page < 1 {
		q.Page = 1
	}

	return q
}

type Row struct {
	POID          uuid.UUID
	PONumber      int64
	ProjectNumber string
	SupplierName  string
	Status        purchaseorder.Status
	Revision      string
	DeliveryDate  *time.Time
	UpdatedAt     time.Time
}

type Page struct {
	Rows       []Row
	Page       int
	TotalPages int
	Total      int
	// StartIndex and EndIndex are 1-based positions of the first and last
	// row shown; both are zero when nothing matched.
	StartIndex int
	EndIndex   int
}

func newPage(rows []Row, total, page int) Page {
	totalPages := max(1, (total+PageSize-1)/PageSize)

	p := Page{Rows: rows, Page: page, TotalPages: totalPages, Total: total}
	if total > 0 {
		p.StartIndex = (page-1)*PageSize + 1
		p.EndIndex = min(page*PageSize, total)
	}

	return p
}

type LineItem struct {
	ID            uuid.UUID
	POID          uuid.UUID
	Description   string
	Quantity      decimal.Decimal
	QtyReceived   *decimal.Decimal
	ExpectedDate  *time.Time
	CompletedDate *time.Time
}

// DatePatch sets a nullable date. Set with a nil Value clears it.
type DatePatch struct {
	Set   bool
	Value *time.Time
}

// LineItemPatch updates expediting fields on one line item.
type LineItemPatch struct {
	QtyReceived   *decimal.Decimal
	ExpectedDate  DatePatch
	CompletedDate DatePatch
}

func (p LineItemPatch) IsEmpty() bool {
	return p.QtyReceived == nil && !p.ExpectedDate.Set && !p.CompletedDate.Set
}
