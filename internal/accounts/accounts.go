package accounts

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

var (
	ErrNotFound  = errors.New("active purchase order not found")
	ErrNoChanges = errors.New("no updatable fields")
)

// Entry is one active purchase order as the accounts team sees it.
type Entry struct {
	POID             uuid.UUID
	PONumber         int64
	ProjectNumber    string
	SupplierName     string
	Status           purchaseorder.Status
	Revision         string
	AccComplete      bool
	InvoiceReference *string
	Net              decimal.Decimal
	UpdatedAt        time.Time
}

// Filter narrows the overview. Zero values match everything.
type Filter struct {
	AccComplete   *bool
	ProjectNumber string
}

// Update carries the accounts fields a caller submitted. Nil fields are
// left untouched.
type Update struct {
	AccComplete      *bool
	InvoiceReference *string
}

func (u Update) IsEmpty() bool {
	return u.AccComplete == nil && u.InvoiceReference == nil
}
