// Package document renders purchase orders to PDF.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/money"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

var DefaultVATRate = decimal.RequireFromString("0.20")

const (
	pageWidth = 180.0
	lineH     = 5.0
)

type Renderer struct {
	company string
	vatRate decimal.Decimal
	now     func() time.Time
}

type Option func(*Renderer)

func WithVATRate(rate decimal.Decimal) Option {
	return func(r *Renderer) { r.vatRate = rate }
}

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(company string, opts ...Option) *Renderer {
	r := &Renderer{company: company, vatRate: DefaultVATRate, now: time.Now}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) VATRate() decimal.Decimal {
	return r.vatRate
}

// Filename is the archive and download name: PO_<number>_<revision>.pdf.
func Filename(po *purchaseorder.PurchaseOrder) string {
	return fmt.Sprintf("PO_%s_%s.pdf", po.DisplayNumber(), po.Revision)
}

// Subdir is the archive folder for a PO, its project number.
func Subdir(d *purchaseorder.Detail) string {
	if d.Project != nil && d.Project.Number != "" {
		return d.Project.Number
	}

	if d.PurchaseOrder.ProjectNumber != "" {
		return d.PurchaseOrder.ProjectNumber
	}

	return "unassigned"
}

func (r *Renderer) Render(d *purchaseorder.Detail) ([]byte, error) {
	if d == nil || d.PurchaseOrder == nil {
		return nil, fmt.Errorf("rendering purchase order: nothing to render")
	}

	po := d.PurchaseOrder
	now := r.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(fmt.Sprintf("Purchase Order %s", po.DisplayNumber()), true)
	pdf.SetCreator(r.company, true)
	pdf.SetMargins(15, 15, 15)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, lineH, tr(fmt.Sprintf("PO %s rev %s - page %d/{nb}", po.DisplayNumber(), po.Revision, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth/2, 9, tr(r.company), "", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth/2, 9, "PURCHASE ORDER", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth, lineH, tr(fmt.Sprintf("PO No: %s    Revision: %s    Status: %s    Date: %s",
		po.DisplayNumber(), po.Revision, po.Status, now.Format("02 Jan 2006"))), "", 1, "L", false, 0, "")

	if d.Project != nil {
		pdf.CellFormat(pageWidth, lineH, tr("Project: "+d.Project.Label()), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)

	r.addresses(pdf, tr, d)
	r.terms(pdf, tr, d)
	r.lines(pdf, tr, d)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PO %s: %w", po.DisplayNumber(), err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) addresses(pdf *fpdf.Fpdf, tr func(string) string, d *purchaseorder.Detail) {
	var supplier, deliver []string

	if d.Supplier != nil {
		supplier = append([]string{d.Supplier.Name}, d.Supplier.AddressLines()...)
	}

	switch {
	case d.DeliveryAddress != nil:
		deliver = append([]string{d.DeliveryAddress.Name}, d.DeliveryAddress.AddressLines()...)
	case d.PurchaseOrder.ManualDeliveryAddress != nil:
		deliver = strings.Split(*d.PurchaseOrder.ManualDeliveryAddress, "\n")
	}

	if c := d.DeliveryContact; c != nil {
		deliver = append(deliver, "Contact: "+c.Name)

		for _, v := range []string{c.Phone, c.Email} {
			if v != "" {
				deliver = append(deliver, v)
			}
		}
	}

	half := pageWidth / 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, lineH, "Supplier", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, lineH, "Deliver to", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for i := range max(len(supplier), len(deliver)) {
		pdf.CellFormat(half, lineH, tr(at(supplier, i)), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, lineH, tr(strings.TrimSpace(at(deliver, i))), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}

	return ""
}

func (r *Renderer) terms(pdf *fpdf.Fpdf, tr func(string) string, d *purchaseorder.Detail) {
	m := d.Metadata
	if m == nil {
		return
	}

	rows := [][2]string{{"Delivery terms", m.DeliveryTerms}}

	if m.DeliveryDate != nil {
		rows = append(rows, [2]string{"Delivery date", m.DeliveryDate.Format("02 Jan 2006")})
	}

	if m.SupplierReferenceNumber != nil {
		rows = append(rows, [2]string{"Your reference", *m.SupplierReferenceNumber})
	}

	if m.SupplierContactName != nil {
		rows = append(rows, [2]string{"Your contact", *m.SupplierContactName})
	}

	for _, row := range rows {
		if row[1] == "" {
			continue
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, lineH, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(pageWidth-40, lineH, tr(row[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 85, "L"},
	{"Qty", 20, "R"},
	{"Unit", 20, "L"},
	{"Unit price", 27.5, "R"},
	{"Total", 27.5, "R"},
}

func (r *Renderer) lines(pdf *fpdf.Fpdf, tr func(string) string, d *purchaseorder.Detail) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)

	for i, c := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}

		pdf.CellFormat(c.width, 7, c.title, "1", ln, c.align, true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)

	currency := purchaseorder.DefaultCurrency

	for _, li := range d.LineItems {
		if li.Currency != "" {
			currency = li.Currency
		}

		cells := []string{
			li.Description,
			li.Quantity.String(),
			li.Unit,
			money.Plain(li.UnitPrice),
			money.Plain(li.Total()),
		}

		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}

			pdf.CellFormat(c.width, 6, tr(cells[i]), "1", ln, c.align, false, 0, "")
		}
	}

	net, vat, gross := d.Totals(r.vatRate)
	labelW := pageWidth - 55

	pdf.Ln(2)

	for _, row := range [][2]string{
		{"Net", money.Format(net, currency)},
		{fmt.Sprintf("VAT @ %s%%", r.vatRate.Shift(2).String()), money.Format(vat, currency)},
		{"Total", money.Format(gross, currency)},
	} {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 6, row[0], "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(55, 6, row[1], "", 1, "R", false, 0, "")
	}
}
