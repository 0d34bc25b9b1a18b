package expediting

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type Handler struct {
	svc *expediting.Service
	log *logger.Logger
}

func NewHandler(svc *expediting.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}/line-items", h.lineItems)
	r.Patch("/line-items/{id}", h.patchLineItem)
}

type rowResponse struct {
	POID          uuid.UUID            `json:"po_id"`
	PONumber      int64                `json:"po_number"`
	ProjectNumber string               `json:"project_number"`
	SupplierName  string               `json:"supplier_name"`
	Status        purchaseorder.Status `json:"status"`
	Revision      string               `json:"revision"`
	DeliveryDate  *string              `json:"delivery_date,omitempty"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type pageResponse struct {
	Rows       []rowResponse `json:"rows"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
	StartIndex int           `json:"start_index"`
	EndIndex   int           `json:"end_index"`
}

type lineItemResponse struct {
	ID                 uuid.UUID        `json:"id"`
	POID               uuid.UUID        `json:"po_id"`
	Description        string           `json:"description"`
	Quantity           decimal.Decimal  `json:"quantity"`
	QtyReceived        *decimal.Decimal `json:"qty_received,omitempty"`
	ExpedExpectedDate  *string          `json:"exped_expected_date,omitempty"`
	ExpedCompletedDate *string          `json:"exped_completed_date,omitempty"`
}

// optionalDate tells an absent field apart from an explicit null, which
// clears the stored date.
type optionalDate struct {
	set   bool
	value *time.Time
}

func (d *optionalDate) UnmarshalJSON(b []byte) error {
	d.set = true

	if bytes.Equal(b, []byte("null")) {
		d.value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}

	d.value = &t

	return nil
}

func (d optionalDate) patch() expediting.DatePatch {
	return expediting.DatePatch{Set: d.set, Value: d.value}
}

type patchRequest struct {
	QtyReceived        *decimal.Decimal `json:"qty_received"`
	ExpedExpectedDate  optionalDate     `json:"exped_expected_date"`
	ExpedCompletedDate optionalDate     `json:"exped_completed_date"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, respond.BadRequest("invalid "+name, err)
	}

	return &t, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := expediting.Query{
		ProjectNumber: q.Get("project_number"),
		SupplierName:  q.Get("supplier"),
		Sort:          expediting.SortField(q.Get("sort")),
		Ascending:     q.Get("order") == "asc",
	}

	if s := q.Get("status"); s != "" {
		status, err := purchaseorder.ParseStatus(s)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, err)
			return
		}

		query.Status = &status
	}

	var err error

	if query.UpdatedFrom, err = parseDateParam(r, "updated_from"); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	if query.UpdatedTo, err = parseDateParam(r, "updated_to"); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	if s := q.Get("page"); s != "" {
		if query.Page, err = strconv.Atoi(s); err != nil {
			respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid page", err))
			return
		}
	}

	page, err := h.svc.Overview(r.Context(), query)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	resp := pageResponse{
		Rows:       make([]rowResponse, len(page.Rows)),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		StartIndex: page.StartIndex,
		EndIndex:   page.EndIndex,
	}

	for i, row := range page.Rows {
		resp.Rows[i] = rowResponse{
			POID:          row.POID,
			PONumber:      row.PONumber,
			ProjectNumber: row.ProjectNumber,
			SupplierName:  row.SupplierName,
			Status:        row.Status,
			Revision:      row.Revision,
			DeliveryDate:  formatDate(row.DeliveryDate),
			UpdatedAt:     row.UpdatedAt,
		}
	}

	respond.OK(w, resp)
}

func toLineItemResponse(li *expediting.LineItem) lineItemResponse {
	return lineItemResponse{
		ID:                 li.ID,
		POID:               li.POID,
		Description:        li.Description,
		Quantity:           li.Quantity,
		QtyReceived:        li.QtyReceived,
		ExpedExpectedDate:  formatDate(li.ExpectedDate),
		ExpedCompletedDate: formatDate(li.CompletedDate),
	}
}

func (h *Handler) lineItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid id", err))
		return
	}

	items, err := h.svc.LineItems(r.Context(), id)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]lineItemResponse, len(items))
	for i := range items {
		resp[i] = toLineItemResponse(&items[i])
	}

	respond.OK(w, resp)
}

func (h *Handler) patchLineItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid id", err))
		return
	}

	var req patchRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	li, err := h.svc.PatchLineItem(r.Context(), id, expediting.LineItemPatch{
		QtyReceived:   req.QtyReceived,
		ExpectedDate:  req.ExpedExpectedDate.patch(),
		CompletedDate: req.ExpedCompletedDate.patch(),
	})
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, toLineItemResponse(li))
}
