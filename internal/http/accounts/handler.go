package accounts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

type Handler struct {
	svc *accounts.Service
	log *logger.Logger
}

func NewHandler(svc *accounts.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
}

type entryResponse struct {
	POID             uuid.UUID            `json:"po_id"`
	PONumber         int64                `json:"po_number"`
	ProjectNumber    string               `json:"project_number"`
	SupplierName     string               `json:"supplier_name"`
	Status           purchaseorder.Status `json:"status"`
	Revision         string               `json:"revision"`
	AccComplete      bool                 `json:"acc_complete"`
	InvoiceReference *string              `json:"invoice_reference,omitempty"`
	Net              decimal.Decimal      `json:"net"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type updateRequest struct {
	AccComplete      *bool   `json:"acc_complete"`
	InvoiceReference *string `json:"invoice_reference" validate:"omitempty,max=100"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := accounts.Filter{ProjectNumber: r.URL.Query().Get("project_number")}

	if s := r.URL.Query().Get("acc_complete"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid acc_complete", err))
			return
		}

		filter.AccComplete = &v
	}

	entries, err := h.svc.Overview(r.Context(), filter)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			POID:             e.POID,
			PONumber:         e.PONumber,
			ProjectNumber:    e.ProjectNumber,
			SupplierName:     e.SupplierName,
			Status:           e.Status,
			Revision:         e.Revision,
			AccComplete:      e.AccComplete,
			InvoiceReference: e.InvoiceReference,
			Net:              e.Net,
			UpdatedAt:        e.UpdatedAt,
		}
	}

	respond.OK(w, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid id", err))
		return
	}

	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, accounts.Update{
		AccComplete:      req.AccComplete,
		InvoiceReference: req.InvoiceReference,
	}); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
