package directory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

type Handler struct {
	svc *directory.Service
	log *logger.Logger
}

func NewHandler(svc *directory.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/projects", h.projects)
	r.Get("/projects/{number}", h.projectByNumber)
	r.Get("/suppliers", h.suppliers)
	r.Get("/delivery-addresses", h.deliveryAddresses)
	r.Get("/contacts", h.contacts)
}

func (h *Handler) projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects(r.Context())
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, ToProjects(projects))
}

func (h *Handler) projectByNumber(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.ProjectByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, ToProject(project))
}

func (h *Handler) suppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.Suppliers(r.Context())
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, ToSuppliers(suppliers))
}

func (h *Handler) deliveryAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.svc.DeliveryAddresses(r.Context())
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, ToSuppliers(addresses))
}

func (h *Handler) contacts(w http.ResponseWriter, r *http.Request) {
	var addressID *uuid.UUID

	if s := r.URL.Query().Get("address_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid address_id", err))
			return
		}

		addressID = &id
	}

	contacts, err := h.svc.Contacts(r.Context(), addressID)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, ToContacts(contacts))
}
