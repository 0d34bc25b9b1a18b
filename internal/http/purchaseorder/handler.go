package purchaseorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/poflow/internal/archive"
	"github.com/MrJamesThe3rd/poflow/internal/directory"
	"github.com/MrJamesThe3rd/poflow/internal/document"
	dirhttp "github.com/MrJamesThe3rd/poflow/internal/http/directory"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/lineimport"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/mailer"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

const createScope = "po:create"

// TokenStore issues and spends one-shot form tokens.
type TokenStore interface {
	Issue(ctx context.Context, scope string) (string, error)
	Consume(ctx context.Context, scope, token string) error
}

type Handler struct {
	svc      *purchaseorder.Service
	dir      *directory.Service
	renderer *document.Renderer
	log      *logger.Logger

	tokens   TokenStore
	archiver *archive.Archiver
	mailer   *mailer.Service
	importer *lineimport.Parser
}

type Option func(*Handler)

// WithFormTokens makes create and save require a token from form-options.
func WithFormTokens(tokens TokenStore) Option {
	return func(h *Handler) { h.tokens = tokens }
}

func WithArchiver(a *archive.Archiver) Option {
	return func(h *Handler) { h.archiver = a }
}

func WithMailer(m *mailer.Service) Option {
	return func(h *Handler) { h.mailer = m }
}

func WithImporter(p *lineimport.Parser) Option {
	return func(h *Handler) { h.importer = p }
}

func NewHandler(svc *purchaseorder.Service, dir *directory.Service, renderer *document.Renderer, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:      svc,
		dir:      dir,
		renderer: renderer,
		log:      log,
		importer: lineimport.NewParser(purchaseorder.DefaultCurrency),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/form-options", h.formOptions)
	r.Post("/import-lines", h.importLines)
	r.Get("/number/{number}/history", h.history)
	r.Get("/number/{number}/max-revisions", h.maxRevisions)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.save)
	r.Get("/{id}/pdf", h.pdf)
}

func saveScope(id uuid.UUID) string {
	return "po:" + id.String()
}

func (h *Handler) consumeToken(ctx context.Context, scope, token string) error {
	if h.tokens == nil {
		return nil
	}

	return h.tokens.Consume(ctx, scope, token)
}

func (h *Handler) issueToken(ctx context.Context, scope string) (string, error) {
	if h.tokens == nil {
		return "", nil
	}

	return h.tokens.Issue(ctx, scope)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, respond.BadRequest("invalid id", err)
	}

	return id, nil
}

func pathNumber(r *http.Request) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil || n <= 0 {
		return 0, respond.BadRequest("invalid po number", err)
	}

	return n, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := purchaseorder.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status, err := purchaseorder.ParseStatus(s)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, err)
			return
		}

		filter.Status = &status
	}

	if s := q.Get("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid project_id", err))
			return
		}

		filter.ProjectID = &id
	}

	if s := q.Get("po_number"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid po_number", err))
			return
		}

		filter.PONumber = &n
	}

	pos, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, toResponseList(pos))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	params, err := req.toCreate()
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid request body", err))
		return
	}

	if err := h.consumeToken(r.Context(), createScope, req.FormToken); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	po, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(po))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, toDetailResponse(detail, h.renderer.VATRate()))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	var req saveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	params, err := req.toSave(id)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("invalid request body", err))
		return
	}

	if err := h.consumeToken(r.Context(), saveScope(id), req.FormToken); err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	savedID, err := h.svc.Save(r.Context(), params)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, saveResponse{ID: savedID})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	number, err := pathNumber(r)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	revs, err := h.svc.History(r.Context(), number)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, toResponseList(revs))
}

func (h *Handler) maxRevisions(w http.ResponseWriter, r *http.Request) {
	number, err := pathNumber(r)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	maxRev, err := h.svc.MaxRevisions(r.Context(), number)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, map[string]string{"alpha": maxRev.Alpha, "numeric": maxRev.Numeric})
}

// formOptions returns everything the create or edit form needs. With
// ?id= the statuses and token are for editing that PO.
func (h *Handler) formOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var current *purchaseorder.PurchaseOrder

	scope := createScope

	if s := r.URL.Query().Get("id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.WriteError(ctx, h.log, w, respond.BadRequest("invalid id", err))
			return
		}

		detail, err := h.svc.Get(ctx, id)
		if err != nil {
			respond.WriteError(ctx, h.log, w, err)
			return
		}

		current = detail.PurchaseOrder
		scope = saveScope(id)
	}

	opts, err := h.dir.FormOptions(ctx)
	if err != nil {
		respond.WriteError(ctx, h.log, w, err)
		return
	}

	token, err := h.issueToken(ctx, scope)
	if err != nil {
		respond.WriteError(ctx, h.log, w, err)
		return
	}

	respond.OK(w, formOptionsResponse{
		AllowedStatuses:   allowedStatuses(current),
		Projects:          dirhttp.ToProjects(opts.Projects),
		Suppliers:         dirhttp.ToSuppliers(opts.Suppliers),
		DeliveryAddresses: dirhttp.ToSuppliers(opts.DeliveryAddresses),
		Contacts:          dirhttp.ToContacts(opts.Contacts),
		FormToken:         token,
	})
}

func (h *Handler) importLines(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("failed to parse form", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("file field is required", err))
		return
	}
	defer file.Close()

	result, err := h.importer.Parse(file)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return
	}

	respond.OK(w, importResponse{
		Profile:   result.Profile,
		Charset:   result.Charset,
		Skipped:   result.Skipped,
		Total:     result.Total(),
		LineItems: toLineItemResponses(result.LineItems),
	})
}
