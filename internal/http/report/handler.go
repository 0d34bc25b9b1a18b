package report

import (
	"archive/zip"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
	"github.com/MrJamesThe3rd/poflow/internal/report"
)

type Handler struct {
	svc *report.Service
	log *logger.Logger
}

func NewHandler(svc *report.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/spend", h.spend)
	r.Get("/spend/csv", h.csv)
	r.Get("/spend/download", h.download)
}

type totalResponse struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	POCount int             `json:"po_count"`
	Net     decimal.Decimal `json:"net"`
}

type spendResponse struct {
	ByProject  []totalResponse `json:"by_project"`
	BySupplier []totalResponse `json:"by_supplier"`
	ByMonth    []totalResponse `json:"by_month"`
	Net        decimal.Decimal `json:"net"`
	POCount    int             `json:"po_count"`
	Summary    string          `json:"summary"`
}

func toTotals(ts []report.Total) []totalResponse {
	resp := make([]totalResponse, len(ts))
	for i, t := range ts {
		resp[i] = totalResponse{Key: t.Key, Label: t.Label, POCount: t.POCount, Net: t.Net}
	}

	return resp
}

func parseFilter(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	filter := report.Filter{ProjectNumber: q.Get("project_number")}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		s := q.Get(name)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return report.Filter{}, respond.BadRequest("invalid "+name, err)
		}

		*dst = &t
	}

	return filter, nil
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (report.Spend, bool) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return report.Spend{}, false
	}

	spend, err := h.svc.Spend(r.Context(), filter)
	if err != nil {
		respond.WriteError(r.Context(), h.log, w, err)
		return report.Spend{}, false
	}

	return spend, true
}

func (h *Handler) spend(w http.ResponseWriter, r *http.Request) {
	spend, ok := h.load(w, r)
	if !ok {
		return
	}

	respond.OK(w, spendResponse{
		ByProject:  toTotals(spend.ByProject),
		BySupplier: toTotals(spend.BySupplier),
		ByMonth:    toTotals(spend.ByMonth),
		Net:        spend.Net,
		POCount:    spend.POCount,
		Summary:    h.svc.Summary(spend),
	})
}

// csv streams one aggregation, chosen with ?by=project|supplier|month.
func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	if by == "" {
		by = "project"
	}

	sec, ok := report.SectionFor(by)
	if !ok {
		respond.WriteError(r.Context(), h.log, w, respond.BadRequest("by must be project, supplier or month", nil))
		return
	}

	spend, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sec.Filename))

	if err := report.WriteCSV(w, sec.Heading, sec.Totals(spend)); err != nil {
		h.log.Error(r.Context(), "failed to write spend csv", err)
	}
}

// download zips every aggregation together with the plain-text summary.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	spend, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"spend_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	for _, sec := range report.Sections {
		zf, err := zipWriter.Create(sec.Filename)
		if err != nil {
			h.log.Error(r.Context(), "failed to create zip entry", err)
			return
		}

		if err := report.WriteCSV(zf, sec.Heading, sec.Totals(spend)); err != nil {
			h.log.Error(r.Context(), "failed to write zip entry", err)
			return
		}
	}

	zf, err := zipWriter.Create("summary.txt")
	if err != nil {
		h.log.Error(r.Context(), "failed to create zip entry", err)
		return
	}

	if _, err := zf.Write([]byte(h.svc.Summary(spend))); err != nil {
		h.log.Error(r.Context(), "failed to write summary", err)
	}
}
