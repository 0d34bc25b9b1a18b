package purchaseorder

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MrJamesThe3rd/poflow/internal/document"
	"github.com/MrJamesThe3rd/poflow/internal/http/respond"
)

const (
	archiveHeader = "X-Archive-Location"
	draftHeader   = "X-Outlook-Draft"
)

// pdf renders the PO, archives a copy and opens an Outlook draft to the
// supplier. Archive and draft failures never fail the download.
func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		respond.WriteError(ctx, h.log, w, err)
		return
	}

	detail, err := h.svc.Get(ctx, id)
	if err != nil {
		respond.WriteError(ctx, h.log, w, err)
		return
	}

	data, err := h.renderer.Render(detail)
	if err != nil {
		respond.WriteError(ctx, h.log, w, err)
		return
	}

	filename := document.Filename(detail.PurchaseOrder)
	ctx = h.log.WithFields(ctx, map[string]any{
		"po_number": detail.PurchaseOrder.PONumber,
		"revision":  detail.PurchaseOrder.Revision,
	})

	if loc := h.archiver.Save(ctx, document.Subdir(detail), filename, data); loc != "" {
		w.Header().Set(archiveHeader, loc)
	}

	if draft := r.URL.Query().Get("draft"); draft != "false" {
		if msg := h.mailer.DraftForPO(ctx, detail, filename, data); msg != nil && msg.WebLink != "" {
			w.Header().Set(draftHeader, msg.WebLink)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	if _, err := w.Write(data); err != nil {
		h.log.Warn(ctx, "failed to write pdf response", err)
	}
}
