package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/poflow/internal/http/accounts"
	"github.com/MrJamesThe3rd/poflow/internal/http/directory"
	"github.com/MrJamesThe3rd/poflow/internal/http/expediting"
	"github.com/MrJamesThe3rd/poflow/internal/http/middleware"
	"github.com/MrJamesThe3rd/poflow/internal/http/purchaseorder"
	"github.com/MrJamesThe3rd/poflow/internal/http/report"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

type Options struct {
	Logger      *logger.Logger
	CORSOrigins []string
	// JWTSecret enables bearer auth on /api/v1 when set.
	JWTSecret []byte
	JWTIssuer string
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

type Handlers struct {
	PurchaseOrders *purchaseorder.Handler
	Accounts       *accounts.Handler
	Expediting     *expediting.Handler
	Reports        *report.Handler
	Directory      *directory.Handler
}

func New(opts Options, h Handlers) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID(log))
	router.Use(middleware.Logging(log))
	router.Use(middleware.Recoverer(log))

	if len(opts.CORSOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSOrigins))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		if len(opts.JWTSecret) > 0 {
			r.Use(middleware.Auth(log, opts.JWTSecret, opts.JWTIssuer))
		}

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json", "multipart/form-data"))
			h.PurchaseOrders.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Accounts.Routes(r)
		})

		r.Route("/expediting", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Expediting.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
		r.Route("/directory", h.Directory.Routes)
	})

	return router
}
