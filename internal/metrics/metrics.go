package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "poflow"

// Metrics holds the service collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	reg             *prometheus.Registry
	saves           *prometheus.CounterVec
	saveDuration    *prometheus.HistogramVec
	archiveFailures prometheus.Counter
	draftFailures   prometheus.Counter
	reconciled      prometheus.Counter
}

// New registers the collectors on a fresh registry, alongside the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "po_saves_total",
			Help:      "Purchase order writes by path and outcome.",
		}, []string{"path", "outcome"}),
		saveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "po_save_duration_seconds",
			Help:      "Duration of purchase order writes in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		archiveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_archive_failures_total",
			Help:      "PDF archive writes that failed.",
		}),
		draftFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outlook_draft_failures_total",
			Help:      "Outlook draft creations that failed.",
		}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "po_reconciled_total",
			Help:      "Purchase orders reactivated by reconciliation.",
		}),
	}

	reg.MustRegister(m.saves, m.saveDuration, m.archiveFailures, m.draftFailures, m.reconciled)

	return m
}

// ObserveSave implements purchaseorder.Recorder.
func (m *Metrics) ObserveSave(path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.saves.WithLabelValues(normalizeLabel(path), normalizeLabel(outcome)).Inc()
	m.saveDuration.WithLabelValues(normalizeLabel(path)).Observe(elapsed.Seconds())
}

func (m *Metrics) IncArchiveFailure() {
	if m == nil {
		return
	}

	m.archiveFailures.Inc()
}

func (m *Metrics) IncDraftFailure() {
	if m == nil {
		return
	}

	m.draftFailures.Inc()
}

func (m *Metrics) AddReconciled(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.reconciled.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}

	return v
}
