package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSave(t *testing.T) {
	m := New()

	m.ObserveSave("snapshot", "ok", 20*time.Millisecond)
	m.ObserveSave("snapshot", "ok", 10*time.Millisecond)
	m.ObserveSave("patch", "conflict", time.Millisecond)
	m.ObserveSave("", "", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.saves.WithLabelValues("snapshot", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.saves.WithLabelValues("patch", "conflict")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.saves.WithLabelValues("unknown", "unknown")), 0)
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.IncArchiveFailure()
	m.IncDraftFailure()
	m.IncDraftFailure()
	m.AddReconciled(3)
	m.AddReconciled(0)

	assert.InDelta(t, 1, testutil.ToFloat64(m.archiveFailures), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.draftFailures), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.reconciled), 0)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSave("patch", "ok", time.Second)
		m.IncArchiveFailure()
		m.IncDraftFailure()
		m.AddReconciled(1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSave("create", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `poflow_po_saves_total{outcome="ok",path="create"} 1`)
}
