package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCheckerCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChecker(reg)

	m.ObserveCheck("4D", true)
	m.ObserveCheck("4D", false)
	m.ObserveCheck("4D", false)
	m.ObserveTicketError("MalformedBetLine")
	m.ObserveBatch("TOTO", 1, false, time.Second)
	m.ObserveBatchFailed("", time.Millisecond)
	m.ObserveBatchFailed("4D", time.Millisecond)
	m.CacheHit()

	if got := testutil.ToFloat64(m.Checks.WithLabelValues("4D", "loss")); got != 2 {
		t.Errorf("losses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TicketErrors.WithLabelValues("MalformedBetLine")); got != 1 {
		t.Errorf("errors = %v", got)
	}
	if got := testutil.ToFloat64(m.Batches.WithLabelValues("TOTO", "partial")); got != 1 {
		t.Errorf("partial batches = %v", got)
	}
	if got := testutil.ToFloat64(m.Batches.WithLabelValues("unknown", "failed")); got != 1 {
		t.Errorf("failed batches without game = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Batches.WithLabelValues("4D", "failed")); got != 1 {
		t.Errorf("failed 4D batches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DrawCache.WithLabelValues("hit")); got != 1 {
		t.Errorf("cache hits = %v", got)
	}
}

func TestHandlerHealthz(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewChecker(reg).ObserveCheck("TOTO", true)

	h := Handler(reg, func(context.Context) error { return nil })
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `ticket_checks_total{game="TOTO",outcome="win"} 1`) {
		t.Errorf("metrics body missing counter:\n%s", rec.Body.String())
	}

	down := Handler(reg, func(context.Context) error { return errors.New("pg") })
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy = %d", rec.Code)
	}
}
