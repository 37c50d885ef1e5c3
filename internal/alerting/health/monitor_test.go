package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"launchwatch/internal/infra/storage/memory"
)

type staticCycles struct {
	last time.Time
}

func (s staticCycles) LastCycle() time.Time { return s.last }

func newMonitor(last time.Time) *Monitor {
	store := memory.NewStorage()
	return NewMonitor(staticCycles{last: last}, memory.NewWalletRepo(store), memory.NewLedgerRepo(store), time.Second)
}

func TestMonitor_Healthy(t *testing.T) {
	m := newMonitor(time.Now())
	report := m.CheckHealth(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
}

func TestMonitor_NoCycleYetIsDegraded(t *testing.T) {
	m := newMonitor(time.Time{})
	report := m.CheckHealth(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("expected degraded before the first cycle, got %s", report.Status)
	}
	if report.LastCycleAgo != "never" {
		t.Errorf("expected never, got %s", report.LastCycleAgo)
	}
}

func TestMonitor_StaleCycleIsCritical(t *testing.T) {
	m := newMonitor(time.Now().Add(-time.Minute))
	report := m.CheckHealth(context.Background())
	if report.Status != StatusCritical {
		t.Errorf("expected critical for a stale cycle, got %s", report.Status)
	}
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := NewServer(newMonitor(time.Now()), nil, 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	srv.handleHealth(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != string(StatusHealthy) {
		t.Errorf("unexpected status %q", body["status"])
	}
}

func TestServer_CriticalReturns503(t *testing.T) {
	srv := NewServer(newMonitor(time.Now().Add(-time.Hour)), nil, 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	srv.handleHealth(rec, req)

	if rec.Code != 503 {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
