package health

import (
	"context"
	"sync"
	"time"

	"launchwatch/internal/infra/storage"
)

// CycleReporter reports when the polling loop last completed a cycle.
type CycleReporter interface {
	LastCycle() time.Time
}

// Monitor aggregates health status from the poller and the stores.
type Monitor struct {
	cycles   CycleReporter
	wallets  storage.WalletRepository
	ledger   storage.LedgerRepository
	interval time.Duration

	mu         sync.Mutex
	lastCheck  time.Time
	lastReport Report
}

// NewMonitor creates a health monitor. interval is the expected poll
// interval; a cycle older than several intervals marks the system
// unhealthy.
func NewMonitor(cycles CycleReporter, wallets storage.WalletRepository, ledger storage.LedgerRepository, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{cycles: cycles, wallets: wallets, ledger: ledger, interval: interval}
}

// CheckHealth builds the current report. Checks are rate limited so
// aggressive probes do not hammer the stores.
func (m *Monitor) CheckHealth(ctx context.Context) Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCheck) < 10*time.Second && m.lastReport.Status != "" {
		return m.lastReport
	}

	report := Report{Status: StatusHealthy}

	last := m.cycles.LastCycle()
	if last.IsZero() {
		// Startup grace: no cycle yet is degraded, not critical.
		report.Status = StatusDegraded
		report.LastCycleAgo = "never"
	} else {
		age := time.Since(last)
		report.LastCycleAgo = age.Round(time.Second).String()
		if age > 10*m.interval {
			report.Status = StatusCritical
		} else if age > 3*m.interval {
			report.Status = StatusDegraded
		}
	}

	if watches, err := m.wallets.GetAll(ctx); err == nil {
		report.WatchedWallets = len(watches)
	} else if report.Status == StatusHealthy {
		report.Status = StatusDegraded
	}

	if count, err := m.ledger.Count(ctx); err == nil {
		report.LedgerEntries = count
	} else if report.Status == StatusHealthy {
		report.Status = StatusDegraded
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return report
}
