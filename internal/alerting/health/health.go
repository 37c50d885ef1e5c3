// Package health provides system health monitoring and status
// reporting.
package health

// SystemStatus represents the overall health state of the system.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// Report contains the full health report.
type Report struct {
	Status         SystemStatus `json:"status"`
	LastCycleAgo   string       `json:"last_cycle_ago"`
	WatchedWallets int          `json:"watched_wallets"`
	LedgerEntries  int64        `json:"ledger_entries"`
}
