package worker

import (
	"context"
	"log/slog"
	"time"

	"launchwatch/internal/alerting/metrics"
	"launchwatch/internal/infra/storage"
)

// Pruner deletes ledger entries past the retention period so old
// launches become alertable again.
type Pruner struct {
	retention time.Duration
	ledger    storage.LedgerRepository
	log       *slog.Logger
}

// NewPruner creates a pruner worker.
func NewPruner(retention time.Duration, ledger storage.LedgerRepository, log *slog.Logger) *Pruner {
	return &Pruner{retention: retention, ledger: ledger, log: log}
}

// Start runs the pruner loop until the context is canceled.
func (p *Pruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		return // Retention disabled
	}

	// Check at 10% of the retention period, clamped to [1m, 1h].
	interval := min(p.retention/10, 1*time.Hour)
	interval = max(interval, 1*time.Minute)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	pruned, err := p.ledger.Prune(ctx, cutoff)
	if err != nil {
		p.log.Error("failed to prune ledger", "error", err)
		return
	}
	if pruned > 0 {
		metrics.LedgerPruned.Add(float64(pruned))
		p.log.Info("pruned ledger entries", "count", pruned, "cutoff", cutoff)
	}
}
