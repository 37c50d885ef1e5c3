// Package pipeline drives the polling loop: list signatures per
// watched wallet, classify, extract, dedup, resolve, compose,
// dispatch. The webhook transport feeds the same dedup path through
// HandleCandidate.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"launchwatch/internal/alerting/compose"
	"launchwatch/internal/alerting/metrics"
	"launchwatch/internal/core/classify"
	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/rpc"
	"launchwatch/internal/infra/storage"
)

// Source is the pull-side transaction source.
type Source interface {
	ListSignatures(ctx context.Context, wallet string, limit int) ([]rpc.SignatureInfo, error)
	GetTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error)
}

// MetadataResolver looks up token display metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, mint string) domain.TokenMetadata
}

// AgeSource reports when a mint was created.
type AgeSource interface {
	CreationTime(ctx context.Context, mint string) (time.Time, error)
}

// Notifier delivers a composed alert to a destination chat.
type Notifier interface {
	SendAlert(chatID int64, message string) error
}

// Config holds the polling knobs. Recency window and poll interval are
// independent; a zero recency window means "check everything".
type Config struct {
	SignatureLimit int
	RecencyWindow  time.Duration
	PollInterval   time.Duration
	MaxConcurrency int
	KeyMode        domain.KeyMode
	Classify       classify.Options
}

// Pipeline is the polling orchestrator.
type Pipeline struct {
	cfg      Config
	source   Source
	ledger   storage.LedgerRepository
	wallets  storage.WalletRepository
	resolver MetadataResolver
	age      AgeSource
	notifier Notifier
	log      *slog.Logger

	running   atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
	lastCycle atomic.Int64
}

// New creates a pipeline.
func New(
	cfg Config,
	source Source,
	ledger storage.LedgerRepository,
	wallets storage.WalletRepository,
	resolver MetadataResolver,
	age AgeSource,
	notifier Notifier,
	log *slog.Logger,
) *Pipeline {
	if cfg.SignatureLimit <= 0 {
		cfg.SignatureLimit = 50
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}
	if !cfg.KeyMode.Valid() {
		cfg.KeyMode = domain.KeyByToken
	}
	return &Pipeline{
		cfg:      cfg,
		source:   source,
		ledger:   ledger,
		wallets:  wallets,
		resolver: resolver,
		age:      age,
		notifier: notifier,
		log:      log,
		stop:     make(chan struct{}),
	}
}

// Start runs the polling loop until the context is canceled or Stop is
// called. Cancellation is cooperative: the current cycle finishes.
func (p *Pipeline) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("pipeline already running")
	}
	defer p.running.Store(false)

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.stop:
			return nil
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// Stop ends the loop after the current cycle. Safe to call more than
// once, and before Start.
func (p *Pipeline) Stop() error {
	p.stopOnce.Do(func() { close(p.stop) })
	return nil
}

// LastCycle returns when the last cycle completed.
func (p *Pipeline) LastCycle() time.Time {
	unix := p.lastCycle.Load()
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}

// runCycle processes every watched wallet once. One wallet's failure
// never aborts the others.
func (p *Pipeline) runCycle(ctx context.Context) {
	start := time.Now()

	watches, err := p.wallets.GetAll(ctx)
	if err != nil {
		p.log.Error("failed to load wallet watches", "error", err)
		return
	}

	if p.cfg.MaxConcurrency > 1 {
		sem := make(chan struct{}, p.cfg.MaxConcurrency)
		var wg sync.WaitGroup
		for _, w := range watches {
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(w *domain.WalletWatch) {
				defer wg.Done()
				defer func() { <-sem }()
				p.processWallet(ctx, w)
			}(w)
		}
		wg.Wait()
	} else {
		for _, w := range watches {
			if ctx.Err() != nil {
				break
			}
			p.processWallet(ctx, w)
		}
	}

	p.lastCycle.Store(time.Now().Unix())
	metrics.CycleDuration.Observe(time.Since(start).Seconds())
}

func (p *Pipeline) processWallet(ctx context.Context, w *domain.WalletWatch) {
	sigs, err := p.source.ListSignatures(ctx, w.Address, p.cfg.SignatureLimit)
	if err != nil {
		p.log.Warn("failed to list signatures", "wallet", w.Address, "error", err)
		return
	}

	now := time.Now()
	seen := make(map[string]struct{}, len(sigs))

	for _, sig := range sigs {
		if ctx.Err() != nil {
			return
		}
		if _, dup := seen[sig.Signature]; dup {
			continue
		}
		seen[sig.Signature] = struct{}{}

		// Too-old transactions are skipped without being committed, so
		// the strict pre-balance-absence rule still gets a chance on a
		// later path regardless of wall-clock age.
		if p.cfg.RecencyWindow > 0 && sig.BlockTime > 0 &&
			now.Sub(time.Unix(sig.BlockTime, 0)) > p.cfg.RecencyWindow {
			continue
		}

		p.processSignature(ctx, w, sig.Signature)
	}

	if err := p.wallets.TouchLastChecked(ctx, w.Address, now); err != nil {
		p.log.Debug("failed to touch wallet watch", "wallet", w.Address, "error", err)
	}
}

func (p *Pipeline) processSignature(ctx context.Context, w *domain.WalletWatch, signature string) {
	metrics.SignaturesProcessed.WithLabelValues(w.Address).Inc()

	rec, err := p.source.GetTransaction(ctx, signature)
	if err != nil {
		// Transient source error: skip, the next cycle retries since
		// the signature stays uncommitted.
		p.log.Warn("failed to fetch transaction", "signature", signature, "error", err)
		return
	}
	if rec == nil {
		return
	}

	verdict := classify.Classify(rec, p.cfg.Classify)
	if !verdict.IsLaunch {
		return
	}
	metrics.LaunchesDetected.WithLabelValues(string(verdict.Rule)).Inc()
	p.log.Debug("launch detected",
		"signature", signature,
		"rule", verdict.Rule,
		"program", verdict.Evidence.Program,
		"op", verdict.Evidence.OpType)

	cand := classify.ExtractCandidate(rec, p.cfg.Classify.StrictNovelty)
	if cand == nil {
		// Positive verdict with nothing alert-worthy in the balances is
		// a no-op, not an error.
		p.log.Debug("no candidate extracted", "signature", signature)
		return
	}

	if err := p.HandleCandidate(ctx, "poll", w.Address, w.ChatID, signature, cand, domain.TokenMetadata{}); err != nil {
		p.log.Warn("failed to handle candidate",
			"signature", signature, "mint", cand.Mint, "error", err)
	}
}

// HandleCandidate runs a normalized candidate through the shared dedup
// and dispatch path. The push transport enters here directly, which
// keeps both transports on one set of dedup keys. Metadata already
// known by the caller (push payloads carry it) skips the resolver
// chain.
func (p *Pipeline) HandleCandidate(
	ctx context.Context,
	source string,
	wallet string,
	chatID int64,
	signature string,
	cand *domain.TokenCandidate,
	md domain.TokenMetadata,
) error {
	if !md.Known() {
		md = p.resolver.Resolve(ctx, cand.Mint)
	}

	entry := &domain.LedgerEntry{
		Name:      md.Name,
		Mint:      cand.Mint,
		Wallet:    wallet,
		Signature: signature,
		FirstSeen: time.Now(),
	}
	key := entry.DedupKey(p.cfg.KeyMode)

	exists, err := p.ledger.Exists(ctx, key)
	if err != nil {
		// Read-path degradation: never block alerting on ledger
		// unavailability. A duplicate alert is the accepted worst case.
		p.log.Warn("ledger read failed, assuming absent", "key", key, "error", err)
	} else if exists {
		metrics.AlertsDeduped.WithLabelValues(source).Inc()
		return nil
	}

	inserted, err := p.ledger.InsertIfAbsent(ctx, key, entry)
	if err != nil {
		// Write-path degradation: the alert still goes out; a repeat
		// detection may re-alert until a commit sticks.
		p.log.Warn("ledger write failed, alerting without commit", "key", key, "error", err)
	} else if !inserted {
		// Another actor claimed the key between check and claim.
		metrics.AlertsDeduped.WithLabelValues(source).Inc()
		return nil
	}

	age := compose.UnknownAge
	if created, err := p.age.CreationTime(ctx, cand.Mint); err == nil {
		age = compose.FormatAge(time.Since(created))
	}

	message := compose.Message(compose.Alert{
		Candidate: cand,
		Metadata:  md,
		Age:       age,
		Signature: signature,
		Wallet:    wallet,
		Time:      time.Now(),
	})

	if err := p.notifier.SendAlert(chatID, message); err != nil {
		metrics.AlertSendErrors.Inc()
		return fmt.Errorf("failed to send alert: %w", err)
	}

	metrics.AlertsSent.WithLabelValues(source).Inc()
	p.log.Info("alert dispatched",
		"source", source, "mint", cand.Mint, "name", md.Name, "wallet", wallet)
	return nil
}
