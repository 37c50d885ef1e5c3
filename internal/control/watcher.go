// Package control wires the application together and manages its
// lifecycle.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pressly/goose/v3"

	"launchwatch/internal/alerting/health"
	"launchwatch/internal/alerting/pipeline"
	"launchwatch/internal/alerting/webhook"
	"launchwatch/internal/core/classify"
	"launchwatch/internal/core/config"
	"launchwatch/internal/core/domain"
	"launchwatch/internal/core/worker"
	"launchwatch/internal/infra/metadata"
	"launchwatch/internal/infra/redisledger"
	"launchwatch/internal/infra/rpc"
	"launchwatch/internal/infra/storage"
	"launchwatch/internal/infra/storage/memory"
	"launchwatch/internal/infra/storage/postgres"
	"launchwatch/internal/infra/telegram"
)

// Watcher is the main application struct that manages the watcher
// lifecycle.
type Watcher struct {
	cfg          *config.AppConfig
	pipeline     *pipeline.Pipeline
	pruner       *worker.Pruner
	bot          *telegram.Bot
	healthServer *health.Server
	db           *postgres.DB
	redisLedger  *redisledger.Ledger
	wallets      storage.WalletRepository
	log          *slog.Logger
}

// NewWatcher creates a Watcher with all dependencies initialized.
func NewWatcher(cfg *config.AppConfig, log *slog.Logger) (*Watcher, error) {
	w := &Watcher{cfg: cfg, log: log}

	ledgerRepo, walletRepo, err := w.initStorage(cfg)
	if err != nil {
		return nil, err
	}
	w.wallets = walletRepo

	if err := w.seedWallets(context.Background(), walletRepo, cfg.Wallets); err != nil {
		return nil, err
	}

	rpcClient := rpc.NewClient(cfg.RPC)

	resolver := buildResolverChain(cfg.Metadata, log)
	age := buildAgeSource(cfg.Metadata, rpcClient)

	var notifier pipeline.Notifier
	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, walletRepo, log)
		if err != nil {
			return nil, fmt.Errorf("failed to init telegram bot: %w", err)
		}
		w.bot = bot
		notifier = bot
	} else {
		log.Warn("no telegram token configured, alerts go to the log")
		notifier = telegram.NewLogNotifier(log)
	}

	w.pipeline = pipeline.New(
		pipeline.Config{
			SignatureLimit: cfg.Poll.SignatureLimit,
			RecencyWindow:  cfg.Poll.Window(),
			PollInterval:   cfg.Poll.Interval,
			MaxConcurrency: cfg.Poll.MaxConcurrency,
			KeyMode:        cfg.Ledger.KeyMode,
			Classify: classify.Options{
				PermissiveFallback: cfg.Detect.PermissiveEnabled(),
				StrictNovelty:      cfg.Detect.StrictNovelty,
			},
		},
		rpcClient,
		ledgerRepo,
		walletRepo,
		resolver,
		age,
		notifier,
		log,
	)

	if retention := cfg.Ledger.RetentionPeriod(); retention > 0 {
		w.pruner = worker.NewPruner(retention, ledgerRepo, log)
	}

	monitor := health.NewMonitor(w.pipeline, walletRepo, ledgerRepo, cfg.Poll.Interval)
	hook := webhook.NewHandler(walletRepo, w.pipeline, log)
	w.healthServer = health.NewServer(monitor, hook, cfg.Server.Port)

	return w, nil
}

func (w *Watcher) initStorage(cfg *config.AppConfig) (storage.LedgerRepository, storage.WalletRepository, error) {
	var ledgerRepo storage.LedgerRepository
	var walletRepo storage.WalletRepository

	if cfg.Database.URL != "" {
		db, err := postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init db: %w", err)
		}
		w.db = db

		if err := goose.SetDialect("postgres"); err != nil {
			return nil, nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		ledgerRepo = postgres.NewLedgerRepo(db)
		walletRepo = postgres.NewWalletRepo(db)
		w.log.Info("using postgres storage")
	} else {
		store := memory.NewStorage()
		ledgerRepo = memory.NewLedgerRepo(store)
		walletRepo = memory.NewWalletRepo(store)
		w.log.Info("using memory storage")
	}

	// The ledger can live in redis independently of where the wallet
	// watches live.
	if cfg.Ledger.Backend == "redis" {
		rl, err := redisledger.NewLedger(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init redis ledger: %w", err)
		}
		w.redisLedger = rl
		ledgerRepo = rl
		w.log.Info("using redis ledger")
	}

	return ledgerRepo, walletRepo, nil
}

func (w *Watcher) seedWallets(ctx context.Context, repo storage.WalletRepository, seeds []config.WalletSeed) error {
	for _, s := range seeds {
		watch := &domain.WalletWatch{Address: s.Address, ChatID: s.ChatID}
		if err := repo.Save(ctx, watch); err != nil {
			return fmt.Errorf("failed to seed wallet %s: %w", s.Address, err)
		}
	}
	if len(seeds) > 0 {
		w.log.Info("seeded wallet watches", "count", len(seeds))
	}
	return nil
}

func buildResolverChain(cfg config.MetadataConfig, log *slog.Logger) *metadata.Chain {
	timeout := 10 * time.Second
	resolvers := make([]metadata.Resolver, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		switch p {
		case "jupiter":
			resolvers = append(resolvers, metadata.NewJupiter("", timeout))
		case "dexscreener":
			resolvers = append(resolvers, metadata.NewDexScreener("", timeout))
		case "solscan":
			resolvers = append(resolvers, metadata.NewSolscan("", timeout))
		}
	}
	return metadata.NewChain(log, resolvers...)
}

func buildAgeSource(cfg config.MetadataConfig, client *rpc.Client) metadata.AgeSource {
	onchain := &oldestSignatureAge{client: client}
	if cfg.HeliusAPIKey == "" {
		return onchain
	}
	return metadata.NewFallbackAge(
		metadata.NewHelius("", cfg.HeliusAPIKey, 10*time.Second),
		onchain,
	)
}

// oldestSignatureAge approximates mint creation time with the oldest
// signature touching the mint.
type oldestSignatureAge struct {
	client *rpc.Client
}

func (a *oldestSignatureAge) CreationTime(ctx context.Context, mint string) (time.Time, error) {
	return a.client.OldestSignatureTime(ctx, mint)
}

// Start starts all components. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	go func() {
		if err := w.healthServer.Start(); err != nil && err != http.ErrServerClosed {
			w.log.Error("health server failed", "error", err)
		}
	}()

	go func() {
		if err := w.pipeline.Start(ctx); err != nil {
			w.log.Error("pipeline failed", "error", err)
		}
	}()

	if w.pruner != nil {
		go w.pruner.Start(ctx)
	}

	if w.bot != nil {
		go w.bot.Start(ctx)
	}

	return nil
}

// Stop shuts everything down.
func (w *Watcher) Stop(ctx context.Context) error {
	w.log.Info("stopping watcher")

	if err := w.pipeline.Stop(); err != nil {
		w.log.Warn("failed to stop pipeline", "error", err)
	}

	if w.redisLedger != nil {
		if err := w.redisLedger.Close(); err != nil {
			w.log.Warn("failed to close redis ledger", "error", err)
		}
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			w.log.Warn("failed to close database", "error", err)
		}
	}

	return w.healthServer.Stop(ctx)
}
