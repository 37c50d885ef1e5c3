package config

import (
	"time"

	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/redisledger"
	"launchwatch/internal/infra/rpc"
	"launchwatch/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig       `yaml:"server"`
	Wallets  []WalletSeed       `yaml:"wallets"`
	RPC      rpc.Config         `yaml:"rpc"`
	Telegram TelegramConfig     `yaml:"telegram"`
	Poll     PollConfig         `yaml:"poll"`
	Detect   DetectConfig       `yaml:"detect"`
	Ledger   LedgerConfig       `yaml:"ledger"`
	Metadata MetadataConfig     `yaml:"metadata"`
	Redis    redisledger.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
	Database postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// WalletSeed is a wallet watch configured statically, next to those
// added over chat commands.
type WalletSeed struct {
	Address string `yaml:"address"`
	ChatID  int64  `yaml:"chat_id"`
}

// TelegramConfig holds bot settings. An empty token disables the chat
// surface; alerts go to the log instead.
type TelegramConfig struct {
	Token string `yaml:"token"`
}

// PollConfig holds polling loop settings.
type PollConfig struct {
	Interval       time.Duration  `yaml:"interval"`
	SignatureLimit int            `yaml:"signature_limit"`
	RecencyWindow  *time.Duration `yaml:"recency_window"` // nil = 3m, 0 = check everything
	MaxConcurrency int            `yaml:"max_concurrency"`
}

// Window returns the recency filter span. Absent from the config means
// three minutes; an explicit zero disables the filter.
func (p PollConfig) Window() time.Duration {
	if p.RecencyWindow == nil {
		return 3 * time.Minute
	}
	return *p.RecencyWindow
}

// DetectConfig holds classifier knobs.
type DetectConfig struct {
	PermissiveFallback *bool `yaml:"permissive_fallback"` // nil = enabled
	StrictNovelty      bool  `yaml:"strict_novelty"`
}

// LedgerConfig holds dedup ledger settings.
type LedgerConfig struct {
	Backend   string         `yaml:"backend"` // postgres, redis, memory
	KeyMode   domain.KeyMode `yaml:"key_mode"`
	Retention *time.Duration `yaml:"retention"` // nil = 7d, 0 = keep forever
}

// RetentionPeriod returns how long ledger entries are kept. Absent
// from the config means seven days; an explicit zero keeps forever.
func (l LedgerConfig) RetentionPeriod() time.Duration {
	if l.Retention == nil {
		return 7 * 24 * time.Hour
	}
	return *l.Retention
}

// MetadataConfig holds resolver chain settings. Providers are tried in
// the listed order.
type MetadataConfig struct {
	Providers    []string `yaml:"providers"`
	HeliusAPIKey string   `yaml:"helius_api_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
