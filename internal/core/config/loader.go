package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"launchwatch/internal/core/domain"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Poll.Interval == 0 {
		cfg.Poll.Interval = 15 * time.Second
	}
	if cfg.Poll.SignatureLimit == 0 {
		cfg.Poll.SignatureLimit = 50
	}
	if cfg.Poll.MaxConcurrency == 0 {
		cfg.Poll.MaxConcurrency = 4
	}
	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = "memory"
	}
	if cfg.Ledger.KeyMode == "" {
		cfg.Ledger.KeyMode = domain.KeyByToken
	}
	if len(cfg.Metadata.Providers) == 0 {
		cfg.Metadata.Providers = []string{"jupiter", "dexscreener", "solscan"}
	}
	if cfg.RPC.Timeout == 0 {
		cfg.RPC.Timeout = 30 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// PermissiveEnabled reports whether the classifier fallback rule is
// on. Absent from the config means on.
func (d DetectConfig) PermissiveEnabled() bool {
	return d.PermissiveFallback == nil || *d.PermissiveFallback
}

func (cfg *AppConfig) validate() error {
	if !cfg.Ledger.KeyMode.Valid() {
		return fmt.Errorf("invalid ledger key_mode %q", cfg.Ledger.KeyMode)
	}

	switch cfg.Ledger.Backend {
	case "memory":
	case "redis":
		if cfg.Redis.URL == "" {
			return fmt.Errorf("ledger backend redis requires redis.url")
		}
	case "postgres":
		if cfg.Database.URL == "" {
			return fmt.Errorf("ledger backend postgres requires database.url")
		}
	default:
		return fmt.Errorf("invalid ledger backend %q", cfg.Ledger.Backend)
	}

	if cfg.RPC.Endpoint == "" {
		return fmt.Errorf("rpc.endpoint is required")
	}

	for _, p := range cfg.Metadata.Providers {
		switch p {
		case "jupiter", "dexscreener", "solscan":
		default:
			return fmt.Errorf("unknown metadata provider %q", p)
		}
	}

	return nil
}
