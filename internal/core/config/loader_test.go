package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"launchwatch/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_EnvSubstitution(t *testing.T) {
	os.Setenv("TEST_BOT_TOKEN", "12345:secret")
	defer os.Unsetenv("TEST_BOT_TOKEN")

	path := writeConfig(t, `
rpc:
  endpoint: https://rpc.example.com
telegram:
  token: ${TEST_BOT_TOKEN}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Telegram.Token != "12345:secret" {
		t.Errorf("expected expanded token, got %s", cfg.Telegram.Token)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://rpc.example.com
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Poll.Interval != 15*time.Second {
		t.Errorf("default interval = %v, want 15s", cfg.Poll.Interval)
	}
	if cfg.Poll.SignatureLimit != 50 {
		t.Errorf("default signature limit = %d, want 50", cfg.Poll.SignatureLimit)
	}
	if cfg.Poll.Window() != 3*time.Minute {
		t.Errorf("default recency window = %v, want 3m", cfg.Poll.Window())
	}
	if cfg.Ledger.Backend != "memory" {
		t.Errorf("default backend = %s, want memory", cfg.Ledger.Backend)
	}
	if cfg.Ledger.KeyMode != domain.KeyByToken {
		t.Errorf("default key mode = %s, want token", cfg.Ledger.KeyMode)
	}
	if cfg.Ledger.RetentionPeriod() != 7*24*time.Hour {
		t.Errorf("default retention = %v, want 168h", cfg.Ledger.RetentionPeriod())
	}
	if len(cfg.Metadata.Providers) != 3 || cfg.Metadata.Providers[0] != "jupiter" {
		t.Errorf("default providers = %v", cfg.Metadata.Providers)
	}
	if !cfg.Detect.PermissiveEnabled() {
		t.Error("permissive fallback should default to enabled")
	}
}

func TestLoad_ExplicitZeroDurationsAreUnbounded(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://rpc.example.com
poll:
  recency_window: 0
ledger:
  retention: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w := cfg.Poll.Window(); w != 0 {
		t.Errorf("recency_window: 0 should mean check everything, got %v", w)
	}
	if r := cfg.Ledger.RetentionPeriod(); r != 0 {
		t.Errorf("retention: 0 should mean keep forever, got %v", r)
	}
}

func TestLoad_PermissiveCanBeDisabled(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://rpc.example.com
detect:
  permissive_fallback: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detect.PermissiveEnabled() {
		t.Error("explicit false should disable the permissive fallback")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing rpc endpoint", `
ledger:
  backend: memory
`},
		{"bad key mode", `
rpc:
  endpoint: https://rpc.example.com
ledger:
  key_mode: bogus
`},
		{"bad backend", `
rpc:
  endpoint: https://rpc.example.com
ledger:
  backend: cassandra
`},
		{"redis backend without url", `
rpc:
  endpoint: https://rpc.example.com
ledger:
  backend: redis
`},
		{"postgres backend without url", `
rpc:
  endpoint: https://rpc.example.com
ledger:
  backend: postgres
`},
		{"unknown metadata provider", `
rpc:
  endpoint: https://rpc.example.com
metadata:
  providers: [coingecko]
`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, c.content)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoad_WalletSeeds(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://rpc.example.com
wallets:
  - address: Addr1
    chat_id: 100
  - address: Addr2
    chat_id: 200
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Wallets) != 2 || cfg.Wallets[1].Address != "Addr2" || cfg.Wallets[1].ChatID != 200 {
		t.Errorf("unexpected wallet seeds: %+v", cfg.Wallets)
	}
}
