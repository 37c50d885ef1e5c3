package compose

import (
	"strings"
	"testing"
	"time"

	"launchwatch/internal/core/domain"
)

func TestFormatRawAmount(t *testing.T) {
	cases := []struct {
		raw      string
		decimals int
		want     string
	}{
		{"1500000", 6, "1.5"},
		{"1000000", 6, "1"},
		{"1", 6, "0.000001"},
		{"0", 6, "0"},
		{"123456789", 0, "123456789"},
		{"000123", 3, "0.123"},
		{"1000000000000000000000000", 6, "1000000000000000000"},
		{"", 6, ""},
		{"abc", 6, "abc"},
	}
	for _, c := range cases {
		if got := FormatRawAmount(c.raw, c.decimals); got != c.want {
			t.Errorf("FormatRawAmount(%q, %d) = %q, want %q", c.raw, c.decimals, got, c.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{90 * time.Second, "1 minutes"},
		{2 * time.Hour, "2 hours"},
		{49 * time.Hour, "2 days"},
		{-5 * time.Second, "0 seconds"},
	}
	for _, c := range cases {
		if got := FormatAge(c.d); got != c.want {
			t.Errorf("FormatAge(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestMessage(t *testing.T) {
	msg := Message(Alert{
		Candidate: &domain.TokenCandidate{
			Mint:      "MintAddr123",
			RawAmount: "1500000",
			Decimals:  6,
			UIAmount:  1.5,
		},
		Metadata:  domain.TokenMetadata{Name: "Test Token", Symbol: "TEST"},
		Age:       "5 minutes",
		Signature: "Sig456",
		Wallet:    "WalletAddr789",
		Time:      time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"NEW TOKEN LAUNCH DETECTED",
		"Test Token (TEST)",
		"`MintAddr123`",
		"1.5 TEST",
		"5 minutes",
		"https://solscan.io/tx/Sig456",
		"https://dexscreener.com/solana/MintAddr123",
		"`WalletAddr789`",
		"2025-06-01 12:30:00 UTC",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestMessage_UIAmountFallback(t *testing.T) {
	msg := Message(Alert{
		Candidate: &domain.TokenCandidate{Mint: "M1", UIAmount: 42.5},
		Metadata:  domain.TokenMetadata{Name: "Push Token", Symbol: "PSH"},
		Age:       UnknownAge,
		Signature: "S1",
		Wallet:    "W1",
		Time:      time.Now(),
	})
	if !strings.Contains(msg, "42.5 PSH") {
		t.Errorf("expected ui amount fallback in message:\n%s", msg)
	}
	if !strings.Contains(msg, UnknownAge) {
		t.Errorf("expected unknown age in message:\n%s", msg)
	}
}
