package domain

import "testing"

func TestDedupKey(t *testing.T) {
	e := &LedgerEntry{Name: "Test Token", Mint: "M1", Wallet: "W1", Signature: "S1"}

	if got := e.DedupKey(KeyByToken); got != "Test Token|M1" {
		t.Errorf("token key = %q", got)
	}
	if got := e.DedupKey(KeyBySignature); got != "W1|S1" {
		t.Errorf("signature key = %q", got)
	}
}

func TestKeyModeValid(t *testing.T) {
	if !KeyByToken.Valid() || !KeyBySignature.Valid() {
		t.Error("supported modes should validate")
	}
	if KeyMode("bogus").Valid() || KeyMode("").Valid() {
		t.Error("unsupported modes should not validate")
	}
}

func TestTokenMetadataKnown(t *testing.T) {
	if UnknownMetadata().Known() {
		t.Error("the sentinel must not report as known")
	}
	if (TokenMetadata{}).Known() {
		t.Error("empty metadata must not report as known")
	}
	if !(TokenMetadata{Name: "Real", Symbol: "RL"}).Known() {
		t.Error("named metadata should report as known")
	}
}
