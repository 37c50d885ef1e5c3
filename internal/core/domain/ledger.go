package domain

import (
	"fmt"
	"time"
)

// KeyMode selects how dedup keys are derived.
type KeyMode string

const (
	// KeyByToken keys entries by (token display name, mint): the same
	// token is never re-alerted even when a later transaction looks
	// like a launch for it again.
	KeyByToken KeyMode = "token"

	// KeyBySignature keys entries by (wallet, signature): per-signature
	// tracking that accepts repeat alerts for the same mint.
	KeyBySignature KeyMode = "signature"
)

// Valid reports whether the mode is one of the supported choices.
func (m KeyMode) Valid() bool {
	return m == KeyByToken || m == KeyBySignature
}

// LedgerEntry is a persisted "already alerted" record. Created once on
// first qualifying detection, removed only by the retention sweep.
type LedgerEntry struct {
	Name      string
	Mint      string
	Wallet    string
	Signature string
	FirstSeen time.Time
}

// DedupKey derives the composite key for the entry under the given mode.
func (e *LedgerEntry) DedupKey(mode KeyMode) string {
	if mode == KeyBySignature {
		return fmt.Sprintf("%s|%s", e.Wallet, e.Signature)
	}
	return fmt.Sprintf("%s|%s", e.Name, e.Mint)
}
