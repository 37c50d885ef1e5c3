package domain

import "time"

// WalletWatch is a monitored wallet bound to the Telegram chat that
// requested it. Mutated by the admin commands, read by the poller
// each cycle.
type WalletWatch struct {
	ID            uint64
	Address       string
	ChatID        int64
	LastCheckedAt time.Time
	CreatedAt     time.Time
}
