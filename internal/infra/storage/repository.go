package storage

import (
	"context"
	"errors"
	"time"

	"launchwatch/internal/core/domain"
)

var (
	// ErrNotFound is returned when a wallet watch doesn't exist.
	ErrNotFound = errors.New("not found")
)

// LedgerRepository is the dedup ledger: a persisted set of
// already-alerted keys. It is the sole writer of alert state; every
// other component only reads through it.
type LedgerRepository interface {
	// Exists is a read-only membership test for a dedup key.
	Exists(ctx context.Context, key string) (bool, error)

	// InsertIfAbsent atomically claims a key. It returns false when the
	// key was already present, which is what enforces at-most-once
	// alerting even across concurrent workers.
	InsertIfAbsent(ctx context.Context, key string, entry *domain.LedgerEntry) (bool, error)

	// Prune deletes entries first seen before the cutoff and returns
	// how many were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	// Count returns the number of live entries.
	Count(ctx context.Context) (int64, error)
}

// WalletRepository stores the watched wallets.
type WalletRepository interface {
	// Save inserts a watch; saving an existing (address, chat) pair is
	// a no-op.
	Save(ctx context.Context, watch *domain.WalletWatch) error

	// Delete removes a watch for the given chat. Returns ErrNotFound
	// when no such watch exists.
	Delete(ctx context.Context, chatID int64, address string) error

	// GetByChat retrieves the watches owned by a chat.
	GetByChat(ctx context.Context, chatID int64) ([]*domain.WalletWatch, error)

	// GetAll retrieves every watch.
	GetAll(ctx context.Context) ([]*domain.WalletWatch, error)

	// TouchLastChecked records the end of a poll cycle for a wallet.
	TouchLastChecked(ctx context.Context, address string, t time.Time) error
}
