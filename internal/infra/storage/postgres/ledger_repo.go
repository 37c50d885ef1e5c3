package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"launchwatch/internal/core/domain"
)

// LedgerRepo implements storage.LedgerRepository using PostgreSQL.
type LedgerRepo struct {
	db *DB
}

// NewLedgerRepo creates a new PostgreSQL ledger repository.
func NewLedgerRepo(db *DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Exists checks whether a dedup key has been claimed.
func (r *LedgerRepo) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM alerted_tokens WHERE dedup_key = $1)`, key)
	if err != nil {
		return false, fmt.Errorf("failed to check ledger key: %w", err)
	}
	return exists, nil
}

// InsertIfAbsent claims a dedup key. ON CONFLICT DO NOTHING makes the
// test-and-set atomic; zero rows affected means another actor already
// holds the key. A unique violation on any other constraint is also a
// lost claim, not an error.
func (r *LedgerRepo) InsertIfAbsent(ctx context.Context, key string, entry *domain.LedgerEntry) (bool, error) {
	firstSeen := entry.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO alerted_tokens (dedup_key, token_name, mint, wallet, signature, first_seen)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (dedup_key) DO NOTHING`,
		key, entry.Name, entry.Mint, entry.Wallet, entry.Signature, firstSeen)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Prune removes entries first seen before the cutoff.
func (r *LedgerRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM alerted_tokens WHERE first_seen < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune ledger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// Count returns the number of live entries.
func (r *LedgerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM alerted_tokens`); err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return n, nil
}
