package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/storage"
)

// WalletRepo implements storage.WalletRepository using PostgreSQL.
type WalletRepo struct {
	db *DB
}

// NewWalletRepo creates a new PostgreSQL wallet repository.
func NewWalletRepo(db *DB) *WalletRepo {
	return &WalletRepo{db: db}
}

type walletRow struct {
	ID            uint64       `db:"id"`
	Address       string       `db:"address"`
	ChatID        int64        `db:"chat_id"`
	LastCheckedAt sql.NullTime `db:"last_checked_at"`
	CreatedAt     time.Time    `db:"created_at"`
}

func (row walletRow) toDomain() *domain.WalletWatch {
	w := &domain.WalletWatch{
		ID:        row.ID,
		Address:   row.Address,
		ChatID:    row.ChatID,
		CreatedAt: row.CreatedAt,
	}
	if row.LastCheckedAt.Valid {
		w.LastCheckedAt = row.LastCheckedAt.Time
	}
	return w
}

// Save inserts a watch; an existing (chat, address) pair is left as is.
func (r *WalletRepo) Save(ctx context.Context, watch *domain.WalletWatch) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wallet_watches (address, chat_id)
		 VALUES ($1, $2)
		 ON CONFLICT (chat_id, address) DO NOTHING`,
		watch.Address, watch.ChatID)
	if err != nil {
		return fmt.Errorf("failed to save wallet watch: %w", err)
	}
	return nil
}

// Delete removes a watch owned by the chat.
func (r *WalletRepo) Delete(ctx context.Context, chatID int64, address string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wallet_watches WHERE chat_id = $1 AND address = $2`,
		chatID, address)
	if err != nil {
		return fmt.Errorf("failed to delete wallet watch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetByChat retrieves the watches owned by a chat.
func (r *WalletRepo) GetByChat(ctx context.Context, chatID int64) ([]*domain.WalletWatch, error) {
	var rows []walletRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, address, chat_id, last_checked_at, created_at
		 FROM wallet_watches WHERE chat_id = $1 ORDER BY id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet watches: %w", err)
	}

	watches := make([]*domain.WalletWatch, 0, len(rows))
	for _, row := range rows {
		watches = append(watches, row.toDomain())
	}
	return watches, nil
}

// GetAll retrieves every watch.
func (r *WalletRepo) GetAll(ctx context.Context) ([]*domain.WalletWatch, error) {
	var rows []walletRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, address, chat_id, last_checked_at, created_at
		 FROM wallet_watches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet watches: %w", err)
	}

	watches := make([]*domain.WalletWatch, 0, len(rows))
	for _, row := range rows {
		watches = append(watches, row.toDomain())
	}
	return watches, nil
}

// TouchLastChecked records the end of a poll cycle for a wallet.
func (r *WalletRepo) TouchLastChecked(ctx context.Context, address string, t time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE wallet_watches SET last_checked_at = $2 WHERE address = $1`,
		address, t)
	if err != nil {
		return fmt.Errorf("failed to touch wallet watch: %w", err)
	}
	return nil
}
