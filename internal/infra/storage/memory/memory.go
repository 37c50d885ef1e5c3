// Package memory backs the repositories with in-process maps. Used by
// tests and single-run deployments; the ledger still honors the atomic
// insert-if-absent contract.
package memory

import (
	"context"
	"sync"
	"time"

	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/storage"
)

type Storage struct {
	mu      sync.Mutex
	ledger  map[string]*domain.LedgerEntry
	wallets map[walletKey]*domain.WalletWatch
	nextID  uint64
}

type walletKey struct {
	chatID  int64
	address string
}

func NewStorage() *Storage {
	return &Storage{
		ledger:  make(map[string]*domain.LedgerEntry),
		wallets: make(map[walletKey]*domain.WalletWatch),
	}
}

// -----------------------------------------------------------------------------
// Ledger repository
// -----------------------------------------------------------------------------

type LedgerRepo struct {
	store *Storage
}

func NewLedgerRepo(store *Storage) *LedgerRepo {
	return &LedgerRepo{store: store}
}

func (r *LedgerRepo) Exists(ctx context.Context, key string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.ledger[key]
	return ok, nil
}

func (r *LedgerRepo) InsertIfAbsent(ctx context.Context, key string, entry *domain.LedgerEntry) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.ledger[key]; ok {
		return false, nil
	}
	cp := *entry
	if cp.FirstSeen.IsZero() {
		cp.FirstSeen = time.Now()
	}
	r.store.ledger[key] = &cp
	return true, nil
}

func (r *LedgerRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var removed int64
	for k, e := range r.store.ledger {
		if e.FirstSeen.Before(olderThan) {
			delete(r.store.ledger, k)
			removed++
		}
	}
	return removed, nil
}

func (r *LedgerRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.ledger)), nil
}

// -----------------------------------------------------------------------------
// Wallet repository
// -----------------------------------------------------------------------------

type WalletRepo struct {
	store *Storage
}

func NewWalletRepo(store *Storage) *WalletRepo {
	return &WalletRepo{store: store}
}

func (r *WalletRepo) Save(ctx context.Context, watch *domain.WalletWatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := walletKey{chatID: watch.ChatID, address: watch.Address}
	if _, ok := r.store.wallets[key]; ok {
		return nil
	}
	cp := *watch
	r.store.nextID++
	cp.ID = r.store.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.store.wallets[key] = &cp
	return nil
}

func (r *WalletRepo) Delete(ctx context.Context, chatID int64, address string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := walletKey{chatID: chatID, address: address}
	if _, ok := r.store.wallets[key]; !ok {
		return storage.ErrNotFound
	}
	delete(r.store.wallets, key)
	return nil
}

func (r *WalletRepo) GetByChat(ctx context.Context, chatID int64) ([]*domain.WalletWatch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var watches []*domain.WalletWatch
	for key, w := range r.store.wallets {
		if key.chatID == chatID {
			cp := *w
			watches = append(watches, &cp)
		}
	}
	return watches, nil
}

func (r *WalletRepo) GetAll(ctx context.Context) ([]*domain.WalletWatch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var watches []*domain.WalletWatch
	for _, w := range r.store.wallets {
		cp := *w
		watches = append(watches, &cp)
	}
	return watches, nil
}

func (r *WalletRepo) TouchLastChecked(ctx context.Context, address string, t time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, w := range r.store.wallets {
		if w.Address == address {
			w.LastCheckedAt = t
		}
	}
	return nil
}
