package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchwatch/internal/core/domain"
	"launchwatch/internal/infra/storage"
)

func TestLedgerRepo_InsertIfAbsent(t *testing.T) {
	repo := NewLedgerRepo(NewStorage())
	ctx := context.Background()

	entry := &domain.LedgerEntry{Name: "Test Token", Mint: "M1", Wallet: "W1", Signature: "S1"}

	inserted, err := repo.InsertIfAbsent(ctx, "Test Token|M1", entry)
	if err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}
	if !inserted {
		t.Fatal("first insert should claim the key")
	}

	inserted, err = repo.InsertIfAbsent(ctx, "Test Token|M1", entry)
	if err != nil {
		t.Fatalf("InsertIfAbsent (2) failed: %v", err)
	}
	if inserted {
		t.Error("second insert should report the key as taken")
	}

	exists, err := repo.Exists(ctx, "Test Token|M1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("key should exist after insert")
	}

	exists, _ = repo.Exists(ctx, "Other|M2")
	if exists {
		t.Error("unrelated key should not exist")
	}
}

func TestLedgerRepo_Prune(t *testing.T) {
	repo := NewLedgerRepo(NewStorage())
	ctx := context.Background()
	now := time.Now()

	old := &domain.LedgerEntry{Mint: "M1", FirstSeen: now.Add(-8 * 24 * time.Hour)}
	fresh := &domain.LedgerEntry{Mint: "M2", FirstSeen: now.Add(-time.Hour)}

	if _, err := repo.InsertIfAbsent(ctx, "a|M1", old); err != nil {
		t.Fatalf("insert old: %v", err)
	}
	if _, err := repo.InsertIfAbsent(ctx, "b|M2", fresh); err != nil {
		t.Fatalf("insert fresh: %v", err)
	}

	pruned, err := repo.Prune(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("expected 1 pruned entry, got %d", pruned)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 remaining entry, got %d", count)
	}

	// Pruned keys are claimable again.
	inserted, _ := repo.InsertIfAbsent(ctx, "a|M1", old)
	if !inserted {
		t.Error("pruned key should be claimable again")
	}
}

func TestWalletRepo_SaveAndDelete(t *testing.T) {
	repo := NewWalletRepo(NewStorage())
	ctx := context.Background()

	w := &domain.WalletWatch{Address: "Addr1", ChatID: 100}
	if err := repo.Save(ctx, w); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Saving the same pair again is a no-op.
	if err := repo.Save(ctx, w); err != nil {
		t.Fatalf("Save (2) failed: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 watch, got %d", len(all))
	}

	if err := repo.Delete(ctx, 100, "Addr1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, 100, "Addr1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWalletRepo_GetByChat(t *testing.T) {
	repo := NewWalletRepo(NewStorage())
	ctx := context.Background()

	_ = repo.Save(ctx, &domain.WalletWatch{Address: "A1", ChatID: 1})
	_ = repo.Save(ctx, &domain.WalletWatch{Address: "A2", ChatID: 1})
	_ = repo.Save(ctx, &domain.WalletWatch{Address: "A3", ChatID: 2})

	watches, err := repo.GetByChat(ctx, 1)
	if err != nil {
		t.Fatalf("GetByChat failed: %v", err)
	}
	if len(watches) != 2 {
		t.Errorf("expected 2 watches for chat 1, got %d", len(watches))
	}
}

func TestWalletRepo_TouchLastChecked(t *testing.T) {
	repo := NewWalletRepo(NewStorage())
	ctx := context.Background()

	_ = repo.Save(ctx, &domain.WalletWatch{Address: "A1", ChatID: 1})

	ts := time.Now()
	if err := repo.TouchLastChecked(ctx, "A1", ts); err != nil {
		t.Fatalf("TouchLastChecked failed: %v", err)
	}

	all, _ := repo.GetAll(ctx)
	if len(all) != 1 || !all[0].LastCheckedAt.Equal(ts) {
		t.Errorf("last checked not recorded: %+v", all)
	}
}
