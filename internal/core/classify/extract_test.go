package classify

import (
	"testing"

	"launchwatch/internal/core/domain"
)

func TestExtractCandidate_FirstPositive(t *testing.T) {
	rec := parsedTx(nil, &domain.TransactionMeta{
		PostTokenBalances: []domain.TokenBalance{
			balance("M0", 0, "0", 6),
			balance("M1", 1000, "1000000000", 6),
			balance("M2", 7, "7000000", 6),
		},
	})

	cand := ExtractCandidate(rec, false)
	if cand == nil {
		t.Fatal("expected a candidate")
	}
	if cand.Mint != "M1" {
		t.Errorf("expected first positive mint M1, got %s", cand.Mint)
	}
	if cand.RawAmount != "1000000000" || cand.Decimals != 6 {
		t.Errorf("raw amount mismatch: %s / %d", cand.RawAmount, cand.Decimals)
	}
	if cand.UIAmount != 1000 {
		t.Errorf("expected ui amount 1000, got %v", cand.UIAmount)
	}
}

func TestExtractCandidate_StrictSkipsKnownMints(t *testing.T) {
	rec := parsedTx(nil, &domain.TransactionMeta{
		PreTokenBalances: []domain.TokenBalance{balance("M1", 1, "1000000", 6)},
		PostTokenBalances: []domain.TokenBalance{
			balance("M1", 5, "5000000", 6),
			balance("M2", 3, "3000000", 6),
		},
	})

	cand := ExtractCandidate(rec, true)
	if cand == nil {
		t.Fatal("expected a candidate")
	}
	if cand.Mint != "M2" {
		t.Errorf("strict mode should skip pre-existing M1, got %s", cand.Mint)
	}
}

func TestExtractCandidate_StrictNoNovelMint(t *testing.T) {
	rec := parsedTx(nil, &domain.TransactionMeta{
		PreTokenBalances:  []domain.TokenBalance{balance("M1", 1, "1000000", 6)},
		PostTokenBalances: []domain.TokenBalance{balance("M1", 5, "5000000", 6)},
	})
	if cand := ExtractCandidate(rec, true); cand != nil {
		t.Errorf("expected nil candidate, got %+v", cand)
	}
}

func TestExtractCandidate_Malformed(t *testing.T) {
	if cand := ExtractCandidate(nil, false); cand != nil {
		t.Errorf("nil record: got %+v", cand)
	}
	if cand := ExtractCandidate(&domain.TransactionRecord{}, false); cand != nil {
		t.Errorf("nil meta: got %+v", cand)
	}
	rec := parsedTx(nil, &domain.TransactionMeta{
		PostTokenBalances: []domain.TokenBalance{balance("M1", 0, "0", 6)},
	})
	if cand := ExtractCandidate(rec, false); cand != nil {
		t.Errorf("no positive balance: got %+v", cand)
	}
}
