package classify

import "launchwatch/internal/core/domain"

// ExtractCandidate scans post-state balances in record order and
// returns the first alert-worthy entry, or nil when none qualifies.
// In strict mode the mint must also be absent from the pre-state
// balances (true novelty). A positive verdict with a nil candidate is
// a no-op for callers, not an error.
func ExtractCandidate(rec *domain.TransactionRecord, strict bool) *domain.TokenCandidate {
	if rec == nil || rec.Meta == nil {
		return nil
	}

	pre := rec.PreTokenBalances()
	for _, b := range rec.PostTokenBalances() {
		if !b.Positive() {
			continue
		}
		if strict && mintPresent(pre, b.Mint) {
			continue
		}
		return &domain.TokenCandidate{
			Mint:      b.Mint,
			RawAmount: b.UITokenAmount.Amount,
			Decimals:  b.UITokenAmount.Decimals,
			UIAmount:  *b.UITokenAmount.UIAmount,
		}
	}
	return nil
}
