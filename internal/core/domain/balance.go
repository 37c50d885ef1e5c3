package domain

// TokenBalance is one entry of the pre/post token balance summary.
type TokenBalance struct {
	AccountIndex  int           `json:"accountIndex"`
	Mint          string        `json:"mint"`
	Owner         string        `json:"owner"`
	UITokenAmount UITokenAmount `json:"uiTokenAmount"`
}

// UITokenAmount carries the raw integer amount alongside its
// human-readable form. UIAmount is a pointer because the RPC node
// reports null for zero balances on some endpoints.
type UITokenAmount struct {
	UIAmount *float64 `json:"uiAmount"`
	Amount   string   `json:"amount"`
	Decimals int      `json:"decimals"`
}

// Positive reports whether the balance has a positive human amount.
func (b TokenBalance) Positive() bool {
	return b.UITokenAmount.UIAmount != nil && *b.UITokenAmount.UIAmount > 0
}
