package domain

// PushEvent is a pre-decoded transaction event delivered by a webhook
// provider (Helius enhanced-transaction shape). It is reduced to the
// same TokenCandidate form as the polling path before entering the
// dedup pipeline.
type PushEvent struct {
	Signature      string          `json:"signature"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
}

type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenName       string  `json:"tokenName"`
	TokenSymbol     string  `json:"tokenSymbol"`
	Amount          float64 `json:"amount"`
}
