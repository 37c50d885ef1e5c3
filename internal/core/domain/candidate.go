package domain

// TokenCandidate is the token identity and amount extracted from a
// positively classified transaction. UIAmount must be > 0 to be
// alert-worthy.
type TokenCandidate struct {
	Mint      string
	RawAmount string
	Decimals  int
	UIAmount  float64
}
