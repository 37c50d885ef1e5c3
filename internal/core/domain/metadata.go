package domain

// Sentinel values indicating a metadata provider found nothing.
// Matching the sentinel (rather than an error) lets the resolver chain
// fall through to the next provider.
const (
	UnknownTokenName   = "Unknown Token"
	UnknownTokenSymbol = "UNKNOWN"
)

// TokenMetadata is the display information for a mint.
type TokenMetadata struct {
	Name     string
	Symbol   string
	Decimals int
}

// UnknownMetadata is the agreed "provider found nothing" result.
func UnknownMetadata() TokenMetadata {
	return TokenMetadata{
		Name:     UnknownTokenName,
		Symbol:   UnknownTokenSymbol,
		Decimals: 9,
	}
}

// Known reports whether the metadata carries a real display name.
func (m TokenMetadata) Known() bool {
	return m.Name != "" && m.Name != UnknownTokenName
}
