package metadata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"launchwatch/internal/core/domain"
)

const defaultSolscanBaseURL = "https://public-api.solscan.io"

// Solscan resolves metadata from the Solscan public API.
type Solscan struct {
	baseURL string
	client  *http.Client
}

// NewSolscan creates a Solscan resolver.
func NewSolscan(baseURL string, timeout time.Duration) *Solscan {
	if baseURL == "" {
		baseURL = defaultSolscanBaseURL
	}
	return &Solscan{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (s *Solscan) Name() string { return "solscan" }

func (s *Solscan) Resolve(ctx context.Context, mint string) (domain.TokenMetadata, error) {
	var payload struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	}

	url := fmt.Sprintf("%s/token/meta?tokenAddress=%s", s.baseURL, mint)
	if err := getJSON(ctx, s.client, url, nil, &payload); err != nil {
		return domain.TokenMetadata{}, err
	}
	if payload.Name == "" {
		return domain.UnknownMetadata(), nil
	}

	md := domain.TokenMetadata{
		Name:     payload.Name,
		Symbol:   payload.Symbol,
		Decimals: payload.Decimals,
	}
	if md.Symbol == "" {
		md.Symbol = domain.UnknownTokenSymbol
	}
	return md, nil
}
