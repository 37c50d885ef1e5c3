package metadata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"launchwatch/internal/core/domain"
)

const defaultDexScreenerBaseURL = "https://api.dexscreener.com"

// DexScreener resolves metadata from the DexScreener pairs API.
type DexScreener struct {
	baseURL string
	client  *http.Client
}

// NewDexScreener creates a DexScreener resolver.
func NewDexScreener(baseURL string, timeout time.Duration) *DexScreener {
	if baseURL == "" {
		baseURL = defaultDexScreenerBaseURL
	}
	return &DexScreener{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (d *DexScreener) Name() string { return "dexscreener" }

func (d *DexScreener) Resolve(ctx context.Context, mint string) (domain.TokenMetadata, error) {
	var payload struct {
		Pairs []struct {
			BaseToken struct {
				Name   string `json:"name"`
				Symbol string `json:"symbol"`
			} `json:"baseToken"`
		} `json:"pairs"`
	}

	url := fmt.Sprintf("%s/latest/dex/tokens/%s", d.baseURL, mint)
	if err := getJSON(ctx, d.client, url, nil, &payload); err != nil {
		return domain.TokenMetadata{}, err
	}
	if len(payload.Pairs) == 0 || payload.Pairs[0].BaseToken.Name == "" {
		return domain.UnknownMetadata(), nil
	}

	md := domain.TokenMetadata{
		Name:     payload.Pairs[0].BaseToken.Name,
		Symbol:   payload.Pairs[0].BaseToken.Symbol,
		Decimals: 9,
	}
	if md.Symbol == "" {
		md.Symbol = domain.UnknownTokenSymbol
	}
	return md, nil
}
