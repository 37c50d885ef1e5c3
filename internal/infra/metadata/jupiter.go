package metadata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"launchwatch/internal/core/domain"
)

const defaultJupiterBaseURL = "https://quote-api.jup.ag"

// Jupiter resolves metadata from the Jupiter token API.
type Jupiter struct {
	baseURL string
	client  *http.Client
}

// NewJupiter creates a Jupiter resolver. An empty baseURL uses the
// public endpoint.
func NewJupiter(baseURL string, timeout time.Duration) *Jupiter {
	if baseURL == "" {
		baseURL = defaultJupiterBaseURL
	}
	return &Jupiter{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (j *Jupiter) Name() string { return "jupiter" }

func (j *Jupiter) Resolve(ctx context.Context, mint string) (domain.TokenMetadata, error) {
	var payload struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	}

	url := fmt.Sprintf("%s/v6/tokens/%s", j.baseURL, mint)
	if err := getJSON(ctx, j.client, url, nil, &payload); err != nil {
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
