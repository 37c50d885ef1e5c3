package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHeliusBaseURL = "https://api.helius.xyz"

// AgeSource reports when a mint was created, for the alert's token-age
// line.
type AgeSource interface {
	CreationTime(ctx context.Context, mint string) (time.Time, error)
}

// Helius answers creation-time queries from the Helius token-metadata
// API.
type Helius struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHelius creates a Helius age source.
func NewHelius(baseURL, apiKey string, timeout time.Duration) *Helius {
	if baseURL == "" {
		baseURL = defaultHeliusBaseURL
	}
	return &Helius{baseURL: baseURL, apiKey: apiKey, client: newHTTPClient(timeout)}
}

// CreationTime returns the on-chain creation time of a mint.
func (h *Helius) CreationTime(ctx context.Context, mint string) (time.Time, error) {
	reqBody, err := json.Marshal(map[string]any{"mintAccounts": []string{mint}})
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v0/token-metadata?api-key=%s", h.baseURL, h.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return time.Time{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return time.Time{}, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("http %d", resp.StatusCode)
	}

	var payload []struct {
		OnChainMetadata struct {
			CreationTime int64 `json:"creationTime"`
		} `json:"onChainMetadata"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return time.Time{}, fmt.Errorf("decode body: %w", err)
	}
	if len(payload) == 0 || payload[0].OnChainMetadata.CreationTime == 0 {
		return time.Time{}, fmt.Errorf("no creation time for %s", mint)
	}

	return time.Unix(payload[0].OnChainMetadata.CreationTime, 0), nil
}

// FallbackAge chains age sources: the first that answers wins. The
// usual pairing is Helius first, oldest-signature RPC scan second.
type FallbackAge struct {
	sources []AgeSource
}

// NewFallbackAge creates a chained age source.
func NewFallbackAge(sources ...AgeSource) *FallbackAge {
	return &FallbackAge{sources: sources}
}

func (f *FallbackAge) CreationTime(ctx context.Context, mint string) (time.Time, error) {
	var lastErr error
	for _, s := range f.sources {
		t, err := s.CreationTime(ctx, mint)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no age sources configured")
	}
	return time.Time{}, lastErr
}
