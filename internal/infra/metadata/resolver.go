// Package metadata resolves token display information through an
// ordered chain of third-party providers. Providers signal "found
// nothing" with the Unknown sentinel rather than an error, so the
// chain falls through cleanly.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"launchwatch/internal/alerting/metrics"
	"launchwatch/internal/core/domain"
)

// Resolver looks up display metadata for a mint.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, mint string) (domain.TokenMetadata, error)
}

// Chain tries resolvers in order until one returns a known name.
// Provider order is configuration data, not code.
type Chain struct {
	resolvers []Resolver
	log       *slog.Logger
}

// NewChain creates a resolver chain.
func NewChain(log *slog.Logger, resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers, log: log}
}

// Resolve returns the first known metadata, or the Unknown sentinel
// when every provider comes up empty. Provider errors are logged and
// treated as "not found" so one flaky upstream never blocks alerting.
func (c *Chain) Resolve(ctx context.Context, mint string) domain.TokenMetadata {
	for _, r := range c.resolvers {
		md, err := r.Resolve(ctx, mint)
		if err != nil {
			metrics.MetadataLookups.WithLabelValues(r.Name(), "error").Inc()
			c.log.Debug("metadata lookup failed", "provider", r.Name(), "mint", mint, "error", err)
			continue
		}
		if md.Known() {
			metrics.MetadataLookups.WithLabelValues(r.Name(), "hit").Inc()
			return md
		}
		metrics.MetadataLookups.WithLabelValues(r.Name(), "miss").Inc()
	}
	return domain.UnknownMetadata()
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// getJSON fetches a URL and decodes the JSON body into out. A non-2xx
// status is reported as an error with the status code.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
