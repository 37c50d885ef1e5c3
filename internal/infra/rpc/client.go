// Package rpc is the pull-side transaction source: a Solana JSON-RPC
// client over HTTP with rate limiting, retry, and jsonParsed decoding.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"launchwatch/internal/alerting/metrics"
	"launchwatch/internal/core/domain"
)

// Config holds RPC client configuration.
type Config struct {
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

// Client is a Solana JSON-RPC client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      RetryConfig
}

// NewClient creates a new client. A zero rate limit disables the
// limiter (useful for private endpoints and tests).
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RateLimit) + 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
		retry:   DefaultRetryConfig,
	}
}

// SignatureInfo is one element of a getSignaturesForAddress response.
type SignatureInfo struct {
	Signature string `json:"signature"`
	BlockTime int64  `json:"blockTime"`
	Err       any    `json:"err"`
}

// ListSignatures returns up to limit recent transaction signatures for
// a wallet, newest first.
func (c *Client) ListSignatures(ctx context.Context, wallet string, limit int) ([]SignatureInfo, error) {
	raw, err := c.call(ctx, "getSignaturesForAddress", []any{
		wallet,
		map[string]any{"limit": limit},
	})
	if err != nil {
		return nil, err
	}

	var sigs []SignatureInfo
	if err := json.Unmarshal(raw, &sigs); err != nil {
		return nil, fmt.Errorf("decode signatures: %w", err)
	}
	return sigs, nil
}

// GetTransaction fetches the full parsed record for a signature.
// Returns (nil, nil) when the node does not know the transaction.
func (c *Client) GetTransaction(ctx context.Context, signature string) (*domain.TransactionRecord, error) {
	raw, err := c.call(ctx, "getTransaction", []any{
		signature,
		map[string]any{
			"encoding":                       "jsonParsed",
			"maxSupportedTransactionVersion": 0,
			"commitment":                     "confirmed",
		},
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var rec domain.TransactionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", signature, err)
	}
	rec.Signature = signature
	return &rec, nil
}

// OldestSignatureTime returns the block time of the oldest known
// signature for an address. Used as the token-age fallback when the
// metadata provider has no creation time for a mint.
func (c *Client) OldestSignatureTime(ctx context.Context, mint string) (time.Time, error) {
	raw, err := c.call(ctx, "getSignaturesForAddress", []any{
		mint,
		map[string]any{"limit": 1000},
	})
	if err != nil {
		return time.Time{}, err
	}

	var sigs []SignatureInfo
	if err := json.Unmarshal(raw, &sigs); err != nil {
		return time.Time{}, fmt.Errorf("decode signatures: %w", err)
	}
	if len(sigs) == 0 {
		return time.Time{}, fmt.Errorf("no signatures for %s", mint)
	}

	// Newest first; the last element is the oldest visible transaction.
	oldest := sigs[len(sigs)-1]
	if oldest.BlockTime == 0 {
		return time.Time{}, fmt.Errorf("oldest signature for %s has no block time", mint)
	}
	return time.Unix(oldest.BlockTime, 0), nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call executes one JSON-RPC method with retry on transient failures.
func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	result, err := CallWithRetry(ctx, c.retry, func(ctx context.Context) (json.RawMessage, error) {
		return c.callOnce(ctx, method, params)
	})

	metrics.RPCCalls.WithLabelValues(method).Inc()
	if err != nil {
		metrics.RPCErrors.WithLabelValues(method).Inc()
	}
	return result, err
}

func (c *Client) callOnce(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (429), retry after: %s", resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, respBody)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}
