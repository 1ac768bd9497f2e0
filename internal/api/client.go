// Package api is the client for the oracle asset REST service.
//
// The service exposes a single catalog endpoint; encoding and availability
// checks are answered from one catalog fetch per call, with encoded ids
// derived locally by internal/assetid.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asset-conf/internal/catalog"
	"asset-conf/internal/errs"
	"asset-conf/internal/logger"
	"asset-conf/internal/state"

	json "github.com/bytedance/sonic"
)

// assetsPath is the catalog endpoint relative to the base URL.
const assetsPath = "/v1/prices/assets"

// maxErrorBody caps how much of a failed response is quoted back to the user.
const maxErrorBody = 512

// Client talks to the asset REST service. It implements catalog.Source.
type Client struct {
	baseURL string
	creds   state.CredentialStore
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient returns a Client for baseURL that authenticates with the token
// held by creds.
func NewClient(baseURL string, creds state.CredentialStore, options ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// assetsResponse is the body of GET /v1/prices/assets.
type assetsResponse struct {
	Data []any `json:"data"`
}

// ListAssets fetches the full catalog in server order.
func (c *Client) ListAssets(ctx context.Context) ([]string, error) {
	token, err := c.creds.Load()
	if err != nil {
		if errors.Is(err, errs.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %w", errs.ErrAuth, err)
		}
		return nil, err
	}

	url := c.baseURL + assetsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", errs.ErrNetwork, url, err)
	}
	req.Header.Set("Authorization", "Basic "+token)
	req.Header.Set("Accept", "application/json")

	logger.Debug("[DEBUG] Fetching asset catalog from URL: %s\n", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching asset catalog: %w", errs.ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading asset catalog: %w", errs.ErrNetwork, err)
	}

	var out assetsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: invalid response format from server: %w", errs.ErrAPI, err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: invalid response format from server: missing \"data\"", errs.ErrAPI)
	}

	ids := catalog.Symbols(out.Data)
	if skipped := len(out.Data) - len(ids); skipped > 0 {
		logger.Debug("[DEBUG] Skipped %d non-string catalog entries\n", skipped)
	}
	logger.Debug("[DEBUG] Catalog has %d assets\n", len(ids))
	return ids, nil
}

// checkStatus classifies a non-2xx response.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := fmt.Sprintf("server returned status %s", resp.Status)
	if msg := strings.TrimSpace(string(snippet)); msg != "" {
		detail += ": " + msg
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", errs.ErrAuth, detail)
	default:
		return fmt.Errorf("%w: %s", errs.ErrAPI, detail)
	}
}

// GetEncoded resolves the encoded id of every requested asset against the
// live catalog. See EncodeAssets.
func (c *Client) GetEncoded(ctx context.Context, ids []string) ([]EncodedAsset, error) {
	return EncodeAssets(ctx, c, ids)
}

// Check reports whether each requested asset is in the live catalog.
// See CheckAssets.
func (c *Client) Check(ctx context.Context, ids []string) ([]Availability, error) {
	return CheckAssets(ctx, c, ids)
}
