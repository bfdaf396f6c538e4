// Package gateway is the client for the hosted backend that owns all
// persistence: a PostgREST-style rows API, object storage, email/password
// auth, and a realtime change feed. The console consumes these interfaces and
// never implements them.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"e-guarding-cctv/console/config"
)

type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Select fetches rows from a collection into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, collection string, q *Query, dest any) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.restURL(collection, q), nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

// Insert creates a row. When dest is non-nil the inserted representation is
// decoded into it (a pointer to a slice of rows).
func (c *Client) Insert(ctx context.Context, collection string, row any, dest any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode %s row: %w", collection, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.restURL(collection, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	if dest != nil {
		req.Header.Set("Prefer", "return=representation")
	}
	return c.do(req, dest)
}

// Update patches all rows matching q.
func (c *Client) Update(ctx context.Context, collection string, patch any, q *Query) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode %s patch: %w", collection, err)
	}
	req, err := c.newRequest(ctx, http.MethodPatch, c.restURL(collection, q), bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Delete removes all rows matching q.
func (c *Client) Delete(ctx context.Context, collection string, q *Query) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.restURL(collection, q), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) restURL(collection string, q *Query) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(collection))
	params := url.Values{}
	params.Set("select", "*")
	if q != nil {
		q.encode(params)
	}
	return u + "?" + params.Encode()
}

func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(msg))
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
