// Package backend wraps the hosted CompraMeX API. All persistence, search
// and messaging logic lives behind these plain HTTP JSON endpoints; this
// client only shapes requests and maps responses to domain types.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound maps a 404 from any endpoint.
	ErrNotFound = errors.New("backend: not found")
	// ErrUnavailable covers transport failures and 5xx responses. Pollers
	// skip the tick and retry on the next one; sends surface it to the user.
	ErrUnavailable = errors.New("backend: service unavailable")
)

// Config defines hosted API client settings.
type Config struct {
	BaseURL     string
	CallTimeout time.Duration
}

// Client is a typed wrapper over the hosted API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient validates the configuration and returns a ready client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend: base URL required")
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		logger:     logger,
	}, nil
}

// envelope is the hosted API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError("backend request failed", req, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(snippet))
		c.logError("backend returned error", req, err)
		return err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logError("backend decode failed", req, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !env.Success {
		if strings.Contains(strings.ToLower(env.Error), "not found") {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrUnavailable, env.Error)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logError("backend payload decode failed", req, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) logError(msg string, req *http.Request, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, "method", req.Method, "path", req.URL.Path, "error", err)
}
