// Package commerce wraps the commerce backend's catalog search and cart endpoints.
// Every call returns a descriptive string meant to be read by a language model.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout       = 15 * time.Second
	maxResponseSizeBytes = 2 << 20
)

type Config struct {
	BaseURL string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"15s"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client talks to the commerce REST API. Catalog calls are unauthenticated; cart calls carry
// the caller's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("commerce base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid commerce base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

type response struct {
	status int
	body   []byte
}

func (r *response) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode commerce response: %w", err)
	}
	return nil
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	token string,
	payload any,
) (*response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal commerce payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build commerce request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute commerce request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read commerce response: %w", err)
	}

	return &response{status: resp.StatusCode, body: raw}, nil
}

// Product is the subset of a catalog product the assistant reads.
type Product struct {
	ID            any    `json:"_id,omitempty"`
	EmbeddingText string `json:"embedding_text"`
}

func joinEmbeddingTexts(products []*Product) []string {
	texts := make([]string, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		texts = append(texts, p.EmbeddingText)
	}
	return texts
}
