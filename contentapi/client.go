// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package contentapi

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
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultMaxAttempts = 5
	defaultBaseDelay   = 500 * time.Millisecond
	defaultRate        = rate.Limit(10)
)

// Document is one document returned by the API.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Content returns the text a corpus file is written from.
func (d *Document) Content() string {
	switch {
	case d.Title == "":
		return d.Text
	case d.Text == "":
		return d.Title
	default:
		return d.Title + "\n\n" + d.Text
	}
}

type idsResponse struct {
	IDs        []string `json:"ids"`
	NextCursor string   `json:"next_cursor"`
}

type documentsRequest struct {
	IDs []string `json:"ids"`
}

type documentsResponse struct {
	Documents []*Document `json:"documents"`
}

// Client talks to the content API.
type Client struct {
	baseURL     string
	auth        Authorizer
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client requests are sent with.
// Default is a client with a 60 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return errors.New("http client is nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithAuthorizer sets where the Authorization header comes from.
// Requests carry no Authorization header by default.
func WithAuthorizer(auth Authorizer) Option {
	return func(c *Client) error {
		c.auth = auth
		return nil
	}
}

// WithRateLimit allows limit requests per second with bursts of burst.
// Default is 10 requests per second.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) error {
		c.limiter = rate.NewLimiter(limit, max(burst, 1))
		return nil
	}
}

// WithRetry sets how often a request is attempted and the first backoff delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		c.maxAttempts = maxAttempts
		c.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url", ErrMissingConfig)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		limiter:     rate.NewLimiter(defaultRate, 1),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "contentapi")
	return c, nil
}

// NewClientFromConfig creates a client for cfg, authorized through the
// client credentials grant when cfg has a client ID.
func NewClientFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ClientID != "" {
		opts = append([]Option{WithAuthorizer(NewClientCredentials(cfg))}, opts...)
	}
	return NewClient(cfg.BaseURL, opts...)
}

// CheckHealth returns the health report of an API.
func (c *Client) CheckHealth(ctx context.Context, api string) (map[string]any, error) {
	var report map[string]any
	if err := c.do(ctx, http.MethodGet, api, "health", nil, nil, &report); err != nil {
		return nil, fmt.Errorf("health check of %s: %w", api, err)
	}
	return report, nil
}

// ListIDs returns a pager over every document ID of an API, batchSize IDs
// at a time.
func (c *Client) ListIDs(api string, batchSize int) *IDPager {
	return &IDPager{client: c, api: api, batchSize: max(batchSize, 1)}
}

// QueryDocuments fetches the documents with the given IDs.
func (c *Client) QueryDocuments(ctx context.Context, api string, ids []string) ([]*Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var resp documentsResponse
	if err := c.do(ctx, http.MethodPost, api, "documents", nil, &documentsRequest{IDs: ids}, &resp); err != nil {
		return nil, fmt.Errorf("querying %d documents of %s: %w", len(ids), api, err)
	}
	return resp.Documents, nil
}

// IDPager walks the document IDs of an API page by page.
type IDPager struct {
	client    *Client
	api       string
	batchSize int
	cursor    string
	done      bool
}

// Next returns the next page of IDs, or io.EOF once every ID was returned.
func (p *IDPager) Next(ctx context.Context) ([]string, error) {
	if p.done {
		return nil, io.EOF
	}

	query := url.Values{}
	query.Set("batch_size", strconv.Itoa(p.batchSize))
	if p.cursor != "" {
		query.Set("cursor", p.cursor)
	}

	var resp idsResponse
	if err := p.client.do(ctx, http.MethodGet, p.api, "ids", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing ids of %s: %w", p.api, err)
	}

	p.cursor = resp.NextCursor
	if p.cursor == "" {
		p.done = true
	}
	if len(resp.IDs) == 0 {
		p.done = true
		return nil, io.EOF
	}
	return resp.IDs, nil
}

// do sends one API request, retrying transport failures and 5xx responses.
// A 401 refreshes the token before the next attempt.
func (c *Client) do(ctx context.Context, method, api, endpoint string, query url.Values, body, out any) error {
	if api == "" {
		return ErrEmptyAPI
	}
	target := c.baseURL + "/" + url.PathEscape(api) + "/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	return RetryWithBackoff(ctx, c.logger, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.auth != nil {
			header, err := c.auth.Header(ctx)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", header)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized && c.auth != nil:
			if err := c.auth.Refresh(ctx); err != nil {
				return Permanent(err)
			}
			return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return Permanent(fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}, c.maxAttempts, c.baseDelay)
}
