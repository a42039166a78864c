package dummy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adda-Baaj/dummy-feeds/pkg/httpclient"
)

const (
	DefaultPostsURL        = "https://jsonplaceholder.typicode.com/posts"
	DefaultExchangeBaseURL = "https://v6.exchangerate-api.com/v6"

	endpointPosts = "posts"
	endpointRate  = "exchange_rate"
)

// Config holds the remote endpoints and the exchange-rate API key.
type Config struct {
	PostsURL        string
	ExchangeBaseURL string
	ExchangeAPIKey  string
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used to report collapsed failures.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics records upstream requests into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client implements Services and Fetcher over an injected HTTP transport.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	http            HTTPClient
	postsURL        string
	exchangeBaseURL string
	apiKey          string
	log             Logger
	metrics         *Metrics
}

var (
	_ Services = (*Client)(nil)
	_ Fetcher  = (*Client)(nil)
)

// DefaultHTTPClient returns the resty-backed transport used when none is injected.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15*time.Second, nil) }

// NewClient builds a Client. A nil transport falls back to DefaultHTTPClient.
func NewClient(cfg Config, transport HTTPClient, opts ...Option) *Client {
	if transport == nil {
		transport = DefaultHTTPClient()
	}
	c := &Client{
		http:            transport,
		postsURL:        strings.TrimSpace(cfg.PostsURL),
		exchangeBaseURL: strings.TrimRight(strings.TrimSpace(cfg.ExchangeBaseURL), "/"),
		apiKey:          strings.TrimSpace(cfg.ExchangeAPIKey),
		log:             noopLogger{},
	}
	if c.postsURL == "" {
		c.postsURL = DefaultPostsURL
	}
	if c.exchangeBaseURL == "" {
		c.exchangeBaseURL = DefaultExchangeBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues one GET and decodes a non-empty 2xx body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, out any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, url, out)
	c.metrics.observe(endpoint, err, time.Since(start))
	return err
}

func (c *Client) doGetJSON(ctx context.Context, url string, out any) error {
	resp, err := c.http.Get(ctx, url, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusMultipleChoices {
		return &StatusError{Code: code, Snippet: responseSnippet(body)}
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
