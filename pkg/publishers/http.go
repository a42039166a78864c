package publishers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/Adda-Baaj/dummy-feeds/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

const (
	httpDefaultMethod  = http.MethodPost
	httpDefaultTimeout = 5
	httpSnippetLimit   = 512
)

// HTTPConfig holds webhook sink settings.
type HTTPConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

func (c *HTTPConfig) normalize() {
	c.URL = strings.TrimSpace(c.URL)
	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if c.Method == "" {
		c.Method = httpDefaultMethod
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = httpDefaultTimeout
	}

	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			headers[http.CanonicalHeaderKey(k)] = v
		}
	}
	c.Headers = headers
}

func (c *HTTPConfig) validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("http.url %q must be an absolute http(s) URL", c.URL)
	}
	switch c.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return nil
	}
	return fmt.Errorf("http.method %s cannot carry an event body", c.Method)
}

type httpPublisher struct {
	id     string
	method string
	url    string
	client *resty.Client
	log    logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}
	client := httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second).
		SetHeaders(cfg.HTTP.Headers).
		SetHeader("Content-Type", "application/json")

	return &httpPublisher{
		id:     cfg.ID,
		method: cfg.HTTP.Method,
		url:    cfg.HTTP.URL,
		client: client,
		log:    log,
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

// Publish sends the event as a JSON body. X-Event-Action tells receivers
// whether the key is new or a changed revision.
func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	action := "created"
	if evt.Updated {
		action = "updated"
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("X-Event-Id", evt.ID).
		SetHeader("X-Event-Action", action).
		SetBody(evt).
		Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), bodySnippet(resp.Body()))
	}
	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"key":          evt.Key,
		"action":       action,
		"status":       resp.StatusCode(),
	})
	return nil
}

func bodySnippet(body []byte) string {
	if len(body) > httpSnippetLimit {
		body = body[:httpSnippetLimit]
	}
	return strings.TrimSpace(string(body))
}
