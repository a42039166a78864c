package publishers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
)

func writeConfig(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadConfigsNormalizesAndFiltersEnabled(t *testing.T) {
	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: HTTP
    enabled: true
    http:
      url: " https://example.com/2 "
      headers:
        x-token: " abc "
        empty: ""
  - id: chat-bus
    type: redis
    redis:
      addr: localhost:6379
      channel: dummy-events
`)

	cfgs, err := LoadConfigs(path)
	if err != nil {
		t.Fatalf("LoadConfigs: %v", err)
	}
	enabled := Enabled(cfgs)
	if len(enabled) != 2 || enabled[0].ID != "http2" || enabled[1].ID != "chat-bus" {
		t.Fatalf("expected http2 and chat-bus enabled, got %#v", enabled)
	}
	h := enabled[0].HTTP
	if enabled[0].Type != TypeHTTP || h.URL != "https://example.com/2" || h.Method != "POST" || h.TimeoutSeconds != 5 {
		t.Fatalf("unexpected normalized http config %#v", h)
	}
	if len(h.Headers) != 1 || h.Headers["X-Token"] != "abc" {
		t.Fatalf("unexpected headers %#v", h.Headers)
	}
}

func TestLoadConfigsJSON(t *testing.T) {
	path := writeConfig(t, "publishers.json", `{"publishers":[{"id":"q","type":"sqs","sqs":{"uri":"https://sqs/q.fifo","region":"eu-west-1"}}]}`)

	cfgs, err := LoadConfigs(path)
	if err != nil {
		t.Fatalf("LoadConfigs: %v", err)
	}
	if len(cfgs) != 1 || cfgs[0].SQS.Region != "eu-west-1" || !cfgs[0].EnabledValue() {
		t.Fatalf("unexpected configs %#v", cfgs)
	}
}

func TestLoadConfigsRejectsInvalidFiles(t *testing.T) {
	cases := map[string]string{
		"empty":       "publishers: []\n",
		"duplicate":   "publishers:\n  - {id: a, type: redis, redis: {addr: x, channel: c}}\n  - {id: a, type: redis, redis: {addr: y, channel: c}}\n",
		"wrong block": "publishers:\n  - {id: a, type: sqs, sns: {topic_arn: 'arn:x', region: r}}\n",
		"bad url":     "publishers:\n  - {id: a, type: http, http: {url: 'ftp://host/x'}}\n",
		"get method":  "publishers:\n  - {id: a, type: http, http: {url: 'https://host', method: get}}\n",
		"bad arn":     "publishers:\n  - {id: a, type: sns, sns: {topic_arn: topic, region: r}}\n",
		"kafka":       "publishers:\n  - {id: a, type: kafka}\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfigs(writeConfig(t, "p.yaml", raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := LoadConfigs(writeConfig(t, "p.yaml", "publishers: []\n"))
	if !errors.Is(err, ErrNoPublishers) {
		t.Fatalf("expected ErrNoPublishers, got %v", err)
	}
}

func TestPrepareRequiresMatchingBlock(t *testing.T) {
	for _, typ := range []string{TypeHTTP, TypeSQS, TypeSNS, TypeGCPPubSub, TypeRedis} {
		cfg := PublisherConfig{ID: "p", Type: typ}
		if err := cfg.prepare(); err == nil || !strings.Contains(err.Error(), typ) {
			t.Fatalf("expected missing block error for %s, got %v", typ, err)
		}
	}
}

func TestBuildWithSkipsDisabledAndClosesOnFailure(t *testing.T) {
	off := false
	built := &fakeRedisClient{}
	builders := map[string]Builder{
		"ok": func(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
			return &redisPublisher{id: cfg.ID, client: built, log: log}, nil
		},
		"broken": func(context.Context, PublisherConfig, logger.Logger) (Publisher, error) {
			return nil, errors.New("dial failed")
		},
	}

	fanout, err := BuildWith(context.Background(), builders, []PublisherConfig{
		{ID: "a", Type: "ok"},
		{ID: "b", Type: "broken", Enabled: &off},
	}, nil)
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	if fanout.Size() != 1 {
		t.Fatalf("expected disabled publisher skipped, size=%d", fanout.Size())
	}

	_, err = BuildWith(context.Background(), builders, []PublisherConfig{
		{ID: "a", Type: "ok"},
		{ID: "b", Type: "broken"},
	}, nil)
	if err == nil || !strings.Contains(err.Error(), `"b"`) {
		t.Fatalf("expected error naming failed publisher, got %v", err)
	}
	if !built.closed {
		t.Fatalf("expected already built publisher closed after failure")
	}

	if _, err := BuildWith(context.Background(), builders, []PublisherConfig{{ID: "b", Type: "broken", Enabled: &off}}, nil); !errors.Is(err, ErrNoPublishers) {
		t.Fatalf("expected ErrNoPublishers when nothing enabled, got %v", err)
	}
}

func TestBuildCreatesHTTPPublisher(t *testing.T) {
	cfg := PublisherConfig{ID: "hook", Type: TypeHTTP, HTTP: &HTTPConfig{URL: "https://example.com/hook"}}
	if err := cfg.prepare(); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fanout, err := Build(context.Background(), []PublisherConfig{cfg}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fanout.Size() != 1 {
		t.Fatalf("expected one publisher, got %d", fanout.Size())
	}
}
