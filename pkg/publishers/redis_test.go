package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/redis/go-redis/v9"
)

type fakeRedisClient struct {
	channel string
	message interface{}
	err     error
	closed  bool
}

func (f *fakeRedisClient) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func (f *fakeRedisClient) Close() error {
	f.closed = true
	return nil
}

func TestRedisPublisherPublishes(t *testing.T) {
	client := &fakeRedisClient{}
	pub := &redisPublisher{id: "r", channel: "dummy-events", client: client, log: &logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.channel != "dummy-events" {
		t.Fatalf("unexpected channel %q", client.channel)
	}
	payload, ok := client.message.([]byte)
	if !ok || !strings.Contains(string(payload), `"id":"evt-1"`) {
		t.Fatalf("unexpected payload %#v", client.message)
	}
}

func TestRedisPublisherPropagatesError(t *testing.T) {
	client := &fakeRedisClient{err: errors.New("connection refused")}
	pub := &redisPublisher{id: "r", channel: "c", client: client, log: &logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRedisPublisherExpandsFeedChannel(t *testing.T) {
	client := &fakeRedisClient{}
	pub := &redisPublisher{id: "r", channel: "dummy:{feed}", client: client, log: &logger.NopLogger{}}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.channel != "dummy:feed-1" {
		t.Fatalf("unexpected channel %q", client.channel)
	}
}

func TestFanoutCloseClosesRedisPublisher(t *testing.T) {
	client := &fakeRedisClient{}
	fanout := NewFanout([]Publisher{&redisPublisher{id: "r", client: client, log: &logger.NopLogger{}}})
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !client.closed {
		t.Fatalf("expected redis client to be closed")
	}
}
