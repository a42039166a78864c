package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis PUBLISH settings. The channel may contain {feed},
// which is replaced by the event's feed ID.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Channel  string `json:"channel" yaml:"channel"`
}

func (c *RedisConfig) normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.Channel = strings.TrimSpace(c.Channel)
}

func (c *RedisConfig) validate() error {
	if c.Addr == "" || c.Channel == "" {
		return errors.New("redis.addr and redis.channel are required")
	}
	if c.DB < 0 {
		return fmt.Errorf("redis.db %d is negative", c.DB)
	}
	return nil
}

// redisClient defines the subset of the go-redis client used by redisPublisher.
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

type redisPublisher struct {
	id      string
	channel string
	client  redisClient
	log     logger.Logger
}

func newRedisPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &redisPublisher{
		id:      cfg.ID,
		channel: cfg.Redis.Channel,
		client:  client,
		log:     log,
	}, nil
}

func (r *redisPublisher) ID() string   { return r.id }
func (r *redisPublisher) Type() string { return TypeRedis }

func (r *redisPublisher) channelFor(evt Event) string {
	return strings.ReplaceAll(r.channel, "{feed}", evt.FeedID)
}

// Publish sends the JSON-encoded event on the feed's channel.
func (r *redisPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	channel := r.channelFor(evt)
	receivers, err := r.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		r.log.ErrorObj("redis publisher send failed", "publisher_redis_error", map[string]any{
			"publisher_id": r.id,
			"channel":      channel,
			"error":        err.Error(),
		})
		return fmt.Errorf("publish to redis channel %s: %w", channel, err)
	}
	r.log.DebugObj("redis publisher delivered event", "publisher_redis_delivery", map[string]any{
		"publisher_id": r.id,
		"channel":      channel,
		"key":          evt.Key,
		"receivers":    receivers,
	})
	return nil
}

// Close releases the redis connection pool.
func (r *redisPublisher) Close() error {
	return r.client.Close()
}
