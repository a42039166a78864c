package publishers

import (
	"context"
	"fmt"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
)

// Builder creates a Publisher from a prepared config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error)

func defaultBuilders() map[string]Builder {
	return map[string]Builder{
		TypeHTTP:      newHTTPPublisher,
		TypeSQS:       newSQSPublisher,
		TypeSNS:       newSNSPublisher,
		TypeGCPPubSub: newGCPPubSubPublisher,
		TypeRedis:     newRedisPublisher,
	}
}

// Build instantiates the enabled entries of cfgs with the built-in sinks.
func Build(ctx context.Context, cfgs []PublisherConfig, log logger.Logger) (*Fanout, error) {
	return BuildWith(ctx, defaultBuilders(), cfgs, log)
}

// BuildWith instantiates the enabled entries of cfgs using builders keyed by type.
// Publishers already built are closed when a later one fails.
func BuildWith(ctx context.Context, builders map[string]Builder, cfgs []PublisherConfig, log logger.Logger) (*Fanout, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}
	enabled := Enabled(cfgs)
	if len(enabled) == 0 {
		return nil, ErrNoPublishers
	}

	pubs := make([]Publisher, 0, len(enabled))
	for _, cfg := range enabled {
		build, ok := builders[cfg.Type]
		if !ok {
			_ = closePublishers(pubs)
			return nil, fmt.Errorf("publisher %q: no builder for type %q", cfg.ID, cfg.Type)
		}
		pub, err := build(ctx, cfg, log)
		if err != nil {
			_ = closePublishers(pubs)
			return nil, fmt.Errorf("publisher %q: %w", cfg.ID, err)
		}
		pubs = append(pubs, pub)
		log.InfoObj("publisher ready", "publisher", map[string]any{"id": cfg.ID, "type": cfg.Type})
	}
	return NewFanout(pubs), nil
}
