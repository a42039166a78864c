package relay

import (
	"context"

	"github.com/Adda-Baaj/dummy-feeds/pkg/publishers"
)

// EventPublisher publishes relay events downstream.
// It returns how many sinks accepted the event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers the last revision relayed for each item key.
type Deduper interface {
	Revision(key string) (rev string, ok bool, err error)
	Record(key, rev string) error
}
