package publishers

import (
	"strconv"
	"time"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
	"github.com/Adda-Baaj/dummy-feeds/pkg/feeds"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Event represents the payload published downstream.
type Event struct {
	ID          string               `json:"id"`
	FeedID      string               `json:"feed_id"`
	FeedName    string               `json:"feed_name"`
	Kind        string               `json:"kind"`
	Key         string               `json:"key"`
	Revision    string               `json:"revision"`
	Updated     bool                 `json:"updated"`
	Post        *domain.Post         `json:"post,omitempty"`
	Rate        *domain.ExchangeRate `json:"rate,omitempty"`
	CollectedAt time.Time            `json:"collected_at"`
}

// NewEvent constructs an Event for the given feed + item.
func NewEvent(feed feeds.Feed, item feeds.Item) Event {
	return Event{
		ID:          uuid.NewString(),
		FeedID:      feed.ID,
		FeedName:    feed.Name,
		Kind:        feed.Kind,
		Key:         item.Key,
		Revision:    item.Revision,
		Post:        item.Post,
		Rate:        item.Rate,
		CollectedAt: time.Now().UTC(),
	}
}

// dedupeID identifies the item revision, for sinks with exactly-once delivery windows.
func (e Event) dedupeID() string {
	return strconv.FormatUint(xxhash.Sum64String(e.Key+"@"+e.Revision), 16)
}

// attributes are the routing attributes attached by queue/topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"feed_id": e.FeedID,
		"kind":    e.Kind,
	}
}
