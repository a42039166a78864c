package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/Adda-Baaj/dummy-feeds/pkg/dummy"
	"github.com/Adda-Baaj/dummy-feeds/pkg/feeds"
	"github.com/Adda-Baaj/dummy-feeds/pkg/publishers"
)

// Service runs relay passes: fetch each feed, drop already-relayed items, publish the rest.
type Service struct {
	registry  feeds.FetcherRegistry
	publisher EventPublisher
	deduper   Deduper
	log       logger.Logger
}

// NewService wires a relay with the feed fetcher registry and its sinks.
func NewService(reg feeds.FetcherRegistry, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		registry:  reg,
		publisher: pub,
		deduper:   deduper,
		log:       log,
	}
}

// Run executes a relay pass for all given feeds.
func (s *Service) Run(ctx context.Context, list []feeds.Feed) error {
	if s == nil || s.registry == nil {
		return fmt.Errorf("relay service is not initialized")
	}

	if len(list) == 0 {
		return fmt.Errorf("no feeds configured for relaying")
	}

	errs := s.runAll(ctx, list)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (s *Service) runAll(ctx context.Context, list []feeds.Feed) []error {
	errs := make([]error, 0, len(list))

	for _, feed := range list {
		if ctx.Err() != nil {
			break
		}
		if err := s.runFeed(ctx, feed); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("feed relay failed", "feed_error", map[string]any{
				"feed_id": feed.ID,
				"outcome": dummy.Outcome(err),
				"error":   err.Error(),
			})
		}
	}

	return errs
}

func (s *Service) runFeed(ctx context.Context, feed feeds.Feed) error {
	fetcher, err := s.registry.FetcherFor(feed)
	if err != nil {
		return fmt.Errorf("resolve fetcher for feed %s: %w", feed.ID, err)
	}

	items, err := fetcher.Fetch(ctx, feed)
	if err != nil {
		return fmt.Errorf("fetch feed %s: %w", feed.ID, err)
	}

	changed := s.filterChanged(feed, items)
	published, err := s.publishItems(ctx, feed, changed)

	s.log.InfoObj("feed relay completed", "feed_result", map[string]any{
		"feed_id":         feed.ID,
		"items_fetched":   len(items),
		"items_changed":   len(changed),
		"items_published": published,
	})
	return err
}

// pending is an item due for publishing; updated is set when an older
// revision of the same key was relayed before.
type pending struct {
	item    feeds.Item
	updated bool
}

// filterChanged keeps items whose revision differs from the last relayed one.
// Lookup errors keep the item.
func (s *Service) filterChanged(feed feeds.Feed, items []feeds.Item) []pending {
	out := make([]pending, 0, len(items))
	for _, item := range items {
		if s.deduper == nil {
			out = append(out, pending{item: item})
			continue
		}
		rev, ok, err := s.deduper.Revision(item.Key)
		if err != nil {
			s.log.WarnObj("revision lookup failed", "dedupe_error", map[string]any{
				"feed_id": feed.ID,
				"key":     item.Key,
				"error":   err.Error(),
			})
			out = append(out, pending{item: item})
			continue
		}
		if ok && rev == item.Revision {
			continue
		}
		out = append(out, pending{item: item, updated: ok})
	}
	return out
}

// publishItems fans out one event per item and records the revision of every
// item that reached at least one sink.
func (s *Service) publishItems(ctx context.Context, feed feeds.Feed, items []pending) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, p := range items {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		evt := publishers.NewEvent(feed, p.item)
		evt.Updated = p.updated
		delivered, err := s.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", p.item.Key, err))
		}
		if delivered == 0 {
			continue
		}
		published++

		if s.deduper != nil {
			if err := s.deduper.Record(p.item.Key, p.item.Revision); err != nil {
				s.log.WarnObj("revision record failed", "dedupe_error", map[string]any{
					"feed_id": feed.ID,
					"key":     p.item.Key,
					"error":   err.Error(),
				})
			}
		}
	}
	return published, errors.Join(errs...)
}
