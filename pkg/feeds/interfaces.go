package feeds

import (
	"context"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
	"github.com/Adda-Baaj/dummy-feeds/pkg/dummy"
)

// Item is one relayable record produced by a feed fetch.
// Key names the record; Revision changes whenever its content does.
// Exactly one of Post and Rate is set.
type Item struct {
	Key      string
	Revision string
	Post     *domain.Post
	Rate     *domain.ExchangeRate
}

// Fetcher retrieves the items for feeds of one kind.
type Fetcher interface {
	Kind() string
	Fetch(ctx context.Context, feed Feed) ([]Item, error)
}

// FetcherRegistry resolves the fetcher implementation for a given feed.
type FetcherRegistry interface {
	FetcherFor(feed Feed) (Fetcher, error)
}

// Source aliases the explicit-outcome lookups the fetchers are built on.
type Source = dummy.Fetcher
