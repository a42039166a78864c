package feeds

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
	"github.com/cespare/xxhash/v2"
)

// fetcherRegistry implements FetcherRegistry keyed by feed kind.
type fetcherRegistry struct {
	fetchersByKind map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry for the provided fetchers keyed by their kind.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{fetchersByKind: make(map[string]Fetcher)}
	for _, f := range fetchers {
		reg.register(f)
	}
	return reg
}

func (r *fetcherRegistry) register(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.Kind()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByKind[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the feed's kind.
func (r *fetcherRegistry) FetcherFor(feed Feed) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(feed.ID) == "" {
		return nil, fmt.Errorf("feed id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByKind[strings.ToLower(strings.TrimSpace(feed.Kind))]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for feed %q (kind %q)", feed.ID, feed.Kind)
}

// DefaultFetcherRegistry wires the posts and exchange-rate fetchers over src.
func DefaultFetcherRegistry(src Source) FetcherRegistry {
	return NewFetcherRegistry(NewPostsFetcher(src), NewRateFetcher(src))
}

// postsFetcher yields one item per post matching the feed query.
type postsFetcher struct {
	src Source
}

func NewPostsFetcher(src Source) Fetcher { return &postsFetcher{src: src} }

func (f *postsFetcher) Kind() string { return KindPosts }

func (f *postsFetcher) Fetch(ctx context.Context, feed Feed) ([]Item, error) {
	if !strings.EqualFold(feed.Kind, KindPosts) {
		return nil, fmt.Errorf("posts fetcher received incompatible feed kind %q", feed.Kind)
	}

	posts, err := f.src.FetchPosts(ctx, feed.Query)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for feed %s: %w", feed.ID, err)
	}

	items := make([]Item, 0, len(posts))
	for i := range posts {
		p := posts[i]
		items = append(items, Item{Key: PostKey(feed.ID, p), Revision: PostRevision(p), Post: &p})
	}
	return items, nil
}

// rateFetcher yields a single item for the feed's currency pair.
type rateFetcher struct {
	src Source
}

func NewRateFetcher(src Source) Fetcher { return &rateFetcher{src: src} }

func (f *rateFetcher) Kind() string { return KindExchangeRate }

func (f *rateFetcher) Fetch(ctx context.Context, feed Feed) ([]Item, error) {
	if !strings.EqualFold(feed.Kind, KindExchangeRate) {
		return nil, fmt.Errorf("exchange rate fetcher received incompatible feed kind %q", feed.Kind)
	}

	rate, err := f.src.FetchRate(ctx, feed.Query)
	if err != nil {
		return nil, fmt.Errorf("fetch rate for feed %s: %w", feed.ID, err)
	}
	if result := domain.StringValue(rate.Result); result != "" && !strings.EqualFold(result, "success") {
		return nil, fmt.Errorf("feed %s: exchange rate api reported result %q", feed.ID, result)
	}

	return []Item{{Key: RateKey(feed.ID, feed.Query), Revision: RateRevision(rate), Rate: &rate}}, nil
}

// PostKey identifies a post within a feed.
func PostKey(feedID string, p domain.Post) string {
	return fmt.Sprintf("%s:post:%d", feedID, p.ID)
}

// PostRevision fingerprints the post content, so edits are relayed again.
func PostRevision(p domain.Post) string {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%d\x00%s\x00%s", p.UserID, p.Title, p.Body)
	return strconv.FormatUint(h.Sum64(), 16)
}

// RateKey identifies a currency pair within a feed.
func RateKey(feedID, pair string) string {
	return fmt.Sprintf("%s:rate:%s", feedID, strings.ToUpper(pair))
}

// RateRevision identifies one published update of a pair's rate.
func RateRevision(r domain.ExchangeRate) string {
	return strconv.FormatInt(r.LastUpdateUnix, 10) + "@" + strconv.FormatFloat(r.ConversionRate, 'g', -1, 64)
}
