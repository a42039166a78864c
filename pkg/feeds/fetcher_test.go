package feeds

import (
	"context"
	"errors"
	"testing"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
)

type fakeSource struct {
	posts []domain.Post
	rate  domain.ExchangeRate
	err   error
	query string
}

func (f *fakeSource) FetchPosts(_ context.Context, title string) ([]domain.Post, error) {
	f.query = title
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeSource) FetchRate(_ context.Context, pair string) (domain.ExchangeRate, error) {
	f.query = pair
	if f.err != nil {
		return domain.ExchangeRate{}, f.err
	}
	return f.rate, nil
}

func strPtr(s string) *string { return &s }

func TestDefaultFetcherRegistryResolvesByKind(t *testing.T) {
	reg := DefaultFetcherRegistry(&fakeSource{})

	f, err := reg.FetcherFor(Feed{ID: "p", Kind: "POSTS"})
	if err != nil || f.Kind() != KindPosts {
		t.Fatalf("expected posts fetcher, got %v %v", f, err)
	}
	f, err = reg.FetcherFor(Feed{ID: "r", Kind: KindExchangeRate})
	if err != nil || f.Kind() != KindExchangeRate {
		t.Fatalf("expected rate fetcher, got %v %v", f, err)
	}
	if _, err := reg.FetcherFor(Feed{ID: "w", Kind: "weather"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := reg.FetcherFor(Feed{Kind: KindPosts}); err == nil {
		t.Fatalf("expected error for empty feed id")
	}
}

func TestPostsFetcherBuildsKeyedItems(t *testing.T) {
	src := &fakeSource{posts: []domain.Post{{ID: 7, Title: "Hello"}, {ID: 9, Title: "hello again"}}}
	items, err := NewPostsFetcher(src).Fetch(context.Background(), Feed{ID: "hello", Kind: KindPosts, Query: "hello"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if src.query != "hello" {
		t.Fatalf("expected query to be passed as title filter, got %q", src.query)
	}
	if len(items) != 2 || items[0].Key != "hello:post:7" || items[1].Key != "hello:post:9" {
		t.Fatalf("unexpected items %#v", items)
	}
	if items[0].Post.ID != 7 || items[1].Post.ID != 9 {
		t.Fatalf("items must point at distinct posts")
	}
	if items[0].Revision == "" || items[0].Revision == items[1].Revision {
		t.Fatalf("expected distinct content revisions, got %q and %q", items[0].Revision, items[1].Revision)
	}
}

func TestPostRevisionTracksContent(t *testing.T) {
	p := domain.Post{UserID: 1, ID: 1, Title: "Hello", Body: "first"}
	edited := p
	edited.Body = "second"

	if PostRevision(p) != PostRevision(p) {
		t.Fatalf("revision must be stable")
	}
	if PostRevision(p) == PostRevision(edited) {
		t.Fatalf("editing the body must change the revision")
	}
	if PostKey("f", p) != PostKey("f", edited) {
		t.Fatalf("editing must not change the key")
	}
}

func TestPostsFetcherPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPostsFetcher(&fakeSource{err: boom}).Fetch(context.Background(), Feed{ID: "p", Kind: KindPosts})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestRateFetcherRevisionsOnLastUpdate(t *testing.T) {
	src := &fakeSource{rate: domain.ExchangeRate{Result: strPtr("success"), LastUpdateUnix: 1760832001, ConversionRate: 1.23}}
	items, err := NewRateFetcher(src).Fetch(context.Background(), Feed{ID: "usd-eur", Kind: KindExchangeRate, Query: "USD/EUR"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 || items[0].Key != "usd-eur:rate:USD/EUR" || items[0].Revision != "1760832001@1.23" {
		t.Fatalf("unexpected items %#v", items)
	}
	if items[0].Rate.ConversionRate != 1.23 {
		t.Fatalf("unexpected rate %+v", items[0].Rate)
	}
}

func TestRateFetcherRejectsErrorResult(t *testing.T) {
	src := &fakeSource{rate: domain.ExchangeRate{Result: strPtr("error")}}
	if _, err := NewRateFetcher(src).Fetch(context.Background(), Feed{ID: "r", Kind: KindExchangeRate, Query: "USD/XXX"}); err == nil {
		t.Fatalf("expected error for api error result")
	}
}

func TestFetchersRejectMismatchedKind(t *testing.T) {
	if _, err := NewPostsFetcher(&fakeSource{}).Fetch(context.Background(), Feed{ID: "r", Kind: KindExchangeRate}); err == nil {
		t.Fatalf("posts fetcher should reject rate feeds")
	}
	if _, err := NewRateFetcher(&fakeSource{}).Fetch(context.Background(), Feed{ID: "p", Kind: KindPosts}); err == nil {
		t.Fatalf("rate fetcher should reject posts feeds")
	}
}
