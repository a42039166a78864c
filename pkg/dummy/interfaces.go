package dummy

import (
	"context"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
	"github.com/Adda-Baaj/dummy-feeds/pkg/httpclient"
)

// Services is the lookup contract consumed by the chat front-end.
// Failures collapse into empty results: an empty slice for posts and a
// zero-valued record for exchange rates.
type Services interface {
	GetDummyPosts(ctx context.Context, postTitle string) []domain.Post
	GetExchangeRate(ctx context.Context, pairCode string) domain.ExchangeRate
}

// Fetcher exposes the same lookups with the failure kind preserved.
type Fetcher interface {
	FetchPosts(ctx context.Context, postTitle string) ([]domain.Post, error)
	FetchRate(ctx context.Context, pairCode string) (domain.ExchangeRate, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within dummy.
type HTTPClient = httpclient.Client

// Logger defines the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
