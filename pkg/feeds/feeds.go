package feeds

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/dummy-feeds/internal/configfile"
)

// Package feeds describes what the relay polls: post title filters and currency pairs.

const (
	KindPosts        = "posts"
	KindExchangeRate = "exchange_rate"
)

// Feed is a single entry declared in the feeds file.
type Feed struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Query   string `json:"query" yaml:"query"`
	Enabled *bool  `json:"enabled" yaml:"enabled"`
}

// EnabledValue returns enabled flag defaulting to true.
func (f Feed) EnabledValue() bool {
	if f.Enabled == nil {
		return true
	}
	return *f.Enabled
}

type fileRegistry struct {
	Feeds []Feed `json:"feeds" yaml:"feeds"`
}

// Registry holds the feeds loaded from a config file, in file order.
type Registry struct {
	feeds []Feed
}

// LoadRegistry loads the feeds registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	var parsed fileRegistry
	if err := configfile.Load(path, &parsed); err != nil {
		return nil, fmt.Errorf("load feeds file: %w", err)
	}
	if len(parsed.Feeds) == 0 {
		return nil, errors.New("feeds file contains no feeds entries")
	}
	return NewRegistry(parsed.Feeds)
}

// NewRegistry normalizes and validates feeds. Feed ids must be unique.
func NewRegistry(feeds []Feed) (*Registry, error) {
	reg := &Registry{feeds: make([]Feed, 0, len(feeds))}
	ids := make(map[string]struct{}, len(feeds))
	for i := range feeds {
		f := sanitizeFeed(feeds[i])
		if err := validateFeed(f); err != nil {
			return nil, fmt.Errorf("feeds[%d]: %w", i, err)
		}
		if _, dup := ids[f.ID]; dup {
			return nil, fmt.Errorf("duplicate feed id %q", f.ID)
		}
		ids[f.ID] = struct{}{}
		reg.feeds = append(reg.feeds, f)
	}
	return reg, nil
}

func sanitizeFeed(f Feed) Feed {
	f.ID = strings.TrimSpace(f.ID)
	f.Name = strings.TrimSpace(f.Name)
	f.Kind = strings.ToLower(strings.TrimSpace(f.Kind))
	if f.Kind == KindExchangeRate {
		f.Query = strings.ToUpper(strings.TrimSpace(f.Query))
	}
	if f.Name == "" {
		f.Name = f.ID
	}
	if f.Enabled == nil {
		def := true
		f.Enabled = &def
	}
	return f
}

func validateFeed(f Feed) error {
	if f.ID == "" {
		return errors.New("id is required")
	}
	switch f.Kind {
	case KindPosts:
		// An empty query relays every post.
	case KindExchangeRate:
		if f.Query == "" {
			return fmt.Errorf("query (currency pair) is required for feed %q", f.ID)
		}
	case "":
		return fmt.Errorf("kind is required for feed %q", f.ID)
	default:
		return fmt.Errorf("unsupported kind %q for feed %q", f.Kind, f.ID)
	}
	return nil
}

// All returns every configured feed.
func (r *Registry) All() []Feed {
	if r == nil {
		return nil
	}
	out := make([]Feed, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// Enabled returns feeds that are enabled.
func (r *Registry) Enabled() []Feed {
	all := r.All()
	out := make([]Feed, 0, len(all))
	for _, f := range all {
		if f.EnabledValue() {
			out = append(out, f)
		}
	}
	return out
}
