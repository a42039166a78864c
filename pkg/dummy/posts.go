package dummy

import (
	"context"
	"strings"
	"unicode"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
)

// GetDummyPosts returns the posts whose title contains postTitle, ignoring case.
// Any failure yields an empty, non-nil slice.
func (c *Client) GetDummyPosts(ctx context.Context, postTitle string) []domain.Post {
	posts, err := c.FetchPosts(ctx, postTitle)
	if err != nil {
		c.log.WarnObj("dummy posts lookup failed; returning empty result", "dummy_posts_error", map[string]any{
			"url":     c.postsURL,
			"filter":  postTitle,
			"outcome": Outcome(err),
			"error":   err.Error(),
		})
		return []domain.Post{}
	}
	return posts
}

// FetchPosts downloads the posts collection and filters it by title.
// The returned slice is never nil when err is nil.
func (c *Client) FetchPosts(ctx context.Context, postTitle string) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.getJSON(ctx, endpointPosts, c.postsURL, &posts); err != nil {
		return nil, err
	}

	filtered := FilterByTitle(posts, postTitle)
	c.log.DebugObj("dummy posts fetched", "dummy_posts_result", map[string]any{
		"filter":   postTitle,
		"received": len(posts),
		"matched":  len(filtered),
	})
	return filtered, nil
}

// FilterByTitle keeps posts whose title contains filter case-insensitively,
// preserving their relative order. An empty filter keeps everything.
func FilterByTitle(posts []domain.Post, filter string) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	needle := upperOrdinal(filter)
	for _, p := range posts {
		if strings.Contains(upperOrdinal(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// upperOrdinal upper-cases s rune by rune. Dotless i and long s are left alone
// so they never fold onto ASCII I and S.
func upperOrdinal(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u0131', '\u017f':
			return r
		}
		return unicode.ToUpper(r)
	}, s)
}
