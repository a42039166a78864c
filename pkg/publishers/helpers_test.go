package publishers

import (
	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
)

func sampleEvent() Event {
	return Event{
		ID:       "evt-1",
		FeedID:   "feed-1",
		Kind:     "posts",
		Key:      "feed-1:post:1",
		Revision: "rev-1",
		Post:     &domain.Post{UserID: 1, ID: 1, Title: "Hello", Body: "x"},
	}
}
