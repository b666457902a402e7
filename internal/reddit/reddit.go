package reddit

import (
	"context"

	"github.com/orgball2608/reddit-videogen/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=reddit.go -destination=mocks/mock.go
type Client interface {
	// TopPosts lists the top submissions of a subreddit for a time filter
	// (hour, day, week, month, year, all). Comments are not loaded.
	TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]domain.Post, error)

	// Post loads one submission with its top-level comments.
	Post(ctx context.Context, id string) (*domain.Post, error)
}
