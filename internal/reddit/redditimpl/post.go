package redditimpl

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/retry"
	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
)

// Reddit caps a listing page at 100 items.
const maxListingLimit = 100

func (r *RedditImpl) TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]domain.Post, error) {
	if limit <= 0 || limit > maxListingLimit {
		limit = maxListingLimit
	}

	r.logger.Info("Fetching top posts", "subreddit", subreddit, "time_filter", timeFilter, "limit", limit)

	var posts []*goreddit.Post
	operation := func() error {
		if err := r.limiter.Wait(ctx, limiterKey); err != nil {
			return retry.Permanent(err)
		}
		var err error
		posts, _, err = r.client.Subreddit.TopPosts(ctx, subreddit, &goreddit.ListPostOptions{
			ListOptions: goreddit.ListOptions{Limit: limit},
			Time:        timeFilter,
		})
		return classify(err)
	}
	if err := retry.Do(ctx, r.logger, "TopPosts", operation, r.retry); err != nil {
		return nil, fmt.Errorf("failed to list top posts of r/%s: %w", subreddit, err)
	}

	result := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		result = append(result, toDomainPost(p))
	}

	r.logger.Info("Retrieved top posts", "subreddit", subreddit, "count", len(result))
	return result, nil
}

func (r *RedditImpl) Post(ctx context.Context, id string) (*domain.Post, error) {
	r.logger.Info("Fetching post", "post_id", id)

	var pc *goreddit.PostAndComments
	operation := func() error {
		if err := r.limiter.Wait(ctx, limiterKey); err != nil {
			return retry.Permanent(err)
		}
		var err error
		pc, _, err = r.client.Post.Get(ctx, id)
		return classify(err)
	}
	if err := retry.Do(ctx, r.logger, "GetPost", operation, r.retry); err != nil {
		return nil, fmt.Errorf("failed to get post %q: %w", id, err)
	}
	if pc == nil || pc.Post == nil {
		return nil, fmt.Errorf("post %q: %w", id, apperrors.ErrNotFound)
	}

	post := toDomainPost(pc.Post)
	post.Comments = make([]domain.Comment, 0, len(pc.Comments))
	for _, c := range pc.Comments {
		if c == nil {
			continue
		}
		post.Comments = append(post.Comments, toDomainComment(c))
	}

	r.logger.Info("Retrieved post", "post_id", id, "comments", len(post.Comments))
	return &post, nil
}

// classify decides which API failures are worth retrying: throttling, server
// errors and transport errors are; any other client error is final.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var errResp *goreddit.ErrorResponse
	if !errors.As(err, &errResp) || errResp.Response == nil {
		return err
	}

	status := errResp.Response.StatusCode
	code := fmt.Sprintf("reddit_%d", status)
	switch {
	case status == http.StatusNotFound:
		return retry.Permanent(apperrors.WrapWithCode(apperrors.ErrNotFound, code, err.Error()))
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return apperrors.WrapWithCode(apperrors.ErrServiceUnavailable, code, err.Error())
	default:
		return retry.Permanent(apperrors.WrapWithCode(err, code, "reddit request rejected"))
	}
}

// Titles and bodies arrive with &, < and > HTML-escaped; they are unescaped
// before anything parses them as markdown.
func toDomainPost(p *goreddit.Post) domain.Post {
	post := domain.Post{
		ID:        p.ID,
		URL:       p.URL,
		Permalink: absoluteURL(p.Permalink),
		Title:     html.UnescapeString(p.Title),
		Subreddit: p.SubredditName,
		Score:     p.Score,
		NSFW:      p.NSFW,
	}
	if p.Created != nil {
		post.CreatedAt = p.Created.Time
	}
	return post
}

func toDomainComment(c *goreddit.Comment) domain.Comment {
	return domain.Comment{
		ID:       c.ID,
		Body:     html.UnescapeString(c.Body),
		Author:   c.Author,
		Score:    c.Score,
		Stickied: c.Stickied,
	}
}
