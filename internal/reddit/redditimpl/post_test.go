package redditimpl

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/stretchr/testify/assert"
	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
)

func errorResponse(status int) error {
	return &goreddit.ErrorResponse{Response: &http.Response{StatusCode: status, Request: &http.Request{}}}
}

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})

	t.Run("not found is permanent", func(t *testing.T) {
		err := classify(errorResponse(http.StatusNotFound))

		var permanent *backoff.PermanentError
		assert.True(t, errors.As(err, &permanent))
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "reddit_404", apperrors.GetCode(err))
	})

	t.Run("throttling is retried", func(t *testing.T) {
		err := classify(errorResponse(http.StatusTooManyRequests))

		var permanent *backoff.PermanentError
		assert.False(t, errors.As(err, &permanent))
		assert.True(t, apperrors.IsServiceUnavailable(err))
		assert.Equal(t, "reddit_429", apperrors.GetCode(err))
	})

	t.Run("server error is retried", func(t *testing.T) {
		err := classify(errorResponse(http.StatusBadGateway))

		var permanent *backoff.PermanentError
		assert.False(t, errors.As(err, &permanent))
	})

	t.Run("forbidden is permanent", func(t *testing.T) {
		err := classify(errorResponse(http.StatusForbidden))

		var permanent *backoff.PermanentError
		assert.True(t, errors.As(err, &permanent))
		assert.False(t, apperrors.IsNotFound(err))
		assert.Equal(t, "reddit_403", apperrors.GetCode(err))
	})

	t.Run("transport errors are retried", func(t *testing.T) {
		err := classify(errors.New("connection reset"))

		var permanent *backoff.PermanentError
		assert.False(t, errors.As(err, &permanent))
	})
}

func TestToDomainPost(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := &goreddit.Post{
		ID:            "abc123",
		URL:           "https://i.redd.it/x.png",
		Permalink:     "/r/AskReddit/comments/abc123/what_is/",
		Title:         "Q&amp;A: what is &gt; what was?",
		SubredditName: "AskReddit",
		Score:         4200,
		NSFW:          true,
		Created:       &goreddit.Timestamp{Time: created},
	}

	post := toDomainPost(p)

	assert.Equal(t, "abc123", post.ID)
	assert.Equal(t, "https://www.reddit.com/r/AskReddit/comments/abc123/what_is/", post.Permalink)
	assert.Equal(t, "https://www.reddit.com/r/AskReddit/comments/abc123/what_is/", post.PageURL())
	assert.Equal(t, "Q&A: what is > what was?", post.Title)
	assert.Equal(t, 4200, post.Score)
	assert.True(t, post.NSFW)
	assert.Equal(t, created, post.CreatedAt)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "", absoluteURL(""))
	assert.Equal(t, "https://www.reddit.com/r/a/", absoluteURL("/r/a/"))
	assert.Equal(t, "https://old.reddit.com/r/a/", absoluteURL("https://old.reddit.com/r/a/"))
}

func TestToDomainComment_Unescapes(t *testing.T) {
	c := toDomainComment(&goreddit.Comment{ID: "k1", Body: "&gt; quote\n\nreply &amp; more", Author: "a"})

	assert.Equal(t, "> quote\n\nreply & more", c.Body)
}
