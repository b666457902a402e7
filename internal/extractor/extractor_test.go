package extractor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVoice struct {
	title    time.Duration
	comment  time.Duration
	byText   map[string]time.Duration
	calls    []string
	received []string
}

func (s *stubVoice) Create(_ context.Context, name, text string) (*domain.AudioClip, error) {
	s.calls = append(s.calls, name)
	s.received = append(s.received, text)
	if strings.HasSuffix(name, "-title") {
		return &domain.AudioClip{Duration: s.title}, nil
	}
	if d, ok := s.byText[text]; ok {
		return &domain.AudioClip{Duration: d}, nil
	}
	return &domain.AudioClip{Duration: s.comment}, nil
}

func newExtractor(voice *stubVoice) *Extractor {
	return New(Opts{
		Voice:  voice,
		Config: &config.Config{},
		Logger: logger.New(logger.Opts{Level: "error"}),
		Clock:  clockwork.NewFakeClockAt(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)),
	})
}

func postWith(comments ...domain.Comment) *domain.Post {
	return &domain.Post{ID: "p1", Title: "Title", Comments: comments}
}

func comments(n int) []domain.Comment {
	out := make([]domain.Comment, n)
	for i := range out {
		out[i] = domain.Comment{ID: fmt.Sprintf("c%d", i), Body: fmt.Sprintf("comment number %d", i)}
	}
	return out
}

func TestExtract_QuickFinishLeavesRestUnprocessed(t *testing.T) {
	voice := &stubVoice{comment: 6 * time.Second}

	s, err := newExtractor(voice).Extract(context.Background(), postWith(comments(10)...))
	require.NoError(t, err)

	assert.Len(t, s.Scenes, 4)
	assert.Equal(t, 24*time.Second, s.TotalDuration)
	assert.Equal(t, "2024-05-02-p1", s.FileName)
	assert.Len(t, voice.calls, 5, "title plus four comments")
	assert.Equal(t, "2024-05-02-p1-c3", voice.calls[4])
}

func TestExtract_RelaxedFinishAfterFailures(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 101))
	voice := &stubVoice{
		title:   2 * time.Second,
		comment: 10 * time.Second,
		byText:  map[string]time.Duration{"second": 15 * time.Second},
	}
	post := postWith(
		domain.Comment{ID: "a", Body: "first"},
		domain.Comment{ID: "b", Body: "second"},
		domain.Comment{ID: "c", Body: long},
		domain.Comment{ID: "d", Body: long},
		domain.Comment{ID: "e", Body: long},
		domain.Comment{ID: "f", Body: "never reached"},
	)

	s, err := newExtractor(voice).Extract(context.Background(), post)
	require.NoError(t, err)

	assert.Len(t, s.Scenes, 2)
	assert.Equal(t, 27*time.Second, s.TotalDuration)
	assert.NotContains(t, voice.received, "never reached")
}

func TestExtract_SkipsRemovedCommentsAndStripsMarkdown(t *testing.T) {
	voice := &stubVoice{comment: 30 * time.Second}
	post := postWith(
		domain.Comment{ID: "gone", Body: "[deleted]"},
		domain.Comment{ID: "mod", Body: "[removed]"},
		domain.Comment{ID: "ok", Body: "**Bold** and [a link](https://example.com)"},
	)

	s, err := newExtractor(voice).Extract(context.Background(), post)
	require.NoError(t, err)

	require.Len(t, s.Scenes, 1)
	assert.Equal(t, "ok", s.Scenes[0].CommentID)
	assert.Equal(t, "Bold and a link", s.Scenes[0].Text)
	assert.Len(t, voice.calls, 2)
}

func TestExtract_NotEnoughContent(t *testing.T) {
	voice := &stubVoice{comment: 3 * time.Second}

	s, err := newExtractor(voice).Extract(context.Background(), postWith(comments(2)...))
	assert.ErrorIs(t, err, apperrors.ErrNotEnoughContent)
	require.NotNil(t, s)
	assert.Len(t, s.Scenes, 2)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newExtractor(&stubVoice{comment: time.Second}).Extract(ctx, postWith(comments(3)...))
	assert.ErrorIs(t, err, context.Canceled)
}
