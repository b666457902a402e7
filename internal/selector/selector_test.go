package selector

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/reddit-videogen/internal/domain"
	mock_reddit "github.com/orgball2608/reddit-videogen/internal/reddit/mocks"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	selector *Selector
	reddit   *mock_reddit.MockClient
	out      *bytes.Buffer
	dir      string
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock_reddit.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Output.VideoDir = t.TempDir()
	cfg.Reddit.Subreddit = "AskReddit"
	cfg.Reddit.TimeFilter = "day"

	out := &bytes.Buffer{}
	s := New(Opts{
		Reddit: client,
		Config: cfg,
		Logger: logger.New(logger.Opts{Level: "error"}),
		Clock:  clockwork.NewFakeClockAt(now),
		Prompt: &Prompt{In: strings.NewReader(input), Out: out},
	})

	return &fixture{selector: s, reddit: client, out: out, dir: cfg.Output.VideoDir}
}

func (f *fixture) converted(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		name := fmt.Sprintf("2024-03-01-%s.mp4", id)
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), nil, 0o644))
	}
}

func post(id string, score int, nsfw bool, hoursAgo float64) domain.Post {
	return domain.Post{
		ID:        id,
		Title:     "Post " + id,
		Score:     score,
		NSFW:      nsfw,
		CreatedAt: now.Add(-time.Duration(hoursAgo * float64(time.Hour))),
	}
}

func TestSelectTop_AutoSelectSkipsConvertedAndNSFW(t *testing.T) {
	f := newFixture(t, "")
	f.converted(t, "aaa")

	f.reddit.EXPECT().
		TopPosts(gomock.Any(), "AskReddit", "day", 3).
		Return([]domain.Post{post("aaa", 900, false, 5), post("bbb", 800, true, 4), post("ccc", 700, false, 3)}, nil)
	full := &domain.Post{ID: "ccc", Comments: []domain.Comment{{ID: "c1", Body: "hi"}}}
	f.reddit.EXPECT().Post(gomock.Any(), "ccc").Return(full, nil)

	got, err := f.selector.SelectTop(context.Background(), 0)
	require.NoError(t, err)

	assert.Same(t, full, got)
	assert.Empty(t, f.out.String(), "auto selection prints nothing")
}

func TestSelectTop_ManualSelection(t *testing.T) {
	f := newFixture(t, "1\n")

	f.reddit.EXPECT().
		TopPosts(gomock.Any(), "AskReddit", "day", 6).
		Return([]domain.Post{
			post("p0", 12345, false, 2),
			post("p1", 999, false, 10.5),
			post("p2", 5, false, 1),
		}, nil)
	f.reddit.EXPECT().Post(gomock.Any(), "p1").Return(&domain.Post{ID: "p1"}, nil)

	got, err := f.selector.SelectTop(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	want := "[0] Post p0     12,345    2.0 hours ago\n" +
		"[1] Post p1     999    10.5 hours ago\n" +
		"Input: "
	assert.Equal(t, want, f.out.String())
}

func TestSelectTop_InvalidSelection(t *testing.T) {
	for _, input := range []string{"7\n", "abc\n", "-1\n", ""} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			f := newFixture(t, input)
			f.reddit.EXPECT().
				TopPosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]domain.Post{post("p0", 1, false, 1), post("p1", 1, false, 1)}, nil)

			_, err := f.selector.SelectTop(context.Background(), 2)
			assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)
		})
	}
}

func TestSelectTop_NoCandidates(t *testing.T) {
	f := newFixture(t, "")
	f.converted(t, "aaa")

	f.reddit.EXPECT().
		TopPosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Post{post("aaa", 1, false, 1), post("bbb", 1, true, 1)}, nil)

	_, err := f.selector.SelectTop(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrNoCandidates)
}

func TestSelectTop_NegativeOptionCount(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.selector.SelectTop(context.Background(), -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSelectByID(t *testing.T) {
	f := newFixture(t, "")
	f.reddit.EXPECT().Post(gomock.Any(), "xyz").Return(&domain.Post{ID: "xyz"}, nil)

	got, err := f.selector.SelectByID(context.Background(), "t3_xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got.ID)
}

func TestSelectByID_NotFound(t *testing.T) {
	f := newFixture(t, "")
	f.reddit.EXPECT().
		Post(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("failed to get post: %w", apperrors.ErrNotFound))

	got, err := f.selector.SelectByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, got)
}

func TestSelectByID_AlreadyConverted(t *testing.T) {
	f := newFixture(t, "")
	f.converted(t, "done1")

	_, err := f.selector.SelectByID(context.Background(), "done1")
	assert.True(t, apperrors.IsAlreadyConverted(err))
}
