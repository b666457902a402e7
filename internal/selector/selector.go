// Package selector picks the Reddit post a video is generated from.
package selector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/library"
	"github.com/orgball2608/reddit-videogen/internal/reddit"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/formatter"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

// oversample leaves room for posts dropped by filtering.
const oversample = 3

// Prompt is where candidates are listed and the operator's choice is read.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func NewStdPrompt() *Prompt {
	return &Prompt{In: os.Stdin, Out: os.Stdout}
}

type Opts struct {
	fx.In

	Reddit reddit.Client
	Config *config.Config
	Logger logger.Logger
	Clock  clockwork.Clock
	Prompt *Prompt
}

type Selector struct {
	reddit     reddit.Client
	logger     logger.Logger
	clock      clockwork.Clock
	prompt     *Prompt
	outputDir  string
	subreddit  string
	timeFilter string
}

func New(opts Opts) *Selector {
	return &Selector{
		reddit:     opts.Reddit,
		logger:     opts.Logger.WithComponent("PostSelector"),
		clock:      opts.Clock,
		prompt:     opts.Prompt,
		outputDir:  opts.Config.Output.VideoDir,
		subreddit:  opts.Config.Reddit.Subreddit,
		timeFilter: opts.Config.Reddit.TimeFilter,
	}
}

// SelectTop returns the best-ranked top post that has not been converted yet
// and is not NSFW. With optionCount > 0 the operator chooses among that many
// candidates instead.
func (s *Selector) SelectTop(ctx context.Context, optionCount int) (*domain.Post, error) {
	if optionCount < 0 {
		return nil, fmt.Errorf("option count %d: %w", optionCount, apperrors.ErrInvalidInput)
	}

	existing, err := library.ExistingPostIDs(s.outputDir)
	if err != nil {
		return nil, err
	}

	posts, err := s.reddit.TopPosts(ctx, s.subreddit, s.timeFilter, max(optionCount, 1)*oversample)
	if err != nil {
		return nil, err
	}

	candidates := lo.Filter(posts, func(p domain.Post, _ int) bool {
		_, converted := existing[p.ID]
		return !converted && !p.NSFW
	})
	s.logger.Info("Filtered top posts", "fetched", len(posts), "candidates", len(candidates))

	if len(candidates) == 0 {
		return nil, fmt.Errorf("r/%s: %w", s.subreddit, apperrors.ErrNoCandidates)
	}

	chosen := candidates[0]
	if optionCount > 0 {
		candidates = lo.Slice(candidates, 0, optionCount)
		s.printCandidates(candidates)

		index, err := s.readSelection(len(candidates))
		if err != nil {
			return nil, err
		}
		chosen = candidates[index]
	}

	s.logger.Info("Post selected", "post_id", chosen.ID, "title", chosen.Title)
	return s.reddit.Post(ctx, chosen.ID)
}

// SelectByID loads a specific post unless it has already been converted.
func (s *Selector) SelectByID(ctx context.Context, id string) (*domain.Post, error) {
	id = strings.TrimPrefix(strings.TrimSpace(id), "t3_")
	if id == "" {
		return nil, fmt.Errorf("empty post id: %w", apperrors.ErrInvalidInput)
	}

	existing, err := library.ExistingPostIDs(s.outputDir)
	if err != nil {
		return nil, err
	}
	if _, ok := existing[id]; ok {
		return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrAlreadyConverted)
	}

	post, err := s.reddit.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Selector) printCandidates(candidates []domain.Post) {
	now := s.clock.Now()
	for i, p := range candidates {
		fmt.Fprintf(s.prompt.Out, "[%d] %s     %s    %.1f hours ago\n",
			i, p.Title, formatter.FormatNumber(p.Score), p.HoursSincePosted(now))
	}
}

func (s *Selector) readSelection(count int) (int, error) {
	fmt.Fprint(s.prompt.Out, "Input: ")

	scanner := bufio.NewScanner(s.prompt.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("read selection: %w", err)
		}
		return 0, fmt.Errorf("no selection entered: %w", apperrors.ErrInvalidSelection)
	}

	line := strings.TrimSpace(scanner.Text())
	index, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", line, apperrors.ErrInvalidSelection)
	}
	if index < 0 || index >= count {
		return 0, fmt.Errorf("%d is out of range [0, %d): %w", index, count, apperrors.ErrInvalidSelection)
	}
	return index, nil
}
