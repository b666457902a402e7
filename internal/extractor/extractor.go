// Package extractor turns a post's top-level comments into a video script.
package extractor

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/script"
	"github.com/orgball2608/reddit-videogen/internal/voiceover"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/formatter"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"go.uber.org/fx"
)

// maxFailedAttempts is how many rejected comments are tolerated before the
// relaxed finish condition is accepted.
const maxFailedAttempts = 2

type Opts struct {
	fx.In

	Voice  voiceover.Client
	Config *config.Config
	Logger logger.Logger
	Clock  clockwork.Clock
}

type Extractor struct {
	voice  voiceover.Client
	limits script.Limits
	logger logger.Logger
	clock  clockwork.Clock
}

func New(opts Opts) *Extractor {
	return &Extractor{
		voice:  opts.Voice,
		limits: script.LimitsFromConfig(opts.Config),
		logger: opts.Logger.WithComponent("ContentExtractor"),
		clock:  opts.Clock,
	}
}

// Extract builds a script from post. When the comments run out before the
// script is long enough, the partial script is returned with ErrNotEnoughContent.
func (e *Extractor) Extract(ctx context.Context, post *domain.Post) (*domain.Script, error) {
	builder, err := script.New(ctx, e.voice, e.limits, e.logger, post, e.clock.Now())
	if err != nil {
		return nil, err
	}

	var (
		failed    int
		processed int
	)
	for _, comment := range post.Comments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if builder.CanQuickFinish() || (failed > maxFailedAttempts && builder.CanBeFinished()) {
			break
		}
		processed++

		if comment.Removed() {
			continue
		}

		text := formatter.StripMarkdown(comment.Body)
		if !builder.TryAddComment(ctx, text, comment.ID) {
			failed++
		}
	}

	s := builder.Script()
	e.logger.Info("Comments processed",
		"post_id", post.ID,
		"processed", processed,
		"remaining", len(post.Comments)-processed,
		"failed", failed,
		"scenes", len(s.Scenes),
		"duration", s.TotalDuration.String())

	if !builder.CanBeFinished() {
		return s, fmt.Errorf("post %s yielded %s over %d scenes: %w",
			post.ID, s.TotalDuration, len(s.Scenes), apperrors.ErrNotEnoughContent)
	}
	return s, nil
}
