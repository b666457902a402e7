// Package script accumulates narrated comments into a video script bounded by
// word and duration limits.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/voiceover"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/formatter"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
)

type Limits struct {
	MaxWordsPerComment      int
	MinScenesForQuickFinish int
	MinDuration             time.Duration
	MaxDuration             time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxWordsPerComment:      100,
		MinScenesForQuickFinish: 4,
		MinDuration:             20 * time.Second,
		MaxDuration:             58 * time.Second,
	}
}

// LimitsFromConfig falls back to the defaults for unset values.
func LimitsFromConfig(cfg *config.Config) Limits {
	l := DefaultLimits()
	if v := cfg.Script.MaxWordsPerComment; v > 0 {
		l.MaxWordsPerComment = v
	}
	if v := cfg.Script.MinScenesForQuickFinish; v > 0 {
		l.MinScenesForQuickFinish = v
	}
	if v := cfg.Script.MinDuration; v > 0 {
		l.MinDuration = v
	}
	if v := cfg.Script.MaxDuration; v > 0 {
		l.MaxDuration = v
	}
	return l
}

type Builder struct {
	script *domain.Script
	voice  voiceover.Client
	limits Limits
	logger logger.Logger
}

// New starts a script for post and narrates its title. The title clip counts
// toward the running total but is never rejected for length.
func New(ctx context.Context, voice voiceover.Client, limits Limits, log logger.Logger, post *domain.Post, date time.Time) (*Builder, error) {
	b := &Builder{
		script: domain.NewScript(post, date),
		voice:  voice,
		limits: limits,
		logger: log.With("script", domain.ScriptFileName(date, post.ID)),
	}

	clip, err := voice.Create(ctx, b.clipName("title"), post.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to narrate title of post %s: %w", post.ID, err)
	}
	b.script.TitleAudio = clip
	b.script.TotalDuration += clip.Duration

	if b.script.TotalDuration > limits.MaxDuration {
		b.logger.Warn("Title narration alone exceeds the maximum duration",
			"duration", clip.Duration.String(), "max", limits.MaxDuration.String())
	}

	return b, nil
}

// TryAddComment narrates text and appends it as a scene. It returns false,
// leaving the script untouched, when the text is too long, synthesis fails,
// or the clip would push the total over the maximum duration.
func (b *Builder) TryAddComment(ctx context.Context, text, commentID string) bool {
	if words := formatter.WordCount(text); words > b.limits.MaxWordsPerComment {
		b.logger.Debug("Comment rejected: too many words", "comment_id", commentID, "words", words)
		return false
	}

	clip, err := b.voice.Create(ctx, b.clipName(commentID), text)
	if err != nil {
		b.logger.Debug("Comment rejected: voice-over failed", "comment_id", commentID, "error", err)
		return false
	}

	if b.script.TotalDuration+clip.Duration > b.limits.MaxDuration {
		b.logger.Debug("Comment rejected: over duration budget",
			"comment_id", commentID,
			"clip", clip.Duration.String(),
			"total", b.script.TotalDuration.String())
		if err := clip.Discard(); err != nil {
			b.logger.Warn("Failed to discard rejected clip", "error", err)
		}
		return false
	}

	b.script.Scenes = append(b.script.Scenes, &domain.Scene{
		Text:      text,
		CommentID: commentID,
		Audio:     clip,
	})
	b.script.TotalDuration += clip.Duration

	b.logger.Info("Scene added",
		"comment_id", commentID,
		"scenes", len(b.script.Scenes),
		"total", b.script.TotalDuration.String())
	return true
}

// CanBeFinished is the relaxed stop condition.
func (b *Builder) CanBeFinished() bool {
	return len(b.script.Scenes) > 0 && b.script.TotalDuration > b.limits.MinDuration
}

// CanQuickFinish is the preferred stop condition.
func (b *Builder) CanQuickFinish() bool {
	return len(b.script.Scenes) >= b.limits.MinScenesForQuickFinish && b.script.TotalDuration > b.limits.MinDuration
}

func (b *Builder) Script() *domain.Script {
	return b.script
}

func (b *Builder) clipName(name string) string {
	return fmt.Sprintf("%s-%s", b.script.FileName, name)
}
