package app

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/reddit-videogen/internal/extractor"
	"github.com/orgball2608/reddit-videogen/internal/generator"
	"github.com/orgball2608/reddit-videogen/internal/generator/generatorimpl"
	"github.com/orgball2608/reddit-videogen/internal/ratelimit"
	"github.com/orgball2608/reddit-videogen/internal/reddit"
	"github.com/orgball2608/reddit-videogen/internal/reddit/redditimpl"
	"github.com/orgball2608/reddit-videogen/internal/screenshot"
	"github.com/orgball2608/reddit-videogen/internal/screenshot/screenshotimpl"
	"github.com/orgball2608/reddit-videogen/internal/selector"
	"github.com/orgball2608/reddit-videogen/internal/voiceover"
	"github.com/orgball2608/reddit-videogen/internal/voiceover/voiceoverimpl"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"go.uber.org/fx"
)

const limiterBurst = 5

// Module wires the generation pipeline. The *config.Config is supplied by the caller.
var Module = fx.Options(
	fx.Provide(
		logger.FxOption,
		clockwork.NewRealClock,
		selector.NewStdPrompt,
		newLimiter,
		newScreenshotClient,
	),
	fx.Provide(
		fx.Annotate(
			redditimpl.New,
			fx.As(new(reddit.Client)),
		), fx.Annotate(
			voiceoverimpl.New,
			fx.As(new(voiceover.Client)),
		), fx.Annotate(
			selector.New,
			fx.As(new(generator.PostSelector)),
		), fx.Annotate(
			extractor.New,
			fx.As(new(generator.ContentExtractor)),
		), fx.Annotate(
			generatorimpl.New,
			fx.As(new(generator.Client)),
		),
	),
)

func newLimiter(cfg *config.Config) ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(cfg.Reddit.RequestsPerMinute, time.Minute, limiterBurst)
}

// newScreenshotClient starts a browser only when screenshots are enabled.
func newScreenshotClient(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (screenshot.Client, error) {
	if cfg.Screenshot.Disabled {
		return screenshot.Skip{}, nil
	}

	pm, err := screenshotimpl.NewPlaywrightManager(lc, cfg, log)
	if err != nil {
		return nil, err
	}
	return screenshotimpl.New(screenshotimpl.Opts{
		Config:     cfg,
		Logger:     log,
		Playwright: pm,
	}), nil
}
