package generatorimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/generator"
	"github.com/orgball2608/reddit-videogen/internal/library"
	"github.com/orgball2608/reddit-videogen/internal/screenshot"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Selector   generator.PostSelector
	Extractor  generator.ContentExtractor
	Screenshot screenshot.Client
	Config     *config.Config
	Logger     logger.Logger
}

type GeneratorImpl struct {
	selector   generator.PostSelector
	extractor  generator.ContentExtractor
	screenshot screenshot.Client
	outputDir  string
	logger     logger.Logger
}

var _ generator.Client = (*GeneratorImpl)(nil)

func New(opts Opts) *GeneratorImpl {
	return &GeneratorImpl{
		selector:   opts.Selector,
		extractor:  opts.Extractor,
		screenshot: opts.Screenshot,
		outputDir:  opts.Config.Output.VideoDir,
		logger:     opts.Logger.WithComponent("Generator"),
	}
}

// Generate converts one post into a script with audio and screenshots and
// stores its manifest in the output directory.
func (g *GeneratorImpl) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	post, err := g.selectPost(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to select post: %w", err)
	}
	g.logger.Info("Generating video", "post_id", post.ID, "title", post.Title, "comments", len(post.Comments))

	script, err := g.extractor.Extract(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	if err := g.screenshot.Capture(ctx, script.FileName, script); err != nil {
		return nil, fmt.Errorf("failed to capture screenshots: %w", err)
	}

	path, err := library.WriteManifest(ctx, g.outputDir, script)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Video script ready",
		"post_id", post.ID,
		"manifest", path,
		"scenes", len(script.Scenes),
		"duration", script.TotalDuration.String())

	return &generator.Result{ManifestPath: path, Script: script}, nil
}

func (g *GeneratorImpl) selectPost(ctx context.Context, req generator.Request) (*domain.Post, error) {
	if req.PostID != "" {
		return g.selector.SelectByID(ctx, req.PostID)
	}
	return g.selector.SelectTop(ctx, req.OptionCount)
}
