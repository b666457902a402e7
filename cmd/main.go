package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/reddit-videogen/internal/app"
	"github.com/orgball2608/reddit-videogen/internal/generator"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const stopTimeout = 15 * time.Second

type options struct {
	configPath    string
	outputDir     string
	postID        string
	optionCount   int
	noScreenshots bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "reddit-videogen",
		Short:         "Turn a Reddit post into a narrated short video script",
		Long:          "Select a top post (or a given id), narrate its title and best comments, capture screenshots and write a manifest to the output directory.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "settings file (yaml, json, toml or env)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "output directory, overrides output.video_dir")
	flags.StringVar(&opts.postID, "id", "", "convert this post id instead of picking a top post")
	flags.IntVarP(&opts.optionCount, "options", "n", 0, "list this many top posts and choose one interactively")
	flags.BoolVar(&opts.noScreenshots, "no-screenshots", false, "skip browser screenshots")
	cmd.MarkFlagsMutuallyExclusive("id", "options")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	cfg, err := config.New(opts.configPath)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		cfg.Output.VideoDir = opts.outputDir
	}
	if opts.noScreenshots {
		cfg.Screenshot.Disabled = true
	}

	var (
		gen generator.Client
		log logger.Logger
	)
	fxApp := fx.New(
		fx.Logger(logger.New(logger.Opts{Env: cfg.App.Env, Level: cfg.App.LogLevel})),
		fx.Supply(cfg),
		app.Module,
		fx.Populate(&gen, &log),
	)

	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := fxApp.Stop(stopCtx); err != nil {
			log.Error("Failed to stop application", "error", err)
		}
	}()

	log = log.With("run_id", uuid.NewString())
	log.Info("Run started", "post_id", opts.postID, "options", opts.optionCount, "output", cfg.Output.VideoDir)

	res, err := gen.Generate(ctx, generator.Request{
		PostID:      opts.postID,
		OptionCount: opts.optionCount,
	})
	if err != nil {
		log.Error("Run failed", "error", err, "code", apperrors.GetCode(err))
		return err
	}

	log.Info("Run finished", "manifest", res.ManifestPath, "scenes", len(res.Script.Scenes))
	fmt.Fprintln(cmd.OutOrStdout(), res.ManifestPath)
	return nil
}
