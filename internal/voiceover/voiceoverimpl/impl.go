package voiceoverimpl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/orgball2608/reddit-videogen/internal/domain"
	"github.com/orgball2608/reddit-videogen/internal/voiceover"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	apperrors "github.com/orgball2608/reddit-videogen/pkg/errors"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"go.uber.org/fx"
)

// synthesizeFunc writes the narration of text as a WAV file at path.
type synthesizeFunc func(ctx context.Context, path, text string) error

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type VoiceOverImpl struct {
	dir        string
	logger     logger.Logger
	synthesize synthesizeFunc
}

func New(opts Opts) *VoiceOverImpl {
	engine := &engine{
		binary: opts.Config.VoiceOver.Engine,
		voice:  opts.Config.VoiceOver.Voice,
		speed:  opts.Config.VoiceOver.Speed,
	}

	return &VoiceOverImpl{
		dir:        opts.Config.Output.AudioDir,
		logger:     opts.Logger.WithComponent("VoiceOver"),
		synthesize: engine.run,
	}
}

var _ voiceover.Client = (*VoiceOverImpl)(nil)

func (v *VoiceOverImpl) Create(ctx context.Context, name, text string) (*domain.AudioClip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("voice-over %q: %w", name, apperrors.ErrEmptyText)
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("voice-over name %q: %w", name, apperrors.ErrInvalidInput)
	}

	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	path := filepath.Join(v.dir, name+".wav")
	if err := v.synthesize(ctx, path, text); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to synthesize voice-over %q: %w", name, err)
	}

	duration, err := Duration(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to measure voice-over %q: %w", name, err)
	}
	if duration <= 0 {
		_ = os.Remove(path)
		return nil, fmt.Errorf("voice-over %q has no audio", name)
	}

	v.logger.Debug("Voice-over created", "name", name, "duration", duration.String())
	return &domain.AudioClip{Path: path, Duration: duration}, nil
}

// engine drives an espeak-ng compatible command line synthesizer.
type engine struct {
	binary string
	voice  string
	speed  int
}

func (e *engine) run(ctx context.Context, path, text string) error {
	args := []string{"-w", path, "--stdin"}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	if e.speed > 0 {
		args = append(args, "-s", strconv.Itoa(e.speed))
	}

	cmd := exec.CommandContext(ctx, e.binary, args...) // #nosec G204
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", e.binary, err, msg)
		}
		return fmt.Errorf("%s: %w", e.binary, err)
	}
	return nil
}
