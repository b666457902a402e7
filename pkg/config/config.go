package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultPath = "config.yml"

type Config struct {
	App struct {
		Env       string `yaml:"env" env:"APP_ENV" env-default:"development"`
		LogLevel  string `yaml:"log_level" env:"APP_LOG_LEVEL" env-default:"info"`
		SentryUrl string `yaml:"sentry_url" env:"SENTRY_URL"`
	} `yaml:"app"`
	Reddit struct {
		ClientID          string `yaml:"client_id" env:"REDDIT_CLIENT_ID"`
		ClientSecret      string `yaml:"client_secret" env:"REDDIT_CLIENT_SECRET"`
		UserAgent         string `yaml:"user_agent" env:"REDDIT_USER_AGENT" env-default:"reddit-videogen/1.0"`
		Subreddit         string `yaml:"subreddit" env:"REDDIT_SUBREDDIT" env-default:"AskReddit"`
		TimeFilter        string `yaml:"time_filter" env:"REDDIT_TIME_FILTER" env-default:"day"`
		RequestsPerMinute int    `yaml:"requests_per_minute" env:"REDDIT_REQUESTS_PER_MINUTE" env-default:"60"`
	} `yaml:"reddit"`
	Output struct {
		VideoDir      string `yaml:"video_dir" env:"OUTPUT_VIDEO_DIR" env-default:"OutputVideos"`
		ScreenshotDir string `yaml:"screenshot_dir" env:"OUTPUT_SCREENSHOT_DIR" env-default:"Screenshots"`
		AudioDir      string `yaml:"audio_dir" env:"OUTPUT_AUDIO_DIR" env-default:"Voiceovers"`
	} `yaml:"output"`
	Script struct {
		MaxWordsPerComment      int           `yaml:"max_words_per_comment" env:"SCRIPT_MAX_WORDS_PER_COMMENT" env-default:"100"`
		MinScenesForQuickFinish int           `yaml:"min_scenes_for_quick_finish" env:"SCRIPT_MIN_SCENES" env-default:"4"`
		MinDuration             time.Duration `yaml:"min_duration" env:"SCRIPT_MIN_DURATION" env-default:"20s"`
		MaxDuration             time.Duration `yaml:"max_duration" env:"SCRIPT_MAX_DURATION" env-default:"58s"`
	} `yaml:"script"`
	VoiceOver struct {
		Engine string `yaml:"engine" env:"VOICEOVER_ENGINE" env-default:"espeak-ng"`
		Voice  string `yaml:"voice" env:"VOICEOVER_VOICE" env-default:"en-us"`
		Speed  int    `yaml:"speed" env:"VOICEOVER_SPEED" env-default:"175"`
	} `yaml:"voiceover"`
	Screenshot struct {
		Disabled          bool          `yaml:"disabled" env:"SCREENSHOT_DISABLED"`
		Width             int           `yaml:"width" env:"SCREENSHOT_WIDTH" env-default:"400"`
		Height            int           `yaml:"height" env:"SCREENSHOT_HEIGHT" env-default:"800"`
		Headless          bool          `yaml:"headless" env:"SCREENSHOT_HEADLESS" env-default:"false"`
		WaitTimeout       time.Duration `yaml:"wait_timeout" env:"SCREENSHOT_WAIT_TIMEOUT" env-default:"10s"`
		NavigationTimeout time.Duration `yaml:"navigation_timeout" env:"SCREENSHOT_NAVIGATION_TIMEOUT" env-default:"60s"`
	} `yaml:"screenshot"`
}

// New reads the settings file at path and applies environment overrides.
// A missing file is not an error: defaults and the environment are used instead.
func New(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, describe(cfg, fmt.Errorf("failed to read configuration %q: %w", path, err))
		}
	case errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, describe(cfg, fmt.Errorf("failed to read configuration from environment: %w", err))
		}
	default:
		return nil, fmt.Errorf("failed to stat configuration %q: %w", path, statErr)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reddit.Subreddit == "" {
		return errors.New("reddit.subreddit must be set")
	}
	if c.Script.MaxDuration <= c.Script.MinDuration {
		return fmt.Errorf("script.max_duration (%s) must be greater than script.min_duration (%s)",
			c.Script.MaxDuration, c.Script.MinDuration)
	}
	if c.Screenshot.Width <= 0 || c.Screenshot.Height <= 0 {
		return fmt.Errorf("invalid screenshot viewport %dx%d", c.Screenshot.Width, c.Screenshot.Height)
	}
	return nil
}

func describe(cfg *Config, err error) error {
	help, _ := cleanenv.GetDescription(cfg, nil)
	return fmt.Errorf("%w\n%s", err, help)
}
