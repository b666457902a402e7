package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.New(logger.Opts{Level: "error"}), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	sentinel := errors.New("gone")
	calls := 0
	err := Do(context.Background(), logger.New(logger.Opts{Level: "error"}), "op", func() error {
		calls++
		return Permanent(sentinel)
	}, fastConfig())

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), logger.New(logger.Opts{Level: "error"}), "op", func() error {
		calls++
		return errors.New("still failing")
	}, fastConfig())

	assert.Error(t, err)
	assert.Equal(t, 4, calls)
}
