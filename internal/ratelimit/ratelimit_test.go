package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLimiter_BurstThenBlock(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	require.NoError(t, l.Wait(context.Background(), "reddit"))
	require.NoError(t, l.Wait(context.Background(), "reddit"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "reddit"), "third request must wait past the deadline")
}

func TestInMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)

	require.NoError(t, l.Wait(context.Background(), "a"))
	require.NoError(t, l.Wait(context.Background(), "b"))
}

func TestInMemoryLimiter_Unlimited(t *testing.T) {
	l := NewInMemoryLimiter(0, time.Minute, 0)

	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background(), "x"))
	}
}
