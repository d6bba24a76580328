package stabilize_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pagemd/stabilize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitQuiet(t *testing.T) {
	t.Parallel()

	t.Run("resolves once the feed stays silent for the window", func(t *testing.T) {
		t.Parallel()

		last := time.Now()
		feed := stabilize.FeedFunc(func() (time.Time, error) {
			return last, nil
		})

		begin := time.Now()
		err := stabilize.WaitQuiet(context.Background(), feed, stabilize.QuietConfig{
			Window:  30 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err)
		assert.Less(t, time.Since(begin), 500*time.Millisecond)
	})

	t.Run("ceiling bounds a feed that never goes quiet", func(t *testing.T) {
		t.Parallel()

		feed := stabilize.FeedFunc(func() (time.Time, error) {
			return time.Now(), nil // Mutating forever.
		})

		begin := time.Now()
		err := stabilize.WaitQuiet(context.Background(), feed, stabilize.QuietConfig{
			Window:  20 * time.Millisecond,
			Ceiling: 60 * time.Millisecond,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err, "reaching the ceiling is not an error")
		assert.Less(t, time.Since(begin), time.Second)
	})

	t.Run("feed errors do not fail the wait", func(t *testing.T) {
		t.Parallel()

		feed := stabilize.FeedFunc(func() (time.Time, error) {
			return time.Time{}, assert.AnError
		})

		err := stabilize.WaitQuiet(context.Background(), feed, stabilize.QuietConfig{
			Window:  10 * time.Millisecond,
			Ceiling: 50 * time.Millisecond,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err)
	})

	t.Run("zero feed time counts silence from the start of the wait", func(t *testing.T) {
		t.Parallel()

		feed := stabilize.FeedFunc(func() (time.Time, error) {
			return time.Time{}, nil // Engine observed no mutations at all.
		})

		err := stabilize.WaitQuiet(context.Background(), feed, stabilize.QuietConfig{
			Window:  20 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err)
	})

	t.Run("returns the context error on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		feed := stabilize.FeedFunc(func() (time.Time, error) {
			return time.Now(), nil
		})

		err := stabilize.WaitQuiet(ctx, feed, stabilize.QuietConfig{
			Window:  10 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWaitIdle(t *testing.T) {
	t.Parallel()

	t.Run("resolves after the counter stays zero for the window", func(t *testing.T) {
		t.Parallel()

		counter := stabilize.CounterFunc(func() int { return 0 })

		err := stabilize.WaitIdle(context.Background(), counter, stabilize.IdleConfig{
			Window:  20 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err)
	})

	t.Run("non-zero readings restart the window", func(t *testing.T) {
		t.Parallel()

		var polls int32
		counter := stabilize.CounterFunc(func() int {
			// In flight for the first few polls, then drains.
			if atomic.AddInt32(&polls, 1) < 4 {
				return 2
			}
			return 0
		})

		begin := time.Now()
		err := stabilize.WaitIdle(context.Background(), counter, stabilize.IdleConfig{
			Window:  20 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(begin), 30*time.Millisecond)
	})

	t.Run("ceiling bounds a counter that never drains", func(t *testing.T) {
		t.Parallel()

		counter := stabilize.CounterFunc(func() int { return 1 })

		begin := time.Now()
		err := stabilize.WaitIdle(context.Background(), counter, stabilize.IdleConfig{
			Window:  20 * time.Millisecond,
			Ceiling: 60 * time.Millisecond,
			Poll:    5 * time.Millisecond,
		})

		require.NoError(t, err, "reaching the ceiling is not an error")
		assert.Less(t, time.Since(begin), time.Second)
	})

	t.Run("returns the context error on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		counter := stabilize.CounterFunc(func() int { return 1 })

		err := stabilize.WaitIdle(ctx, counter, stabilize.IdleConfig{
			Window:  10 * time.Millisecond,
			Ceiling: time.Second,
			Poll:    5 * time.Millisecond,
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
