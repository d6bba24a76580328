// Package stabilize implements the waiting logic that decides when a
// dynamically-updating page has stopped changing. It is engine-agnostic:
// the document engine supplies a change feed (timestamps of DOM
// mutations) and an in-flight request counter, and this package applies
// quiet-window and idle-window logic against configurable ceilings.
//
// Both waits are best-effort. Reaching a ceiling is not an error; it
// means "stop waiting and use what you have".
package stabilize

import (
	"context"
	"time"
)

// Default windows and ceilings.
const (
	DefaultQuietWindow  = 500 * time.Millisecond
	DefaultQuietCeiling = 10 * time.Second
	DefaultQuietPoll    = 100 * time.Millisecond

	DefaultIdleWindow  = 2 * time.Second
	DefaultIdleCeiling = 30 * time.Second
	DefaultIdlePoll    = 200 * time.Millisecond
)

// Feed is a stream of change observations. Last reports when the most
// recent change was observed; the zero time means no change has been
// observed yet.
type Feed interface {
	Last() (time.Time, error)
}

// FeedFunc adapts a function to the Feed interface.
type FeedFunc func() (time.Time, error)

// Last implements Feed.
func (f FeedFunc) Last() (time.Time, error) {
	return f()
}

// Counter reports the number of in-flight requests.
type Counter interface {
	InFlight() int
}

// CounterFunc adapts a function to the Counter interface.
type CounterFunc func() int

// InFlight implements Counter.
func (f CounterFunc) InFlight() int {
	return f()
}

// QuietConfig configures WaitQuiet.
type QuietConfig struct {
	// Window is how long the feed must stay silent.
	Window time.Duration

	// Ceiling bounds the total wait. Pages that mutate forever resolve
	// here.
	Ceiling time.Duration

	// Poll is the feed sampling interval.
	Poll time.Duration
}

func (c QuietConfig) withDefaults() QuietConfig {
	if c.Window <= 0 {
		c.Window = DefaultQuietWindow
	}
	if c.Ceiling <= 0 {
		c.Ceiling = DefaultQuietCeiling
	}
	if c.Poll <= 0 {
		c.Poll = DefaultQuietPoll
	}
	return c
}

// WaitQuiet blocks until the feed has been silent for the quiet window
// or the ceiling elapses, whichever comes first. Reaching the ceiling is
// not an error. Feed read failures are treated as silence; the ceiling
// still bounds the wait. Returns an error only if the context ends.
func WaitQuiet(ctx context.Context, feed Feed, cfg QuietConfig) error {
	cfg = cfg.withDefaults()

	start := time.Now()
	deadline := start.Add(cfg.Ceiling)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !now.Before(deadline) {
				return nil
			}
			last, err := feed.Last()
			if err != nil {
				continue
			}
			if last.IsZero() {
				last = start
			}
			if now.Sub(last) >= cfg.Window {
				return nil
			}
		}
	}
}

// IdleConfig configures WaitIdle.
type IdleConfig struct {
	// Window is how long the counter must stay at zero continuously.
	Window time.Duration

	// Ceiling bounds the total wait.
	Ceiling time.Duration

	// Poll is the counter sampling interval.
	Poll time.Duration
}

func (c IdleConfig) withDefaults() IdleConfig {
	if c.Window <= 0 {
		c.Window = DefaultIdleWindow
	}
	if c.Ceiling <= 0 {
		c.Ceiling = DefaultIdleCeiling
	}
	if c.Poll <= 0 {
		c.Poll = DefaultIdlePoll
	}
	return c
}

// WaitIdle blocks until the counter has read zero continuously for the
// idle window or the ceiling elapses, whichever comes first. Any
// non-zero reading restarts the window. Reaching the ceiling is not an
// error. Returns an error only if the context ends.
func WaitIdle(ctx context.Context, counter Counter, cfg IdleConfig) error {
	cfg = cfg.withDefaults()

	start := time.Now()
	deadline := start.Add(cfg.Ceiling)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	var zeroSince time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if !now.Before(deadline) {
				return nil
			}
			if counter.InFlight() > 0 {
				zeroSince = time.Time{}
				continue
			}
			if zeroSince.IsZero() {
				zeroSince = now
				continue
			}
			if now.Sub(zeroSince) >= cfg.Window {
				return nil
			}
		}
	}
}
