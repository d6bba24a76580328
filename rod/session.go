package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagemd/stabilize"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// mutationObserverJS stamps the time of the most recent DOM mutation on
// the window so the session's change feed can poll it. Installed before
// any page script runs.
const mutationObserverJS = `() => {
	window.__pagemdLastMutation = Date.now();
	const observer = new MutationObserver(() => {
		window.__pagemdLastMutation = Date.now();
	});
	const start = () => observer.observe(document.documentElement, {
		childList: true,
		subtree: true,
		attributes: true,
		characterData: true,
	});
	if (document.documentElement) {
		start();
	} else {
		document.addEventListener('DOMContentLoaded', start);
	}
}`

const scrollToBottomJS = `() => window.scrollTo(0, document.body.scrollHeight)`

// Selectors commonly carried by "load more" controls.
var loadMoreSelectors = []string{
	`button[class*="load-more"]`,
	`a[class*="load-more"]`,
	`button[class*="show-more"]`,
	`[data-testid*="load-more"]`,
	`button[class*="loadMore"]`,
}

// Session owns one live document: the page handle, the pending-request
// counter fed by CDP network events, and the mutation feed installed
// before navigation. A session is never shared across concurrent
// operations and must be closed on every exit path; Close detaches the
// event listeners and closes the page so no timers or listeners leak
// across pipeline invocations.
type Session struct {
	page    *rod.Page
	pending int64
	closed  atomic.Bool
}

// newSession attaches the request counter and mutation observer to a
// freshly created page. The page must not have navigated yet.
func newSession(page *rod.Page) (*Session, error) {
	s := &Session{page: page}

	if _, err := page.EvalOnNewDocument(mutationObserverJS); err != nil {
		return nil, err
	}

	wait := page.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) {
			atomic.AddInt64(&s.pending, 1)
		},
		func(e *proto.NetworkLoadingFinished) {
			atomic.AddInt64(&s.pending, -1)
		},
		func(e *proto.NetworkLoadingFailed) {
			atomic.AddInt64(&s.pending, -1)
		},
	)
	// The event loop ends when the page closes.
	go wait()

	return s, nil
}

// InFlight implements stabilize.Counter over the session's pending
// request counter. Completions can race ahead of dispatches during
// teardown, so negative readings clamp to zero.
func (s *Session) InFlight() int {
	n := atomic.LoadInt64(&s.pending)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Last implements stabilize.Feed by polling the mutation timestamp the
// injected observer maintains.
func (s *Session) Last() (time.Time, error) {
	obj, err := s.page.Eval(`() => window.__pagemdLastMutation || 0`)
	if err != nil {
		return time.Time{}, err
	}
	ms := obj.Value.Int()
	if ms == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(int64(ms)), nil
}

// Interact simulates minimal user activity to surface lazy content:
// a scroll to the bottom, then after a short delay one click on a
// "load more" control if any is present. Absence and click failures are
// ignored.
func (s *Session) Interact(ctx context.Context, clickDelay time.Duration) {
	if _, err := s.page.Eval(scrollToBottomJS); err != nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(clickDelay):
	}

	for _, sel := range loadMoreSelectors {
		els, err := s.page.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		_ = els.First().Click(proto.InputMouseButtonLeft, 1)
		return
	}
}

// Stabilize waits for DOM quiescence and then network idle, both
// best-effort. Reaching a ceiling is not an error.
func (s *Session) Stabilize(ctx context.Context, quiet stabilize.QuietConfig, idle stabilize.IdleConfig) error {
	if err := stabilize.WaitQuiet(ctx, s, quiet); err != nil {
		return err
	}
	return stabilize.WaitIdle(ctx, s, idle)
}

// HTML serializes the current document.
func (s *Session) HTML() (string, error) {
	return s.page.HTML()
}

// Close tears the session down. Safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.page.Close()
}
