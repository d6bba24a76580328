// Package http provides the HTTP implementation of pagemd.Fetcher:
// a plain GET with bounded retries and exponential backoff, used both
// as the first acquisition attempt and as the final fallback when
// rendering fails.
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagemd"
)

// DefaultFetchTimeout is the default timeout for a single HTTP attempt.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxAttempts is the default number of attempts per fetch.
const DefaultMaxAttempts = 3

// DefaultBackoffUnit is the base delay unit: attempt i (0-indexed)
// waits unit * 2^i before the next attempt.
const DefaultBackoffUnit = time.Second

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements pagemd.Fetcher at compile time.
var _ pagemd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using retried HTTP requests.
// It does not execute JavaScript and is suitable for static content.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxAttempts int
	backoffUnit time.Duration
	insecure    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a single HTTP attempt.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxAttempts sets the attempt budget per fetch.
// Defaults to DefaultMaxAttempts (3) if not specified.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		f.maxAttempts = n
	}
}

// WithBackoffUnit sets the base backoff unit. Tests use a zero or
// near-zero unit to avoid real sleeps.
func WithBackoffUnit(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoffUnit = d
	}
}

// WithInsecure controls TLS certificate verification on outbound
// requests. Passing true disables verification.
func WithInsecure(insecure bool) Option {
	return func(f *Fetcher) {
		f.insecure = insecure
	}
}

// NewFetcher creates a new retrying HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxAttempts: DefaultMaxAttempts,
		backoffUnit: DefaultBackoffUnit,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch performs a GET with bounded retries. Responses with status in
// [200,500) are accepted immediately: 2xx/3xx as StatusSuccess, 4xx as
// StatusClientError for caller inspection. A 5xx response or transport
// failure is retried with exponential backoff until the attempt budget
// runs out, at which point the last outcome is surfaced. For transport
// failures the returned error is non-nil and the outcome still records
// the attempts made.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagemd.FetchOutcome, error) {
	var lastErr error
	var lastBody string
	attempts := 0

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attempts++
		status, body, err := f.attempt(ctx, url)
		if err == nil && status < http.StatusInternalServerError {
			outcome := &pagemd.FetchOutcome{
				Class:    pagemd.StatusSuccess,
				Body:     body,
				Attempts: attempts,
			}
			if status >= http.StatusBadRequest {
				outcome.Class = pagemd.StatusClientError
			}
			return outcome, nil
		}
		lastErr = err
		lastBody = body

		if attempt >= f.maxAttempts-1 {
			break
		}

		// Exponential backoff: 2^attempt units before the next try.
		delay := f.backoffUnit << uint(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastErr != nil {
		return &pagemd.FetchOutcome{
			Class:    pagemd.StatusTransportError,
			Attempts: attempts,
		}, fmt.Errorf("fetching %s: %w", url, lastErr)
	}

	return &pagemd.FetchOutcome{
		Class:    pagemd.StatusServerError,
		Body:     lastBody,
		Attempts: attempts,
	}, nil
}

// attempt performs one GET. A non-nil error means a transport failure;
// otherwise the status and body are returned as-is.
func (f *Fetcher) attempt(ctx context.Context, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}

	return resp.StatusCode, string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
