package pagemd

import "context"

// StatusClass classifies the terminal result of a fetch.
type StatusClass string

// Status classes for FetchOutcome.
const (
	// StatusSuccess covers 2xx and 3xx responses.
	StatusSuccess StatusClass = "success"

	// StatusClientError covers 4xx responses. These are not retried and
	// not treated as errors; the caller inspects the outcome.
	StatusClientError StatusClass = "client_error"

	// StatusServerError covers 5xx responses after retries are exhausted.
	StatusServerError StatusClass = "server_error"

	// StatusTransportError covers connection and timeout failures after
	// retries are exhausted.
	StatusTransportError StatusClass = "transport_error"
)

// FetchOutcome is the immutable result of a retried fetch.
type FetchOutcome struct {
	// Class is the terminal status classification.
	Class StatusClass

	// Body is the response body. Empty for transport errors.
	Body string

	// Attempts is the number of HTTP attempts actually made.
	Attempts int
}

// OK reports whether the outcome carries a usable body. Client errors
// are accepted outcomes: the 4xx body is passed through for the caller
// to inspect. Only server and transport failures are not OK.
func (o *FetchOutcome) OK() bool {
	return o.Class == StatusSuccess || o.Class == StatusClientError
}

// Fetcher retrieves raw HTML over HTTP with bounded retries.
// Implementations do not execute JavaScript.
type Fetcher interface {
	// Fetch performs a GET against the URL. Responses with status in
	// [200,500) are accepted; 5xx and transport failures are retried
	// with exponential backoff. After the last attempt the outcome (or
	// error, for transport failures) is surfaced rather than retried.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchOutcome, error)

	// Close releases resources.
	Close() error
}

// Renderer retrieves HTML from URLs after executing page scripts and
// waiting for the document to stabilize (DOM quiescence and network
// idle). Each Render call owns exactly one live document session which
// is torn down before the call returns, on every exit path.
type Renderer interface {
	// Render navigates to the URL, simulates minimal user interaction
	// to surface lazy content, waits for the page to stop changing, and
	// returns the rendered HTML. Stabilization timeouts are not errors;
	// the document state at the ceiling is returned.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
