package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/pagemd"
	pagemdhttp "github.com/fwojciec/pagemd/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			_, _ = w.Write([]byte("<html>content</html>"))
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, pagemd.StatusSuccess, outcome.Class)
		assert.Equal(t, "<html>content</html>", outcome.Body)
		assert.Equal(t, 1, outcome.Attempts)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("retries 503 twice then succeeds with three attempts recorded", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&attempts, 1)
			if n <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("recovered"))
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, pagemd.StatusSuccess, outcome.Class)
		assert.Equal(t, "recovered", outcome.Body)
		assert.Equal(t, 3, outcome.Attempts)
	})

	t.Run("passes 4xx through without retrying", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("gone"))
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, pagemd.StatusClientError, outcome.Class)
		assert.Equal(t, "gone", outcome.Body)
		assert.Equal(t, 1, outcome.Attempts)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("makes at most maxAttempts attempts for persistent 5xx", func(t *testing.T) {
		t.Parallel()

		var attempts int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0), pagemdhttp.WithMaxAttempts(3))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, pagemd.StatusServerError, outcome.Class)
		assert.Equal(t, 3, outcome.Attempts)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("surfaces transport error with attempts after exhaustion", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // Connection refused from here on.

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, pagemd.StatusTransportError, outcome.Class)
		assert.Equal(t, 3, outcome.Attempts)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0))
		defer f.Close()

		_, err := f.Fetch(ctx, srv.URL)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("insecure mode accepts self-signed certificates", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>secure</html>"))
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0), pagemdhttp.WithInsecure(true))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, pagemd.StatusSuccess, outcome.Class)
		assert.Equal(t, "<html>secure</html>", outcome.Body)
	})

	t.Run("verification stays on when insecure is false", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>secure</html>"))
		}))
		defer srv.Close()

		f := pagemdhttp.NewFetcher(pagemdhttp.WithBackoffUnit(0), pagemdhttp.WithInsecure(false))
		defer f.Close()

		outcome, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, pagemd.StatusTransportError, outcome.Class)
	})
}
