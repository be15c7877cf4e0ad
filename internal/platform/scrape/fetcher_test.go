package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_ReturnsBodyAndSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{Timeout: time.Second, UserAgent: "matchday-test"})
	doc, err := f.Document(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "ok", doc.Find("p").Text())
	assert.Equal(t, "matchday-test", gotUA)
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
}

func TestFetcher_NonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{Timeout: time.Second})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrFetch))
	assert.False(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, http.StatusForbidden, StatusCode(err))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, srv.URL, fe.URL)
}

func TestFetcher_NetworkFailureHasReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewFetcher(FetcherConfig{Timeout: time.Second})
	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
	assert.NotEmpty(t, fe.Reason)
}

func TestFetcher_CircuitOpensAfterServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var opened atomic.Value
	f := NewFetcher(FetcherConfig{
		Timeout: time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
			OnStateChange: func(host string, _, to resilience.CircuitState) {
				if to == resilience.CircuitStateOpen {
					opened.Store(host)
				}
			},
		},
	})

	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	}

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.True(t, errors.Is(err, ErrFetch))
	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, strings.TrimPrefix(srv.URL, "http://"), opened.Load())
}

func TestFetcher_ClientErrorsDoNotTripCircuit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{
		Timeout:        time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute},
	})

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCircuitOpen))
	}
	assert.EqualValues(t, 3, hits.Load())
}
