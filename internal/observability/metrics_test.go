package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeMetrics_ObserveCycle(t *testing.T) {
	m := NewScrapeMetrics()

	m.ObserveCycle("leagues", "live", upsert.Result{Attempted: 20, Written: 19, Failed: 1}, 2*time.Second)
	m.ObserveCycle("leagues", "mock", upsert.Result{Attempted: 20, Written: 20}, time.Second)
	m.ObserveCycle("transfers", "live", upsert.Result{Attempted: 30, Written: 4}, 300*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("leagues", "live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues("leagues", "mock")))
	assert.Equal(t, 39.0, testutil.ToFloat64(m.rowsWritten.WithLabelValues("leagues")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowErrors.WithLabelValues("leagues")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rowsWritten.WithLabelValues("transfers")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestScrapeMetrics_Handler(t *testing.T) {
	m := NewScrapeMetrics()
	m.ObserveCycle("livescores", "mock", upsert.Result{Attempted: 12, Written: 12}, time.Second)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `matchday_scrape_cycles_total{domain="livescores",outcome="mock"} 1`)
	assert.Contains(t, string(body), "matchday_scrape_cycle_duration_seconds_bucket")
}

type fixedCacheStats struct{ hits, misses uint64 }

func (f fixedCacheStats) Stats() (uint64, uint64) { return f.hits, f.misses }

func TestScrapeMetrics_CircuitAndCache(t *testing.T) {
	m := NewScrapeMetrics()

	m.ObserveCircuit("www.transfermarkt.com", resilience.CircuitStateClosed, resilience.CircuitStateOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.circuitOpen.WithLabelValues("www.transfermarkt.com")))

	m.ObserveCircuit("www.transfermarkt.com", resilience.CircuitStateOpen, resilience.CircuitStateHalfOpen)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.circuitOpen.WithLabelValues("www.transfermarkt.com")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("www.transfermarkt.com", "open")))

	require.NoError(t, m.RegisterCache("standings", fixedCacheStats{hits: 9, misses: 3}))
	require.Error(t, m.RegisterCache("standings", fixedCacheStats{}))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `matchday_cache_hits_total{cache="standings"} 9`)
	assert.Contains(t, string(body), `matchday_cache_misses_total{cache="standings"} 3`)
}
