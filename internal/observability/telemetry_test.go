package observability

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/riskibarqy/matchday-feed/internal/config"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_AllDisabled(t *testing.T) {
	tel, err := Start(config.Config{
		ServiceName:    "matchday-feed-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}, logging.NewNop())
	require.NoError(t, err)

	assert.Empty(t, tel.PprofAddr())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNStaysOff(t *testing.T) {
	tel, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	require.NoError(t, err)
	assert.False(t, tel.tracing)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestStart_PprofServesIndex(t *testing.T) {
	tel, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	defer func() { _ = tel.Shutdown(context.Background()) }()

	resp, err := http.Get("http://" + tel.PprofAddr() + "/debug/pprof/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "goroutine")
}

func TestStart_PprofBusyPortFails(t *testing.T) {
	first, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	defer func() { _ = first.Shutdown(context.Background()) }()

	_, err = Start(config.Config{PprofEnabled: true, PprofAddr: first.PprofAddr()}, logging.NewNop())
	assert.Error(t, err)
}

func TestTelemetry_NilShutdown(t *testing.T) {
	var tel *Telemetry
	assert.NoError(t, tel.Shutdown(context.Background()))
}
