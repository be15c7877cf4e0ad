package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/matchday-feed/internal/config"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry owns the process-level exporters: Uptrace tracing, Pyroscope
// profiling and the pprof side listener. Each part is optional.
type Telemetry struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start enables whatever cfg turns on. On error everything already started
// is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}

	t.startTracing(cfg)
	if err := t.startProfiling(cfg); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	if err := t.startPprof(cfg); err != nil {
		_ = t.Shutdown(context.Background())
		return nil, err
	}
	return t, nil
}

// PprofAddr is the bound pprof address, or "" when pprof is off.
func (t *Telemetry) PprofAddr() string {
	if t == nil || t.pprof == nil {
		return ""
	}
	return t.pprof.Addr
}

// Shutdown stops pprof, then the profiler, then flushes traces.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.pprof != nil {
		if err := t.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof: %w", err))
		}
		t.pprof = nil
	}
	if t.profiler != nil {
		if err := t.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		t.profiler = nil
	}
	if t.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
		t.tracing = false
	}
	return errors.Join(errs...)
}

func (t *Telemetry) startTracing(cfg config.Config) {
	switch {
	case !cfg.UptraceEnabled:
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		t.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	t.tracing = true
	t.logger.Info("uptrace enabled", "service_version", cfg.ServiceVersion)
}

func (t *Telemetry) startProfiling(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		// Scrape cycles are I/O bound; goroutine and block profiles show stalls.
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	t.profiler = profiler
	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress)
	return nil
}

// startPprof binds synchronously so a busy port fails startup instead of
// being logged from a goroutine.
func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return fmt.Errorf("listen pprof on %s: %w", cfg.PprofAddr, err)
	}
	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	t.pprof = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof server failed", "error", err)
		}
	}()
	t.logger.Info("pprof listening", "addr", srv.Addr)
	return nil
}
