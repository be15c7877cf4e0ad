package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday-feed/internal/platform/id"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
	Logger  *logging.Logger
	// RequestIDs mints X-Request-ID values; nil uses random "req-" ids.
	RequestIDs id.Generator
}

// NewRouter mounts the feed and system routes behind tracing, request ids,
// access logging, CORS and panic recovery, outermost first.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("httpapi")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled, cfg.Metrics)
	registerFeedRoutes(mux, handler)

	return chain(mux,
		withTracing(cfg.ServiceName),
		withRequestID(cfg.RequestIDs),
		withAccessLog(logger),
		newCORSPolicy(cfg.CORSAllowedOrigins).middleware,
		withRecovery(logger),
	)
}
