package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	DBURL              string
	DBAutoMigrate      bool
	CacheEnabled       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	MetricsEnabled     bool

	ScrapeTimeout               time.Duration
	ScrapeUserAgent             string
	ScrapeCircuitEnabled        bool
	ScrapeCircuitFailureCount   int
	ScrapeCircuitOpenTimeout    time.Duration
	ScrapeCircuitHalfOpenMaxReq int
	ScrapeLeagues               []string
	ScrapeWorkers               int
	ScheduleEnabled             bool
	ScheduleTransfers           string
	ScheduleLeagues             string
	ScheduleLiveScores          string
	ScheduleStartupDelay        time.Duration
	TransfersLimit              int
	PruneMaxAge                 time.Duration

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "matchday-feed-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "sqlite://matchday.db")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ScrapeUserAgent:    strings.TrimSpace(getEnv("SCRAPE_USER_AGENT", defaultUserAgent)),
		ScrapeLeagues:      splitCSV(getEnv("SCRAPE_LEAGUES", "premier-league,la-liga,serie-a,bundesliga,ligue-1")),
		ScheduleTransfers:  strings.TrimSpace(getEnv("SCHEDULE_TRANSFERS", "@every 60s")),
		ScheduleLeagues:    strings.TrimSpace(getEnv("SCHEDULE_LEAGUES", "@every 30m")),
		ScheduleLiveScores: strings.TrimSpace(getEnv("SCHEDULE_LIVE_SCORES", "@every 2m")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),

		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"DB_AUTO_MIGRATE", "true", &cfg.DBAutoMigrate},
		{"CACHE_ENABLED", "true", &cfg.CacheEnabled},
		{"SWAGGER_ENABLED", swaggerDefault, &cfg.SwaggerEnabled},
		{"METRICS_ENABLED", "true", &cfg.MetricsEnabled},
		{"SCRAPE_CIRCUIT_ENABLED", "true", &cfg.ScrapeCircuitEnabled},
		{"SCHEDULE_ENABLED", "true", &cfg.ScheduleEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
	}
	for _, b := range bools {
		v, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.dst = v
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "15s", &cfg.WriteTimeout},
		{"CACHE_TTL", "30s", &cfg.CacheTTL},
		{"SCRAPE_TIMEOUT", "20s", &cfg.ScrapeTimeout},
		{"SCRAPE_CIRCUIT_OPEN_TIMEOUT", "60s", &cfg.ScrapeCircuitOpenTimeout},
		{"PRUNE_MAX_AGE", "24h", &cfg.PruneMaxAge},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = v
	}

	// A zero startup delay runs the one-shot cycles immediately.
	cfg.ScheduleStartupDelay, err = time.ParseDuration(getEnv("SCHEDULE_STARTUP_DELAY", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_STARTUP_DELAY: %w", err)
	}
	if cfg.ScheduleStartupDelay < 0 {
		return Config{}, fmt.Errorf("SCHEDULE_STARTUP_DELAY must be >= 0")
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"SCRAPE_CIRCUIT_FAILURE_COUNT", 5, &cfg.ScrapeCircuitFailureCount},
		{"SCRAPE_CIRCUIT_HALF_OPEN_MAX_REQ", 1, &cfg.ScrapeCircuitHalfOpenMaxReq},
		{"SCRAPE_WORKERS", 4, &cfg.ScrapeWorkers},
		{"TRANSFERS_LIMIT", 50, &cfg.TransfersLimit},
	}
	for _, i := range ints {
		v, err := getEnvAsInt(i.key, i.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", i.key, err)
		}
		if v < 1 {
			return Config{}, fmt.Errorf("%s must be >= 1", i.key)
		}
		*i.dst = v
	}

	if cfg.TransfersLimit > 200 {
		return Config{}, fmt.Errorf("TRANSFERS_LIMIT must be <= 200")
	}
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if len(cfg.ScrapeLeagues) == 0 {
		return Config{}, fmt.Errorf("SCRAPE_LEAGUES cannot be empty")
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled {
		if cfg.PyroscopeServerAddress == "" {
			return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if cfg.PyroscopeAppName == "" {
			return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
