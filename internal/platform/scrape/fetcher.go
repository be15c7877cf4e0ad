package scrape

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

type FetcherConfig struct {
	Timeout        time.Duration
	UserAgent      string
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	// Client overrides the resty client, mostly for tests.
	Client *resty.Client
}

// Fetcher issues one GET per call. It never retries; a failure means
// "no live data this cycle" to the caller.
type Fetcher struct {
	client   *resty.Client
	breakers *resilience.BreakerGroup
	flight   resilience.Flight[[]byte]
	logger   *logging.Logger
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := cfg.Client
	if client == nil {
		client = resty.New()
	}
	client.
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeaders(browserHeaders).
		SetHeader("User-Agent", userAgent)

	logger = logger.Named("scrape.fetcher")
	breakerCfg := cfg.CircuitBreaker
	observe := breakerCfg.OnStateChange
	breakerCfg.OnStateChange = func(host string, from, to resilience.CircuitState) {
		logger.Warn("circuit state changed", "host", host, "from", from, "to", to)
		if observe != nil {
			observe(host, from, to)
		}
	}

	return &Fetcher{
		client:   client,
		breakers: resilience.NewBreakerGroup(breakerCfg),
		logger:   logger,
	}
}

// Fetch returns the body of a 2xx response, otherwise a *FetchError.
// Concurrent fetches of the same URL share one request.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, span := startSpan(ctx, "scrape.Fetch", attribute.String("http.url", rawURL))
	defer span.End()

	host := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}

	body, _, err := f.flight.Do(rawURL, func() ([]byte, error) {
		breaker := f.breakers.Get(host)
		if breaker == nil {
			return f.get(ctx, rawURL)
		}

		var body []byte
		runErr := breaker.Do(func() error {
			var getErr error
			body, getErr = f.get(ctx, rawURL)
			return getErr
		}, isCircuitFailure)
		if errors.Is(runErr, resilience.ErrCircuitOpen) {
			f.logger.WarnContext(ctx, "fetch rejected by circuit breaker", "host", host, "state", breaker.State())
			return nil, newCircuitOpenError(rawURL)
		}
		return body, runErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	return body, nil
}

// Document fetches rawURL and parses it as HTML.
func (f *Fetcher) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return ParseDocument(body)
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	started := time.Now()
	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		f.logger.WarnContext(ctx, "fetch failed", "url", rawURL, "error", err)
		return nil, newNetworkError(rawURL, err)
	}
	if !resp.IsSuccess() {
		f.logger.WarnContext(ctx, "fetch returned non-2xx status", "url", rawURL, "status", resp.StatusCode())
		return nil, newStatusError(rawURL, resp.StatusCode())
	}

	f.logger.DebugContext(ctx, "fetch ok",
		"url", rawURL,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"duration", time.Since(started),
	)
	return resp.Body(), nil
}

// ParseDocument parses raw markup. Malformed HTML is tolerated by the parser.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return doc, nil
}

// isCircuitFailure counts network faults, throttling and 5xx against the host.
func isCircuitFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	status := StatusCode(err)
	if status == 0 {
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
