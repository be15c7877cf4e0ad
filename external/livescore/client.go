package livescore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/normalize"
	"github.com/riskibarqy/matchday-feed/internal/platform/scrape"
)

const (
	DefaultURL         = "https://www.livescore.com/en/"
	defaultCompetition = "Premier League"
)

var matchMatchers = scrape.CSSList(
	".match-row",
	"[data-testid='match-row']",
	".event__match",
	".match-item",
	".live-match",
	".fixture",
)

var (
	homeNameSelectors    = []string{".home-team-name", ".team-home", "[data-testid='home-team-name']", ".event__participant--home"}
	awayNameSelectors    = []string{".away-team-name", ".team-away", "[data-testid='away-team-name']", ".event__participant--away"}
	homeScoreSelectors   = []string{".home-score", ".score-home", "[data-testid='home-score']", ".event__score--home"}
	awayScoreSelectors   = []string{".away-score", ".score-away", "[data-testid='away-score']", ".event__score--away"}
	statusSelectors      = []string{".match-status", ".status", "[data-testid='match-status']", ".event__stage"}
	competitionSelectors = []string{".competition-name", ".league-name", "[data-testid='competition-name']"}
	matchTimeSelectors   = []string{".match-time", ".time", "[data-testid='match-time']"}
	homeLogoSelectors    = []string{".home-logo img", ".team-logo-home img"}
	awayLogoSelectors    = []string{".away-logo img", ".team-logo-away img"}
)

type DocumentFetcher interface {
	Document(ctx context.Context, rawURL string) (*goquery.Document, error)
}

type Config struct {
	URL    string
	Now    func() time.Time
	Logger *logging.Logger
}

type Client struct {
	fetcher DocumentFetcher
	norm    *normalize.Normalizer
	url     string
	now     func() time.Time
	logger  *logging.Logger
}

func NewClient(fetcher DocumentFetcher, cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		target = DefaultURL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		fetcher: fetcher,
		norm:    normalize.New(logger),
		url:     target,
		now:     now,
		logger:  logger.Named("livescore"),
	}
}

func (c *Client) FetchLiveScores(ctx context.Context) ([]livematch.Match, error) {
	doc, err := c.fetcher.Document(ctx, c.url)
	if err != nil {
		return nil, err
	}
	return c.Parse(ctx, doc), nil
}

func (c *Client) Parse(ctx context.Context, doc *goquery.Document) []livematch.Match {
	result := scrape.Resolve(doc.Selection, matchMatchers...)
	if !result.Found {
		c.logger.InfoContext(ctx, "no live match rows found")
		return []livematch.Match{}
	}

	now := c.now().UTC()
	out := make([]livematch.Match, 0, result.Len())
	result.Each(func(i int, sel *goquery.Selection) {
		home := scrape.TextField{Selectors: homeNameSelectors, Default: fmt.Sprintf("Team %d", i*2+1)}.Extract(sel)
		away := scrape.TextField{Selectors: awayNameSelectors, Default: fmt.Sprintf("Team %d", i*2+2)}.Extract(sel)

		m := livematch.Match{
			HomeTeam:    home,
			AwayTeam:    away,
			HomeScore:   c.norm.Int(scrape.FirstText(sel, homeScoreSelectors...)),
			AwayScore:   c.norm.Int(scrape.FirstText(sel, awayScoreSelectors...)),
			HomeLogo:    logo(sel, homeLogoSelectors),
			AwayLogo:    logo(sel, awayLogoSelectors),
			Status:      scrape.TextField{Selectors: statusSelectors, Default: livematch.StatusFullTime}.Extract(sel),
			Competition: scrape.TextField{Selectors: competitionSelectors, Default: defaultCompetition}.Extract(sel),
			MatchTime:   scrape.TextField{Selectors: matchTimeSelectors, Default: now.Format(time.RFC3339)}.Extract(sel),
			ScrapedAt:   now,
		}
		out = append(out, m.WithID())
	})

	c.logger.DebugContext(ctx, "live matches parsed", "matcher", result.Matcher, "matches", len(out))
	return out
}

// logo tries src then data-src, defaulting to the placeholder badge.
func logo(sel *goquery.Selection, selectors []string) string {
	src := scrape.FirstAttr(sel, "src", selectors...)
	if src == "" {
		src = scrape.FirstAttr(sel, "data-src", selectors...)
	}
	if src == "" {
		return livematch.DefaultLogo
	}
	if !strings.HasPrefix(src, "http") {
		return "https:" + src
	}
	return src
}
