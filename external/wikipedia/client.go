package wikipedia

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/normalize"
	"github.com/riskibarqy/matchday-feed/internal/platform/scrape"
)

const (
	defaultBaseURL = "https://en.wikipedia.org/wiki/"
	minTableCells  = 10
)

var ErrUnsupportedLeague = errors.New("wikipedia: unsupported league")

var pageTitles = map[string]string{
	"premier-league": "Premier_League",
	"la-liga":        "La_Liga",
	"serie-a":        "Serie_A",
	"bundesliga":     "Bundesliga",
	"ligue-1":        "Ligue_1",
}

// Qualification markers and footnotes, e.g. "Arsenal (C)" or "Luton Town[a]".
var teamNameNoise = regexp.MustCompile(`\s*(\([A-Z, ]{1,5}\)|\[[^\]]*\])`)

type DocumentFetcher interface {
	Document(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// FormSynthesizer produces recent form when the table has no form column.
type FormSynthesizer interface {
	Form(position int) []string
}

type Config struct {
	BaseURL string
	// Season overrides the season label, e.g. "2025–26".
	Season string
	Now    func() time.Time
	Logger *logging.Logger
}

// Client scrapes league tables from Wikipedia season pages.
type Client struct {
	fetcher DocumentFetcher
	form    FormSynthesizer
	norm    *normalize.Normalizer
	baseURL string
	season  string
	now     func() time.Time
	logger  *logging.Logger
}

func NewClient(fetcher DocumentFetcher, form FormSynthesizer, cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		fetcher: fetcher,
		form:    form,
		norm:    normalize.New(logger),
		baseURL: baseURL,
		season:  strings.TrimSpace(cfg.Season),
		now:     now,
		logger:  logger.Named("wikipedia"),
	}
}

// PageURL returns the season page for leagueID.
func (c *Client) PageURL(leagueID string) (string, error) {
	title, ok := pageTitles[leagueID]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedLeague, "league %q", leagueID)
	}
	season := c.season
	if season == "" {
		season = SeasonLabel(c.now())
	}
	return c.baseURL + url.PathEscape(season+"_"+title), nil
}

// FetchStandings returns the parsed table. An empty result with a nil error
// means the page had no recognizable table rows.
func (c *Client) FetchStandings(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	pageURL, err := c.PageURL(leagueID)
	if err != nil {
		return nil, err
	}

	doc, err := c.fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.Parse(ctx, doc, leagueID), nil
}

// Parse extracts standings from a season page.
func (c *Client) Parse(ctx context.Context, doc *goquery.Document, leagueID string) []leaguestanding.Standing {
	result := scrape.Resolve(doc.Selection, tableMatchers...)
	if !result.Found {
		c.logger.InfoContext(ctx, "no league table rows found", "league_id", leagueID)
		return []leaguestanding.Standing{}
	}
	c.logger.DebugContext(ctx, "league table located", "league_id", leagueID, "matcher", result.Matcher, "rows", result.Len())

	formColumn := formColumnIndex(result.Selection.First().Closest("table"))
	scrapedAt := c.now().UTC()

	out := make([]leaguestanding.Standing, 0, result.Len())
	result.Each(func(_ int, row *goquery.Selection) {
		cells := scrape.Cells(row)
		if len(cells) < minTableCells {
			return
		}
		position, ok := normalize.ToIntOK(scrape.CellText(cells, 0))
		if !ok {
			return
		}

		name := CleanTeamName(scrape.CellText(cells, 1))
		if name == "" {
			return
		}
		goalsFor := scrape.CellInt(c.norm, cells, 6)
		goalsAgainst := scrape.CellInt(c.norm, cells, 7)

		var form []string
		if formColumn >= 0 {
			form = ParseFormLetters(scrape.CellText(cells, formColumn))
		}
		if len(form) == 0 && c.form != nil {
			form = c.form.Form(position)
		}

		out = append(out, leaguestanding.Standing{
			LeagueID:       leagueID,
			TeamName:       name,
			TeamLogo:       leaguestanding.LogoPlaceholder(name),
			Position:       position,
			Played:         scrape.CellInt(c.norm, cells, 2),
			Won:            scrape.CellInt(c.norm, cells, 3),
			Drawn:          scrape.CellInt(c.norm, cells, 4),
			Lost:           scrape.CellInt(c.norm, cells, 5),
			GoalsFor:       goalsFor,
			GoalsAgainst:   goalsAgainst,
			GoalDifference: goalsFor - goalsAgainst,
			Points:         scrape.CellInt(c.norm, cells, 9),
			Form:           form,
			ScrapedAt:      scrapedAt,
		})
	})
	return out
}

var tableMatchers = []scrape.Matcher{
	{
		Name: "table after #League_table heading",
		Find: func(root *goquery.Selection) *goquery.Selection {
			return root.Find("#League_table").Parent().NextAllFiltered("table").First().Find("tbody tr")
		},
	},
	{
		Name: "wikitable with Pts header",
		Find: func(root *goquery.Selection) *goquery.Selection {
			return root.Find("table.wikitable").FilterFunction(func(_ int, table *goquery.Selection) bool {
				return headerIndex(table, "Pts") >= 0
			}).First().Find("tbody tr")
		},
	},
}

// SeasonLabel names the season in progress at t; seasons start in August.
func SeasonLabel(t time.Time) string {
	start := t.Year()
	if t.Month() < time.August {
		start--
	}
	return fmt.Sprintf("%d–%02d", start, (start+1)%100)
}

func CleanTeamName(raw string) string {
	return normalize.CollapseSpaces(teamNameNoise.ReplaceAllString(raw, ""))
}

// ParseFormLetters keeps W/D/L symbols, most recent last, capped at five.
func ParseFormLetters(raw string) []string {
	out := make([]string, 0, 5)
	for _, r := range strings.ToUpper(raw) {
		switch string(r) {
		case leaguestanding.FormWin, leaguestanding.FormDraw, leaguestanding.FormLoss:
			out = append(out, string(r))
		}
	}
	if len(out) > 5 {
		out = out[len(out)-5:]
	}
	return out
}

func formColumnIndex(table *goquery.Selection) int {
	return headerIndex(table, "Form")
}

// headerIndex finds the column whose header cell starts with label.
func headerIndex(table *goquery.Selection, label string) int {
	if table == nil || table.Length() == 0 {
		return -1
	}
	index := -1
	table.Find("tr").First().Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
		if strings.HasPrefix(strings.TrimSpace(th.Text()), label) {
			index = i
			return false
		}
		return true
	})
	return index
}
