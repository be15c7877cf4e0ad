package transfermarkt

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/normalize"
	"github.com/riskibarqy/matchday-feed/internal/platform/scrape"
)

const (
	DefaultURL   = "https://www.transfermarkt.com/statistik/neuestetransfers"
	DefaultLimit = 30

	minRowCells = 8
)

// Cell offsets of the latest-transfers table; the player cell nests its own
// table, so offsets count every descendant td.
const (
	cellPlayer      = 0
	cellPosition    = 3
	cellAge         = 4
	cellNationality = 5
	cellFromClub    = 6
	cellToClub      = 10
	cellFee         = 14
)

var (
	ageFormat   = regexp.MustCompile(`^\d{1,2}$`)
	repeatedEur = regexp.MustCompile(`€+`)
)

var rowMatchers = scrape.CSSList(
	".responsive-table table tbody tr",
	"table.items tbody tr",
	".tm-table tbody tr",
	"tbody tr",
)

type DocumentFetcher interface {
	Document(ctx context.Context, rawURL string) (*goquery.Document, error)
}

type Config struct {
	URL    string
	Limit  int
	Now    func() time.Time
	Logger *logging.Logger
}

type Client struct {
	fetcher DocumentFetcher
	url     string
	limit   int
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
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		fetcher: fetcher,
		url:     target,
		limit:   limit,
		now:     now,
		logger:  logger.Named("transfermarkt"),
	}
}

// FetchTransfers returns at most Limit transfers from the latest-transfers page.
func (c *Client) FetchTransfers(ctx context.Context) ([]transfer.Transfer, error) {
	doc, err := c.fetcher.Document(ctx, c.url)
	if err != nil {
		return nil, err
	}
	return c.Parse(ctx, doc), nil
}

func (c *Client) Parse(ctx context.Context, doc *goquery.Document) []transfer.Transfer {
	result := scrape.Resolve(doc.Selection, rowMatchers...)
	if !result.Found {
		c.logger.InfoContext(ctx, "no transfer rows found", "tables", doc.Find("table").Length())
		return []transfer.Transfer{}
	}

	discoveredAt := c.now().UTC()
	out := make([]transfer.Transfer, 0, c.limit)
	skipped := 0
	result.Each(func(_ int, row *goquery.Selection) {
		if len(out) >= c.limit {
			return
		}
		cells := scrape.DataCells(row)
		if len(cells) < minRowCells {
			skipped++
			return
		}
		player := normalize.FirstLine(scrape.CellText(cells, cellPlayer))
		if len([]rune(player)) < 2 {
			skipped++
			return
		}

		fee := CleanFee(scrape.CellText(cells, cellFee))
		t := transfer.Transfer{
			Player:       player,
			Age:          parseAge(scrape.CellText(cells, cellAge)),
			Nationality:  imageTitle(cells, cellNationality, normalize.Unknown),
			Position:     textOr(cells, cellPosition, normalize.Unknown),
			FromClub:     clubName(cells, cellFromClub),
			ToClub:       clubName(cells, cellToClub),
			Fee:          fee,
			Type:         transfer.TypeFromFee(fee),
			PlayerImage:  playerImage(cells[cellPlayer]),
			DiscoveredAt: discoveredAt,
		}
		out = append(out, t.WithID())
	})

	c.logger.DebugContext(ctx, "transfer rows parsed",
		"matcher", result.Matcher,
		"rows", result.Len(),
		"parsed", len(out),
		"skipped", skipped,
	)
	return out
}

// CleanFee collapses repeated euro signs and whitespace; empty is "Undisclosed".
func CleanFee(raw string) string {
	fee := repeatedEur.ReplaceAllString(raw, "€")
	fee = normalize.CollapseSpaces(fee)
	if fee == "" {
		return normalize.Undisclosed
	}
	return fee
}

func parseAge(raw string) string {
	raw = strings.TrimSpace(raw)
	if !ageFormat.MatchString(raw) {
		return normalize.Unknown
	}
	return raw
}

func textOr(cells []*goquery.Selection, i int, fallback string) string {
	if text := scrape.CellText(cells, i); text != "" {
		return text
	}
	return fallback
}

func imageTitle(cells []*goquery.Selection, i int, fallback string) string {
	if i >= len(cells) {
		return fallback
	}
	img := cells[i].Find("img").First()
	if title := strings.TrimSpace(img.AttrOr("title", "")); title != "" {
		return title
	}
	if alt := strings.TrimSpace(img.AttrOr("alt", "")); alt != "" {
		return alt
	}
	return fallback
}

// clubName prefers the crest label and falls back to the first text line.
func clubName(cells []*goquery.Selection, i int) string {
	if name := imageTitle(cells, i, ""); name != "" {
		return name
	}
	if line := normalize.FirstLine(scrape.CellText(cells, i)); line != "" {
		return line
	}
	return normalize.Unknown
}

func playerImage(cell *goquery.Selection) string {
	src := strings.TrimSpace(cell.Find("img").First().AttrOr("data-src", ""))
	if src == "" {
		return transfer.DefaultPlayerImage
	}
	if !strings.HasPrefix(src, "http") {
		return "https:" + src
	}
	return src
}
