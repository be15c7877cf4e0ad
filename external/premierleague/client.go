package premierleague

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/normalize"
	"github.com/riskibarqy/matchday-feed/internal/platform/scrape"
)

const defaultBaseURL = "https://www.premierleague.com"

var (
	ErrUnknownClub = errors.New("premierleague: no overview page for club")
	ErrNoProfile   = errors.New("premierleague: overview page has no club profile")
)

// Overview paths keyed by team slug.
var clubPaths = map[string]string{
	"manchester-city":   "/clubs/11/Manchester-City/overview",
	"arsenal":           "/clubs/1/Arsenal/overview",
	"liverpool":         "/clubs/10/Liverpool/overview",
	"chelsea":           "/clubs/4/Chelsea/overview",
	"manchester-united": "/clubs/12/Manchester-United/overview",
	"tottenham":         "/clubs/21/Tottenham-Hotspur/overview",
	"newcastle":         "/clubs/23/Newcastle-United/overview",
	"brighton":          "/clubs/131/Brighton-and-Hove-Albion/overview",
	"aston-villa":       "/clubs/2/Aston-Villa/overview",
	"bournemouth":       "/clubs/127/Bournemouth/overview",
	"fulham":            "/clubs/34/Fulham/overview",
	"wolves":            "/clubs/38/Wolverhampton-Wanderers/overview",
	"west-ham":          "/clubs/25/West-Ham-United/overview",
	"crystal-palace":    "/clubs/6/Crystal-Palace/overview",
	"everton":           "/clubs/7/Everton/overview",
	"brentford":         "/clubs/130/Brentford/overview",
	"nottingham-forest": "/clubs/15/Nottingham-Forest/overview",
	"luton":             "/clubs/163/Luton-Town/overview",
	"burnley":           "/clubs/43/Burnley/overview",
	"sheffield-united":  "/clubs/18/Sheffield-United/overview",
}

var (
	nameField     = scrape.TextField{Selectors: []string{".club-header__team-name", "[data-testid='club-name']", "h1.team-name", "h1"}}
	stadiumField  = scrape.TextField{Selectors: []string{".club-profile-bio__metadata-item--stadium .club-profile-bio__metadata-value", "[data-testid='stadium']", ".stadium-name", ".stadium"}}
	capacityField = scrape.TextField{Selectors: []string{".club-profile-bio__metadata-item--capacity .club-profile-bio__metadata-value", "[data-testid='capacity']", ".capacity"}}
	managerField  = scrape.TextField{Selectors: []string{".club-profile-bio__metadata-item--manager .club-profile-bio__metadata-value", "[data-testid='manager']", ".manager-name", ".manager"}}
	foundedField  = scrape.TextField{Selectors: []string{".club-profile-bio__metadata-item--founded .club-profile-bio__metadata-value", "[data-testid='founded']", ".founded"}}
	badgeSelector = []string{".club-header__badge img", ".badge img", "img.club-badge"}
)

type DocumentFetcher interface {
	Document(ctx context.Context, rawURL string) (*goquery.Document, error)
}

type Config struct {
	BaseURL string
	Now     func() time.Time
	Logger  *logging.Logger
}

type Client struct {
	fetcher DocumentFetcher
	norm    *normalize.Normalizer
	baseURL string
	now     func() time.Time
	logger  *logging.Logger
}

func NewClient(fetcher DocumentFetcher, cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		fetcher: fetcher,
		norm:    normalize.New(logger),
		baseURL: baseURL,
		now:     now,
		logger:  logger.Named("premierleague"),
	}
}

// HasClub reports whether teamID has a known overview page.
func HasClub(teamID string) bool {
	_, ok := clubPaths[teamID]
	return ok
}

// FetchProfile scrapes the club overview. Missing stadium or name yields ErrNoProfile.
func (c *Client) FetchProfile(ctx context.Context, teamID, leagueID string) (team.Profile, error) {
	path, ok := clubPaths[teamID]
	if !ok {
		return team.Profile{}, errors.Wrapf(ErrUnknownClub, "team %q", teamID)
	}

	doc, err := c.fetcher.Document(ctx, c.baseURL+path)
	if err != nil {
		return team.Profile{}, err
	}
	return c.Parse(doc, teamID, leagueID)
}

func (c *Client) Parse(doc *goquery.Document, teamID, leagueID string) (team.Profile, error) {
	root := doc.Selection
	profile := team.Profile{
		ID:        teamID,
		Name:      normalize.CollapseSpaces(nameField.Extract(root)),
		Logo:      scrape.AbsoluteURL(scrape.FirstAttr(root, "src", badgeSelector...)),
		Stadium:   normalize.CollapseSpaces(stadiumField.Extract(root)),
		Capacity:  c.norm.Int(capacityField.Extract(root)),
		Manager:   normalize.CollapseSpaces(managerField.Extract(root)),
		Founded:   c.norm.Int(foundedField.Extract(root)),
		LeagueID:  leagueID,
		UpdatedAt: c.now().UTC(),
	}
	if profile.Name == "" || profile.Stadium == "" {
		return team.Profile{}, errors.Wrapf(ErrNoProfile, "team %q", teamID)
	}
	if profile.Manager == "" {
		profile.Manager = normalize.Unknown
	}
	return profile, nil
}
