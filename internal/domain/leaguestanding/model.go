package leaguestanding

import (
	"fmt"
	"strings"
	"time"
)

const DefaultLeagueID = "premier-league"

// Outcome symbols used in Form.
const (
	FormWin  = "W"
	FormDraw = "D"
	FormLoss = "L"
)

var leagueNames = map[string]string{
	"premier-league": "Premier League",
	"la-liga":        "La Liga",
	"serie-a":        "Serie A",
	"bundesliga":     "Bundesliga",
	"ligue-1":        "Ligue 1",
}

// KnownLeagues is the default scrape order.
var KnownLeagues = []string{"premier-league", "la-liga", "serie-a", "bundesliga", "ligue-1"}

// Standing is one team's table row in one league. Identity is (TeamName, LeagueID).
type Standing struct {
	LeagueID       string
	TeamName       string
	TeamLogo       string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	// Form lists outcome symbols, most recent last.
	Form      []string
	ScrapedAt time.Time
}

func (s Standing) Validate() error {
	if strings.TrimSpace(s.TeamName) == "" {
		return fmt.Errorf("standing team name is required")
	}
	if strings.TrimSpace(s.LeagueID) == "" {
		return fmt.Errorf("standing league id is required")
	}
	if s.Position <= 0 {
		return fmt.Errorf("standing position must be > 0, got %d", s.Position)
	}
	return nil
}

// Consistent reports whether the counting invariants hold.
func (s Standing) Consistent() bool {
	return s.Played == s.Won+s.Drawn+s.Lost && s.Points == s.Won*3+s.Drawn
}

func (s Standing) Slug() string {
	return Slug(s.TeamName)
}

// FormString joins Form the way it is persisted ("W,D,L").
func (s Standing) FormString() string {
	return strings.Join(s.Form, ",")
}

func ParseForm(raw string) []string {
	out := make([]string, 0, 5)
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Slug lowercases a team name and replaces spaces with '-'.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

func LeagueName(leagueID string) string {
	if name, ok := leagueNames[leagueID]; ok {
		return name
	}
	return leagueID
}

func IsKnownLeague(leagueID string) bool {
	_, ok := leagueNames[leagueID]
	return ok
}

// LogoPlaceholder renders the placeholder badge used when no crest is scraped.
func LogoPlaceholder(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return "https://via.placeholder.com/50?text=" + string(runes)
}
