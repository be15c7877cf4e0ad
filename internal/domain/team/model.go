package team

import (
	"fmt"
	"strings"
	"time"
)

// Squad position categories.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

// Profile is the club overview stored per team id (the team slug).
type Profile struct {
	ID        string
	Name      string
	Logo      string
	Stadium   string
	Capacity  int
	Manager   string
	Founded   int
	LeagueID  string
	UpdatedAt time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

type SquadMember struct {
	ID          string
	TeamID      string
	Name        string
	Number      int
	Position    string
	Age         int
	Nationality string
	Photo       string
	MarketValue string
	Appearances int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

// Fixture is a team-scoped fixture row. Scores and Status are set only for
// played matches.
type Fixture struct {
	ID          string
	TeamID      string
	Date        string
	Time        string
	HomeTeam    string
	AwayTeam    string
	HomeLogo    string
	AwayLogo    string
	Competition string
	Venue       string
	IsHome      bool
	Status      string
	HomeScore   *int
	AwayScore   *int
}

func (f Fixture) Played() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}

type SeasonStats struct {
	TeamID         string
	GoalsScored    int
	GoalsConceded  int
	CleanSheets    int
	Wins           int
	Draws          int
	Losses         int
	Possession     int
	PassAccuracy   int
	ShotsPerGame   float64
	TacklesPerGame float64
	YellowCards    int
	RedCards       int
}

// Detail is everything persisted by one team re-scrape.
type Detail struct {
	Profile  Profile
	Squad    []SquadMember
	Fixtures []Fixture
	Stats    SeasonStats
}

// DisplayName title-cases a slug: "manchester-city" -> "Manchester City".
func DisplayName(teamID string) string {
	parts := strings.Split(teamID, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
