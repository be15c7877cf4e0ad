package mockdata

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
)

const (
	SquadSize    = 25
	FixtureCount = 10
)

// Team builds a complete detail payload for teamID.
func (g *Generator) Team(teamID, leagueID string) team.Detail {
	name := team.DisplayName(teamID)
	firstWord := strings.SplitN(name, " ", 2)[0]
	short := strings.ToUpper(teamID)
	if len(short) > 3 {
		short = short[:3]
	}

	g.mu.Lock()
	capacity := g.intn(40000) + 20000
	founded := 1900 + g.intn(100)
	g.mu.Unlock()

	return team.Detail{
		Profile: team.Profile{
			ID:        teamID,
			Name:      name,
			Logo:      "https://via.placeholder.com/200?text=" + short,
			Stadium:   firstWord + " Stadium",
			Capacity:  capacity,
			Manager:   "Manager Name",
			Founded:   founded,
			LeagueID:  leagueID,
			UpdatedAt: g.now().UTC(),
		},
		Squad:    g.Squad(teamID),
		Fixtures: g.Fixtures(teamID, name),
		Stats:    g.Stats(teamID),
	}
}

// Squad numbers players 1..25: three keepers, seven defenders, eight
// midfielders, then forwards.
func (g *Generator) Squad(teamID string) []team.SquadMember {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]team.SquadMember, 0, SquadSize)
	for i := 0; i < SquadSize; i++ {
		position := squadPosition(i)
		goals := g.intn(5)
		if position == team.PositionForward {
			goals = g.intn(15)
		}
		out = append(out, team.SquadMember{
			ID:          fmt.Sprintf("%s-player-%d", teamID, i),
			TeamID:      teamID,
			Name:        fmt.Sprintf("Player %d", i+1),
			Number:      i + 1,
			Position:    position,
			Age:         g.intn(15) + 18,
			Nationality: g.pick(nationalities),
			Photo:       fmt.Sprintf("https://via.placeholder.com/150?text=P%d", i+1),
			MarketValue: fmt.Sprintf("€%dM", g.intn(50)+5),
			Appearances: g.intn(30),
			Goals:       goals,
			Assists:     g.intn(10),
			YellowCards: g.intn(5),
			RedCards:    g.intn(2),
		})
	}
	return out
}

func squadPosition(i int) string {
	switch {
	case i < 3:
		return team.PositionGoalkeeper
	case i < 10:
		return team.PositionDefender
	case i < 18:
		return team.PositionMidfielder
	default:
		return team.PositionForward
	}
}

// Fixtures spans ten weeks starting three weeks back; past fixtures carry a
// full-time score.
func (g *Generator) Fixtures(teamID, teamName string) []team.Fixture {
	opponents := make([]string, 0, len(fixtureOpponents))
	for _, opp := range fixtureOpponents {
		if !strings.Contains(teamName, opp) {
			opponents = append(opponents, opp)
		}
	}
	today := g.now().UTC()

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]team.Fixture, 0, FixtureCount)
	for i := 0; i < FixtureCount; i++ {
		isHome := g.rng.Float64() > 0.5
		opponent := opponents[i%len(opponents)]
		date := today.AddDate(0, 0, (i-3)*7)

		home, away := opponent, teamName
		venue := opponent + " Stadium"
		if isHome {
			home, away = teamName, opponent
			venue = teamName + " Stadium"
		}

		f := team.Fixture{
			ID:          fmt.Sprintf("%s-fixture-%d", teamID, i),
			TeamID:      teamID,
			Date:        date.Format(time.DateOnly),
			Time:        "15:00",
			HomeTeam:    home,
			AwayTeam:    away,
			HomeLogo:    leaguestanding.LogoPlaceholder(home),
			AwayLogo:    leaguestanding.LogoPlaceholder(away),
			Competition: "Premier League",
			Venue:       venue,
			IsHome:      isHome,
		}
		if i < 3 {
			hs, as := g.intn(4), g.intn(4)
			f.Status = "FT"
			f.HomeScore = &hs
			f.AwayScore = &as
		}
		out = append(out, f)
	}
	return out
}

func (g *Generator) Stats(teamID string) team.SeasonStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	return team.SeasonStats{
		TeamID:         teamID,
		GoalsScored:    g.intn(50) + 20,
		GoalsConceded:  g.intn(40) + 15,
		CleanSheets:    g.intn(10) + 5,
		Wins:           g.intn(15) + 5,
		Draws:          g.intn(10) + 3,
		Losses:         g.intn(10) + 2,
		Possession:     g.intn(20) + 40,
		PassAccuracy:   g.intn(15) + 75,
		ShotsPerGame:   oneDecimal(g.rng.Float64()*10 + 10),
		TacklesPerGame: oneDecimal(g.rng.Float64()*10 + 15),
		YellowCards:    g.intn(50) + 20,
		RedCards:       g.intn(5),
	}
}

func oneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
