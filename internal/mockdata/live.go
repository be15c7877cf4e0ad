package mockdata

import (
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
)

// LiveMatches returns two to four matches per competition, never pairing a
// team twice within one competition.
func (g *Generator) LiveMatches() []livematch.Match {
	now := g.now().UTC()

	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]livematch.Match, 0, len(liveCompetitions)*4)
	for _, competition := range liveCompetitions {
		teams := liveTeams[competition]
		count := g.intn(3) + 2
		for i := 0; i < count && i < len(teams)/2; i++ {
			home, away := teams[i*2], teams[i*2+1]
			m := livematch.Match{
				HomeTeam:    home,
				AwayTeam:    away,
				HomeLogo:    leaguestanding.LogoPlaceholder(home),
				AwayLogo:    leaguestanding.LogoPlaceholder(away),
				HomeScore:   g.intn(4),
				AwayScore:   g.intn(4),
				Status:      g.pick(liveStatuses),
				Competition: competition,
				MatchTime:   now.Format(time.RFC3339),
				ScrapedAt:   now,
			}
			out = append(out, m.WithID())
		}
	}
	return out
}

// Transfers returns the fixed transfer pool stamped with the current time.
func (g *Generator) Transfers() []transfer.Transfer {
	now := g.now().UTC()

	out := make([]transfer.Transfer, 0, len(mockTransfers))
	for _, row := range mockTransfers {
		t := transfer.Transfer{
			Player:       row.player,
			Age:          row.age,
			Nationality:  row.nationality,
			Position:     row.position,
			FromClub:     row.from,
			ToClub:       row.to,
			Fee:          row.fee,
			Type:         transfer.TypeFromFee(row.fee),
			PlayerImage:  transfer.DefaultPlayerImage,
			DiscoveredAt: now,
		}
		out = append(out, t.WithID())
	}
	return out
}
