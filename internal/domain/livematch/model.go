package livematch

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

const (
	StatusHalfTime = "HT"
	StatusFullTime = "FT"
)

const DefaultLogo = "https://via.placeholder.com/50"

// Match is one entry of the live score snapshot.
type Match struct {
	ID          string
	HomeTeam    string
	AwayTeam    string
	HomeLogo    string
	AwayLogo    string
	HomeScore   int
	AwayScore   int
	Status      string
	Competition string
	MatchTime   string
	ScrapedAt   time.Time
}

// IsLive reports whether the clock is still running.
func (m Match) IsLive() bool {
	return m.Status != "" && m.Status != StatusFullTime
}

// WithID assigns an id derived from competition, teams and the snapshot day.
func (m Match) WithID() Match {
	m.ID = MatchID(m.Competition, m.HomeTeam, m.AwayTeam, m.ScrapedAt)
	return m
}

func MatchID(competition, home, away string, at time.Time) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join([]string{competition, home, away, at.UTC().Format("2006-01-02")}, "|")))
	return fmt.Sprintf("lm-%016x", h.Sum64())
}

// CompetitionGroup is a competition with its matches.
type CompetitionGroup struct {
	Competition string
	Matches     []Match
}

// GroupByCompetition keeps competitions in first-seen order.
func GroupByCompetition(matches []Match) []CompetitionGroup {
	index := make(map[string]int)
	out := make([]CompetitionGroup, 0)
	for _, m := range matches {
		i, ok := index[m.Competition]
		if !ok {
			i = len(out)
			index[m.Competition] = i
			out = append(out, CompetitionGroup{Competition: m.Competition})
		}
		out[i].Matches = append(out[i].Matches, m)
	}
	return out
}
