package sqlstore

import (
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
)

const (
	tableStandings   = "league_standings"
	tableTransfers   = "transfers"
	tableLiveMatches = "live_matches"
	tableTeams       = "teams"
	tablePlayers     = "team_players"
	tableFixtures    = "team_fixtures"
	tableTeamStats   = "team_stats"
)

type standingTableModel struct {
	TeamName       string `db:"team_name"`
	LeagueID       string `db:"league_id"`
	TeamLogo       string `db:"team_logo"`
	Position       int    `db:"position"`
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	Drawn          int    `db:"drawn"`
	Lost           int    `db:"lost"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
	Points         int    `db:"points"`
	Form           string `db:"form"`
	ScrapedAt      int64  `db:"scraped_at"`
}

func standingToTable(s leaguestanding.Standing) standingTableModel {
	return standingTableModel{
		TeamName:       s.TeamName,
		LeagueID:       s.LeagueID,
		TeamLogo:       s.TeamLogo,
		Position:       s.Position,
		Played:         s.Played,
		Won:            s.Won,
		Drawn:          s.Drawn,
		Lost:           s.Lost,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference,
		Points:         s.Points,
		Form:           s.FormString(),
		ScrapedAt:      s.ScrapedAt.Unix(),
	}
}

func (m standingTableModel) toDomain() leaguestanding.Standing {
	return leaguestanding.Standing{
		LeagueID:       m.LeagueID,
		TeamName:       m.TeamName,
		TeamLogo:       m.TeamLogo,
		Position:       m.Position,
		Played:         m.Played,
		Won:            m.Won,
		Drawn:          m.Drawn,
		Lost:           m.Lost,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		Points:         m.Points,
		Form:           leaguestanding.ParseForm(m.Form),
		ScrapedAt:      fromEpoch(m.ScrapedAt),
	}
}

type transferTableModel struct {
	ID           string `db:"id"`
	Player       string `db:"player"`
	Age          string `db:"age"`
	Nationality  string `db:"nationality"`
	Position     string `db:"position"`
	FromClub     string `db:"from_club"`
	ToClub       string `db:"to_club"`
	Fee          string `db:"fee"`
	Type         string `db:"transfer_type"`
	PlayerImage  string `db:"player_image"`
	DiscoveredAt int64  `db:"discovered_at"`
}

func transferToTable(t transfer.Transfer) transferTableModel {
	return transferTableModel{
		ID:           t.ID,
		Player:       t.Player,
		Age:          t.Age,
		Nationality:  t.Nationality,
		Position:     t.Position,
		FromClub:     t.FromClub,
		ToClub:       t.ToClub,
		Fee:          t.Fee,
		Type:         t.Type,
		PlayerImage:  t.PlayerImage,
		DiscoveredAt: t.DiscoveredAt.Unix(),
	}
}

func (m transferTableModel) toDomain() transfer.Transfer {
	return transfer.Transfer{
		ID:           m.ID,
		Player:       m.Player,
		Age:          m.Age,
		Nationality:  m.Nationality,
		Position:     m.Position,
		FromClub:     m.FromClub,
		ToClub:       m.ToClub,
		Fee:          m.Fee,
		Type:         m.Type,
		PlayerImage:  m.PlayerImage,
		DiscoveredAt: fromEpoch(m.DiscoveredAt),
	}
}

type liveMatchTableModel struct {
	ID          string `db:"id"`
	Seq         int    `db:"seq"`
	HomeTeam    string `db:"home_team"`
	AwayTeam    string `db:"away_team"`
	HomeLogo    string `db:"home_logo"`
	AwayLogo    string `db:"away_logo"`
	HomeScore   int    `db:"home_score"`
	AwayScore   int    `db:"away_score"`
	Status      string `db:"status"`
	Competition string `db:"competition"`
	MatchTime   string `db:"match_time"`
	ScrapedAt   int64  `db:"scraped_at"`
}

func liveMatchToTable(m livematch.Match, seq int) liveMatchTableModel {
	return liveMatchTableModel{
		ID:          m.ID,
		Seq:         seq,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeLogo:    m.HomeLogo,
		AwayLogo:    m.AwayLogo,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Status:      m.Status,
		Competition: m.Competition,
		MatchTime:   m.MatchTime,
		ScrapedAt:   m.ScrapedAt.Unix(),
	}
}

func (m liveMatchTableModel) toDomain() livematch.Match {
	return livematch.Match{
		ID:          m.ID,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeLogo:    m.HomeLogo,
		AwayLogo:    m.AwayLogo,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		Status:      m.Status,
		Competition: m.Competition,
		MatchTime:   m.MatchTime,
		ScrapedAt:   fromEpoch(m.ScrapedAt),
	}
}

type teamTableModel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Logo      string `db:"logo"`
	Stadium   string `db:"stadium"`
	Capacity  int    `db:"capacity"`
	Manager   string `db:"manager"`
	Founded   int    `db:"founded"`
	LeagueID  string `db:"league_id"`
	UpdatedAt int64  `db:"updated_at"`
}

func profileToTable(p team.Profile) teamTableModel {
	return teamTableModel{
		ID:        p.ID,
		Name:      p.Name,
		Logo:      p.Logo,
		Stadium:   p.Stadium,
		Capacity:  p.Capacity,
		Manager:   p.Manager,
		Founded:   p.Founded,
		LeagueID:  p.LeagueID,
		UpdatedAt: p.UpdatedAt.Unix(),
	}
}

func (m teamTableModel) toDomain() team.Profile {
	return team.Profile{
		ID:        m.ID,
		Name:      m.Name,
		Logo:      m.Logo,
		Stadium:   m.Stadium,
		Capacity:  m.Capacity,
		Manager:   m.Manager,
		Founded:   m.Founded,
		LeagueID:  m.LeagueID,
		UpdatedAt: fromEpoch(m.UpdatedAt),
	}
}

type playerTableModel struct {
	ID          string `db:"id"`
	TeamID      string `db:"team_id"`
	Name        string `db:"name"`
	Number      int    `db:"number"`
	Position    string `db:"position"`
	Age         int    `db:"age"`
	Nationality string `db:"nationality"`
	Photo       string `db:"photo"`
	MarketValue string `db:"market_value"`
	Appearances int    `db:"appearances"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
}

func (m playerTableModel) toDomain() team.SquadMember {
	return team.SquadMember(m)
}

type fixtureTableModel struct {
	ID          string `db:"id"`
	TeamID      string `db:"team_id"`
	Date        string `db:"fixture_date"`
	Time        string `db:"kickoff_time"`
	HomeTeam    string `db:"home_team"`
	AwayTeam    string `db:"away_team"`
	HomeLogo    string `db:"home_logo"`
	AwayLogo    string `db:"away_logo"`
	Competition string `db:"competition"`
	Venue       string `db:"venue"`
	IsHome      bool   `db:"is_home"`
	Status      string `db:"status"`
	HomeScore   *int   `db:"home_score"`
	AwayScore   *int   `db:"away_score"`
}

func (m fixtureTableModel) toDomain() team.Fixture {
	return team.Fixture(m)
}

type statsTableModel struct {
	TeamID         string  `db:"team_id"`
	GoalsScored    int     `db:"goals_scored"`
	GoalsConceded  int     `db:"goals_conceded"`
	CleanSheets    int     `db:"clean_sheets"`
	Wins           int     `db:"wins"`
	Draws          int     `db:"draws"`
	Losses         int     `db:"losses"`
	Possession     int     `db:"possession"`
	PassAccuracy   int     `db:"pass_accuracy"`
	ShotsPerGame   float64 `db:"shots_per_game"`
	TacklesPerGame float64 `db:"tackles_per_game"`
	YellowCards    int     `db:"yellow_cards"`
	RedCards       int     `db:"red_cards"`
}

func (m statsTableModel) toDomain() team.SeasonStats {
	return team.SeasonStats(m)
}

func fromEpoch(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
