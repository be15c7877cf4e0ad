package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

type standingDTO struct {
	Position       int      `json:"position"`
	TeamName       string   `json:"teamName"`
	TeamLogo       string   `json:"teamLogo"`
	Played         int      `json:"played"`
	Won            int      `json:"won"`
	Drawn          int      `json:"drawn"`
	Lost           int      `json:"lost"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	GoalDifference int      `json:"goalDifference"`
	Points         int      `json:"points"`
	Form           []string `json:"form"`
	LeagueID       string   `json:"leagueId"`
	ScrapedAt      string   `json:"scrapedAt"`
}

type transferDTO struct {
	ID           string `json:"id"`
	PlayerName   string `json:"playerName"`
	Age          string `json:"age"`
	Nationality  string `json:"nationality"`
	Position     string `json:"position"`
	FromClub     string `json:"fromClub"`
	ToClub       string `json:"toClub"`
	Fee          string `json:"fee"`
	TransferType string `json:"transferType"`
	PlayerImage  string `json:"playerImage"`
	TransferDate string `json:"transferDate"`
}

type liveMatchDTO struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Status    string `json:"status"`
	HomeLogo  string `json:"homeLogo"`
	AwayLogo  string `json:"awayLogo"`
	MatchTime string `json:"matchTime"`
	IsLive    bool   `json:"isLive"`
}

type competitionDTO struct {
	Competition string         `json:"competition"`
	Matches     []liveMatchDTO `json:"matches"`
}

type teamSummaryDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Logo         string   `json:"logo"`
	Stadium      string   `json:"stadium"`
	Capacity     int      `json:"capacity"`
	Manager      string   `json:"manager"`
	Founded      int      `json:"founded"`
	League       string   `json:"league"`
	LeagueID     string   `json:"leagueId"`
	Position     int      `json:"position"`
	Points       int      `json:"points"`
	Played       int      `json:"played"`
	Wins         int      `json:"wins"`
	Draws        int      `json:"draws"`
	Losses       int      `json:"losses"`
	GoalsFor     int      `json:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst"`
	Form         []string `json:"form"`
}

type squadMemberDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Position    string `json:"position"`
	Age         int    `json:"age"`
	Nationality string `json:"nationality"`
	Photo       string `json:"photo"`
	MarketValue string `json:"marketValue"`
	Appearances int    `json:"appearances"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

type fixtureDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	HomeTeam    string `json:"homeTeam"`
	AwayTeam    string `json:"awayTeam"`
	HomeLogo    string `json:"homeLogo"`
	AwayLogo    string `json:"awayLogo"`
	Competition string `json:"competition"`
	Venue       string `json:"venue"`
	IsHome      bool   `json:"isHome"`
	Status      string `json:"status,omitempty"`
	HomeScore   *int   `json:"homeScore,omitempty"`
	AwayScore   *int   `json:"awayScore,omitempty"`
}

type seasonStatsDTO struct {
	GoalsScored    int     `json:"goalsScored"`
	GoalsConceded  int     `json:"goalsConceded"`
	CleanSheets    int     `json:"cleanSheets"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	Possession     int     `json:"possession"`
	PassAccuracy   int     `json:"passAccuracy"`
	ShotsPerGame   float64 `json:"shotsPerGame"`
	TacklesPerGame float64 `json:"tacklesPerGame"`
	YellowCards    int     `json:"yellowCards"`
	RedCards       int     `json:"redCards"`
}

type teamDetailDTO struct {
	Team     teamSummaryDTO   `json:"team"`
	Squad    []squadMemberDTO `json:"squad"`
	Fixtures []fixtureDTO     `json:"fixtures"`
	Stats    seasonStatsDTO   `json:"stats"`
}

type teamProfileDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Logo      string `json:"logo"`
	Stadium   string `json:"stadium"`
	Capacity  int    `json:"capacity"`
	Manager   string `json:"manager"`
	Founded   int    `json:"founded"`
	LeagueID  string `json:"leagueId"`
	UpdatedAt string `json:"updatedAt"`
}

type scrapeTeamRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
}

type scrapeTeamResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *teamProfileDTO `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func standingToDTO(ctx context.Context, v leaguestanding.Standing) standingDTO {
	_, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		Position:       v.Position,
		TeamName:       v.TeamName,
		TeamLogo:       v.TeamLogo,
		Played:         v.Played,
		Won:            v.Won,
		Drawn:          v.Drawn,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
		Form:           nonNilStrings(v.Form),
		LeagueID:       v.LeagueID,
		ScrapedAt:      formatTime(v.ScrapedAt),
	}
}

func standingsToDTO(ctx context.Context, items []leaguestanding.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingToDTO(ctx, item))
	}
	return out
}

func transferToDTO(v transfer.Transfer) transferDTO {
	return transferDTO{
		ID:           v.ID,
		PlayerName:   v.Player,
		Age:          v.Age,
		Nationality:  v.Nationality,
		Position:     v.Position,
		FromClub:     v.FromClub,
		ToClub:       v.ToClub,
		Fee:          v.Fee,
		TransferType: v.Type,
		PlayerImage:  v.PlayerImage,
		TransferDate: formatTime(v.DiscoveredAt),
	}
}

func competitionsToDTO(groups []livematch.CompetitionGroup) []competitionDTO {
	out := make([]competitionDTO, 0, len(groups))
	for _, group := range groups {
		matches := make([]liveMatchDTO, 0, len(group.Matches))
		for _, m := range group.Matches {
			matches = append(matches, liveMatchDTO{
				ID:        m.ID,
				HomeTeam:  m.HomeTeam,
				AwayTeam:  m.AwayTeam,
				HomeScore: m.HomeScore,
				AwayScore: m.AwayScore,
				Status:    m.Status,
				HomeLogo:  m.HomeLogo,
				AwayLogo:  m.AwayLogo,
				MatchTime: m.MatchTime,
				IsLive:    m.IsLive(),
			})
		}
		out = append(out, competitionDTO{Competition: group.Competition, Matches: matches})
	}
	return out
}

func teamDetailToDTO(ctx context.Context, v usecase.TeamDetail) teamDetailDTO {
	_, span := startSpan(ctx, "httpapi.teamDetailToDTO")
	defer span.End()

	squad := make([]squadMemberDTO, 0, len(v.Squad))
	for _, m := range v.Squad {
		squad = append(squad, squadMemberDTO{
			ID:          m.ID,
			Name:        m.Name,
			Number:      m.Number,
			Position:    m.Position,
			Age:         m.Age,
			Nationality: m.Nationality,
			Photo:       m.Photo,
			MarketValue: m.MarketValue,
			Appearances: m.Appearances,
			Goals:       m.Goals,
			Assists:     m.Assists,
			YellowCards: m.YellowCards,
			RedCards:    m.RedCards,
		})
	}

	fixtures := make([]fixtureDTO, 0, len(v.Fixtures))
	for _, f := range v.Fixtures {
		fixtures = append(fixtures, fixtureToDTO(f))
	}

	return teamDetailDTO{
		Team: teamSummaryDTO{
			ID:           v.Profile.ID,
			Name:         v.Profile.Name,
			Logo:         v.Profile.Logo,
			Stadium:      v.Profile.Stadium,
			Capacity:     v.Profile.Capacity,
			Manager:      v.Profile.Manager,
			Founded:      v.Profile.Founded,
			League:       v.LeagueName,
			LeagueID:     v.Standing.LeagueID,
			Position:     v.Standing.Position,
			Points:       v.Standing.Points,
			Played:       v.Standing.Played,
			Wins:         v.Standing.Won,
			Draws:        v.Standing.Drawn,
			Losses:       v.Standing.Lost,
			GoalsFor:     v.Standing.GoalsFor,
			GoalsAgainst: v.Standing.GoalsAgainst,
			Form:         nonNilStrings(v.Standing.Form),
		},
		Squad:    squad,
		Fixtures: fixtures,
		Stats: seasonStatsDTO{
			GoalsScored:    v.Stats.GoalsScored,
			GoalsConceded:  v.Stats.GoalsConceded,
			CleanSheets:    v.Stats.CleanSheets,
			Wins:           v.Stats.Wins,
			Draws:          v.Stats.Draws,
			Losses:         v.Stats.Losses,
			Possession:     v.Stats.Possession,
			PassAccuracy:   v.Stats.PassAccuracy,
			ShotsPerGame:   v.Stats.ShotsPerGame,
			TacklesPerGame: v.Stats.TacklesPerGame,
			YellowCards:    v.Stats.YellowCards,
			RedCards:       v.Stats.RedCards,
		},
	}
}

func fixtureToDTO(f team.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          f.ID,
		Date:        f.Date,
		Time:        f.Time,
		HomeTeam:    f.HomeTeam,
		AwayTeam:    f.AwayTeam,
		HomeLogo:    f.HomeLogo,
		AwayLogo:    f.AwayLogo,
		Competition: f.Competition,
		Venue:       f.Venue,
		IsHome:      f.IsHome,
		Status:      f.Status,
		HomeScore:   f.HomeScore,
		AwayScore:   f.AwayScore,
	}
}

func teamProfileToDTO(p team.Profile) *teamProfileDTO {
	return &teamProfileDTO{
		ID:        p.ID,
		Name:      p.Name,
		Logo:      p.Logo,
		Stadium:   p.Stadium,
		Capacity:  p.Capacity,
		Manager:   p.Manager,
		Founded:   p.Founded,
		LeagueID:  p.LeagueID,
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
