package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"go.opentelemetry.io/otel/attribute"
)

// Profile defaults for teams that were never re-scraped.
const (
	defaultCapacity = 40000
	defaultManager  = "Manager Name"
	defaultFounded  = 1900
)

// TeamDetail is the read model behind the team detail endpoint.
type TeamDetail struct {
	Profile    team.Profile
	Standing   leaguestanding.Standing
	LeagueName string
	Squad      []team.SquadMember
	Fixtures   []team.Fixture
	Stats      team.SeasonStats
}

type TeamService struct {
	standings leaguestanding.Repository
	teams     team.Repository
	profiles  TeamProfileSource
	mocks     MockGenerator
	cfg       PipelineConfig
}

func NewTeamService(
	standings leaguestanding.Repository,
	teams team.Repository,
	profiles TeamProfileSource,
	mocks MockGenerator,
	cfg PipelineConfig,
) *TeamService {
	cfg = cfg.withDefaults()
	cfg.Logger = cfg.Logger.Named("usecase.teams")
	return &TeamService{
		standings: standings,
		teams:     teams,
		profiles:  profiles,
		mocks:     mocks,
		cfg:       cfg,
	}
}

// GetDetail resolves the team through its latest standings row, first within
// leagueID and then across every league. Missing squad, fixtures or stats are
// filled with generated data that is not persisted.
func (s *TeamService) GetDetail(ctx context.Context, teamID, leagueID string) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetDetail", attribute.String("team.id", teamID))
	defer span.End()

	teamID = strings.ToLower(strings.TrimSpace(teamID))
	leagueID = strings.TrimSpace(leagueID)
	if teamID == "" {
		return TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	standing, err := s.findStanding(ctx, teamID, leagueID)
	if err != nil {
		return TeamDetail{}, err
	}

	profile, exists, err := s.teams.GetProfile(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team profile: %w", err)
	}
	if !exists {
		profile = defaultProfile(teamID, standing)
	}
	if profile.Name == "" {
		profile.Name = standing.TeamName
	}

	squad, err := s.teams.ListSquad(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list team squad: %w", err)
	}
	if len(squad) == 0 {
		squad = s.mocks.Squad(teamID)
	}

	fixtures, err := s.teams.ListFixtures(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("list team fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		fixtures = s.mocks.Fixtures(teamID, standing.TeamName)
	}

	stats, exists, err := s.teams.GetStats(ctx, teamID)
	if err != nil {
		return TeamDetail{}, fmt.Errorf("get team stats: %w", err)
	}
	if !exists {
		stats = s.mocks.Stats(teamID)
	}

	return TeamDetail{
		Profile:    profile,
		Standing:   standing,
		LeagueName: leaguestanding.LeagueName(standing.LeagueID),
		Squad:      squad,
		Fixtures:   fixtures,
		Stats:      stats,
	}, nil
}

func (s *TeamService) findStanding(ctx context.Context, teamID, leagueID string) (leaguestanding.Standing, error) {
	standing, found, err := s.standings.FindLatestBySlug(ctx, teamID, leagueID)
	if err != nil {
		return leaguestanding.Standing{}, fmt.Errorf("find standing by slug: %w", err)
	}
	if found {
		return standing, nil
	}
	if leagueID != "" {
		standing, found, err = s.standings.FindLatestBySlug(ctx, teamID, "")
		if err != nil {
			return leaguestanding.Standing{}, fmt.Errorf("find standing by slug: %w", err)
		}
		if found {
			return standing, nil
		}
	}
	return leaguestanding.Standing{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
}

// Rescrape refreshes a team's profile from its club page, generates squad,
// fixtures and stats, and replaces everything stored for the team.
func (s *TeamService) Rescrape(ctx context.Context, teamID, leagueID string) (team.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rescrape", attribute.String("team.id", teamID), attribute.String("league.id", leagueID))
	defer span.End()

	teamID = strings.ToLower(strings.TrimSpace(teamID))
	leagueID = strings.TrimSpace(leagueID)
	if teamID == "" {
		return team.Detail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return team.Detail{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	c := s.cfg.startCycle(DomainTeams, teamID)
	detail := s.mocks.Team(teamID, leagueID)

	var (
		profile team.Profile
		err     error
	)
	if s.profiles != nil {
		profile, err = s.profiles.FetchProfile(ctx, teamID, leagueID)
	}
	if s.profiles == nil || err != nil {
		c.fallback(ctx, err)
	} else {
		if profile.Logo == "" {
			profile.Logo = detail.Profile.Logo
		}
		detail.Profile = profile
	}
	detail.Profile.ID = teamID
	detail.Profile.LeagueID = leagueID
	detail.Profile.UpdatedAt = s.cfg.Now().UTC()

	rows := 2 + len(detail.Squad) + len(detail.Fixtures)
	result := upsert.Result{Attempted: rows}
	if err := s.teams.ReplaceTeam(ctx, detail); err != nil {
		result.Failed = rows
		err = fmt.Errorf("replace team %s: %w", teamID, err)
		c.finish(ctx, result, err)
		return team.Detail{}, err
	}
	result.Written = rows
	c.finish(ctx, result, nil)
	return detail, nil
}

func defaultProfile(teamID string, standing leaguestanding.Standing) team.Profile {
	return team.Profile{
		ID:       teamID,
		Name:     standing.TeamName,
		Logo:     standing.TeamLogo,
		Stadium:  standing.TeamName + " Stadium",
		Capacity: defaultCapacity,
		Manager:  defaultManager,
		Founded:  defaultFounded,
		LeagueID: standing.LeagueID,
	}
}
