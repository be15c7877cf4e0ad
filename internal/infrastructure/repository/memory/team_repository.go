package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-feed/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	byTeam map[string]team.Detail
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{byTeam: make(map[string]team.Detail)}
}

func (r *TeamRepository) ReplaceTeam(_ context.Context, detail team.Detail) error {
	if err := detail.Profile.Validate(); err != nil {
		return err
	}
	teamID := detail.Profile.ID

	stored := team.Detail{
		Profile:  detail.Profile,
		Squad:    make([]team.SquadMember, 0, len(detail.Squad)),
		Fixtures: make([]team.Fixture, 0, len(detail.Fixtures)),
		Stats:    detail.Stats,
	}
	for _, member := range detail.Squad {
		member.TeamID = teamID
		stored.Squad = append(stored.Squad, member)
	}
	for _, fixture := range detail.Fixtures {
		fixture.TeamID = teamID
		stored.Fixtures = append(stored.Fixtures, fixture)
	}
	stored.Stats.TeamID = teamID

	sort.SliceStable(stored.Squad, func(i, j int) bool {
		return stored.Squad[i].Number < stored.Squad[j].Number
	})
	sort.SliceStable(stored.Fixtures, func(i, j int) bool {
		a, b := stored.Fixtures[i], stored.Fixtures[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})

	r.mu.Lock()
	r.byTeam[teamID] = stored
	r.mu.Unlock()
	return nil
}

func (r *TeamRepository) GetProfile(_ context.Context, teamID string) (team.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detail, ok := r.byTeam[teamID]
	return detail.Profile, ok, nil
}

func (r *TeamRepository) ListSquad(_ context.Context, teamID string) ([]team.SquadMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.SquadMember{}, r.byTeam[teamID].Squad...), nil
}

func (r *TeamRepository) ListFixtures(_ context.Context, teamID string) ([]team.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.Fixture{}, r.byTeam[teamID].Fixtures...), nil
}

func (r *TeamRepository) GetStats(_ context.Context, teamID string) (team.SeasonStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detail, ok := r.byTeam[teamID]
	return detail.Stats, ok, nil
}
