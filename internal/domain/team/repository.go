package team

import "context"

// Repository persists team details. ReplaceTeam swaps profile, squad,
// fixtures and stats of one team in a single transaction.
type Repository interface {
	ReplaceTeam(ctx context.Context, detail Detail) error
	GetProfile(ctx context.Context, teamID string) (Profile, bool, error)
	// ListSquad orders by shirt number.
	ListSquad(ctx context.Context, teamID string) ([]SquadMember, error)
	// ListFixtures orders by date then time.
	ListFixtures(ctx context.Context, teamID string) ([]Fixture, error)
	GetStats(ctx context.Context, teamID string) (SeasonStats, bool, error)
}
