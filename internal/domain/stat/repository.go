package stat

import "context"

// Repository persists AthleteStat rows. Update only touches Value, StatType,
// Season and UpdatedAt so fields owned by other writers survive a resync.
type Repository interface {
	FindByKey(ctx context.Context, key Key) (AthleteStat, bool, error)
	Create(ctx context.Context, s AthleteStat) error
	Update(ctx context.Context, s AthleteStat) error
	ListByAthlete(ctx context.Context, athleteID string, season *string) ([]AthleteStat, error)
}

type SeasonStatRepository interface {
	SaveSeasonStat(ctx context.Context, s SeasonStat) error
	ListSeasonStats(ctx context.Context, athleteID string) ([]SeasonStat, error)
}

type GameStatRepository interface {
	SaveGameStat(ctx context.Context, s GameStat) error
	ListGameStats(ctx context.Context, athleteID string) ([]GameStat, error)
}
