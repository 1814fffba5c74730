package usecase

import (
	"context"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

// LeagueClient is the fail-soft provider contract shared by every league:
// failures come back as empty results, never as errors.
type LeagueClient interface {
	League() sport.Code
	GetTeams(ctx context.Context) []provider.Record
	GetGames(ctx context.Context, teamID int64, season int) []provider.Record
	GetPlayerStats(ctx context.Context, playerID int64, season int, group string) provider.Record
}

// StandingsClient is implemented by leagues with a standings feed.
type StandingsClient interface {
	GetStandings(ctx context.Context) []provider.Record
}

// GameStatsClient is implemented by leagues with per-game box scores.
type GameStatsClient interface {
	GetPlayerGameStats(ctx context.Context, playerID int64, season int) []provider.Record
}

// CacheInvalidator is implemented by clients that memoize responses.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}
