package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/memory"
)

type gamesCall struct {
	teamID int64
	season int
}

// fakeLeagueClient serves canned provider records.
type fakeLeagueClient struct {
	league    sport.Code
	teams     []provider.Record
	games     map[int64][]provider.Record
	stats     map[string]provider.Record
	standings []provider.Record
	gameStats []provider.Record

	mu            sync.Mutex
	gameCalls     []gamesCall
	invalidations int
}

func (f *fakeLeagueClient) InvalidateCache(context.Context) {
	f.mu.Lock()
	f.invalidations++
	f.mu.Unlock()
}

func (f *fakeLeagueClient) invalidated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidations
}

func (f *fakeLeagueClient) League() sport.Code { return f.league }

func (f *fakeLeagueClient) GetTeams(context.Context) []provider.Record { return f.teams }

func (f *fakeLeagueClient) GetGames(_ context.Context, teamID int64, season int) []provider.Record {
	f.mu.Lock()
	f.gameCalls = append(f.gameCalls, gamesCall{teamID: teamID, season: season})
	f.mu.Unlock()
	return f.games[teamID]
}

func (f *fakeLeagueClient) GetPlayerStats(_ context.Context, _ int64, _ int, group string) provider.Record {
	if data, ok := f.stats[group]; ok {
		return data
	}
	return provider.Record{}
}

func (f *fakeLeagueClient) GetStandings(context.Context) []provider.Record { return f.standings }

func (f *fakeLeagueClient) GetPlayerGameStats(context.Context, int64, int) []provider.Record {
	return f.gameStats
}

func (f *fakeLeagueClient) seasonsRequested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.gameCalls))
	for _, call := range f.gameCalls {
		out = append(out, call.season)
	}
	return out
}

// overrideTx swaps selected repositories of a memory store.
type overrideTx struct {
	*memory.Store
	athletes athlete.Repository
	syncLogs synclog.Repository
}

func (o overrideTx) Repositories() store.Repositories {
	repos := o.Store.Repositories()
	if o.athletes != nil {
		repos.Athletes = o.athletes
	}
	if o.syncLogs != nil {
		repos.SyncLogs = o.syncLogs
	}
	return repos
}

func nbaTeam(id float64, name string) provider.Record {
	return provider.Record{"id": id, "name": name, "full_name": "Full " + name, "abbreviation": name[:3], "city": "City", "conference": "East", "division": "Southeast"}
}

func nbaGame(id, home, visitor float64) provider.Record {
	return provider.Record{
		"id":                 id,
		"date":               "2024-01-15T00:00:00.000Z",
		"season":             float64(2024),
		"home_team":          map[string]any{"id": home},
		"visitor_team":       map[string]any{"id": visitor},
		"home_team_score":    float64(100),
		"visitor_team_score": float64(98),
	}
}

func profile(id string, league sport.Code, externalID int64) athlete.Profile {
	code := league
	return athlete.Profile{
		ID:           id,
		FirstName:    "First",
		LastName:     id,
		PrimarySport: &code,
		ExternalIDs:  map[sport.Code]int64{league: externalID},
	}
}
