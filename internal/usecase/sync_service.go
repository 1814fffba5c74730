package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
	"github.com/riskibarqy/athlete-hub/internal/mapping"
	"github.com/riskibarqy/athlete-hub/internal/platform/id"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
)

var teamMappers = map[sport.Code]func(map[string]any) team.Team{
	sport.NBA: mapping.NBATeam,
	sport.NFL: mapping.NFLTeam,
	sport.MLB: mapping.MLBTeam,
	sport.NHL: mapping.NHLTeam,
}

var gameMappers = map[sport.Code]func(map[string]any) game.Game{
	sport.NBA: mapping.NBAGame,
	sport.NFL: mapping.NFLGame,
	sport.MLB: mapping.MLBGame,
	sport.NHL: mapping.NHLGame,
}

// SyncService fetches provider data, maps it and upserts it by natural key.
// Each call commits once.
type SyncService struct {
	tx      store.Transactor
	clients map[sport.Code]LeagueClient
	ids     id.Generator
	logger  *logging.Logger
}

func NewSyncService(tx store.Transactor, clients []LeagueClient, ids id.Generator, logger *logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	byLeague := make(map[sport.Code]LeagueClient, len(clients))
	for _, client := range clients {
		if client == nil {
			continue
		}
		byLeague[client.League()] = client
	}
	return &SyncService{
		tx:      tx,
		clients: byLeague,
		ids:     ids,
		logger:  logger,
	}
}

// Client returns the configured client for league.
func (s *SyncService) Client(league sport.Code) (LeagueClient, bool) {
	client, ok := s.clients[league]
	return client, ok
}

// InvalidateCaches drops memoized provider responses so a job run starts
// from fresh upstream data.
func (s *SyncService) InvalidateCaches(ctx context.Context) {
	for _, client := range s.clients {
		if invalidator, ok := client.(CacheInvalidator); ok {
			invalidator.InvalidateCache(ctx)
		}
	}
}

func (s *SyncService) client(league sport.Code) (LeagueClient, error) {
	client, ok := s.clients[league]
	if !ok {
		return nil, fmt.Errorf("%w: no provider client configured for %q", ErrInvalidInput, league)
	}
	return client, nil
}

// SyncTeams upserts every team the provider lists and returns the raw list.
// Standings fields of existing rows are kept.
func (s *SyncService) SyncTeams(ctx context.Context, league sport.Code) ([]provider.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeams")
	defer span.End()

	client, err := s.client(league)
	if err != nil {
		return nil, err
	}
	mapTeam := teamMappers[league]

	raw := client.GetTeams(ctx)
	saved := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		for _, item := range raw {
			mapped := mapTeam(item)
			if mapped.ID <= 0 {
				s.logger.DebugContext(ctx, "skip team without id", "league", league)
				continue
			}
			existing, found, err := repos.Teams.Get(ctx, league, mapped.ID)
			if err != nil {
				return fmt.Errorf("get team %s/%d: %w", league, mapped.ID, err)
			}
			if found {
				mapped.Wins = existing.Wins
				mapped.Losses = existing.Losses
				mapped.OvertimeLosses = existing.OvertimeLosses
				mapped.Points = existing.Points
			}
			if err := repos.Teams.Save(ctx, mapped); err != nil {
				return fmt.Errorf("save team %s/%d: %w", league, mapped.ID, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SyncedRecords.WithLabelValues(league.String(), "team").Add(float64(saved))
	s.logger.InfoContext(ctx, "synced teams", "league", league, "count", len(raw))
	return raw, nil
}

// SyncGames upserts one team's games. season <= 0 lets the provider pick.
func (s *SyncService) SyncGames(ctx context.Context, league sport.Code, teamID int64, season int) ([]provider.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncGames")
	defer span.End()

	client, err := s.client(league)
	if err != nil {
		return nil, err
	}
	mapGame := gameMappers[league]

	raw := client.GetGames(ctx, teamID, season)
	saved := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		for _, item := range raw {
			mapped := mapGame(item)
			if mapped.ID <= 0 {
				s.logger.DebugContext(ctx, "skip game without id", "league", league, "team_id", teamID)
				continue
			}
			if err := repos.Games.Save(ctx, mapped); err != nil {
				return fmt.Errorf("save game %s/%d: %w", league, mapped.ID, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SyncedRecords.WithLabelValues(league.String(), "game").Add(float64(saved))
	s.logger.InfoContext(ctx, "synced games", "league", league, "team_id", teamID, "count", len(raw))
	return raw, nil
}

// SyncPlayerStats stores every mapped stat field for one athlete. It returns
// false without touching the store when the athlete has no id for league.
func (s *SyncService) SyncPlayerStats(ctx context.Context, league sport.Code, profile athlete.Profile, season int) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayerStats")
	defer span.End()

	playerID, ok := profile.ExternalID(league)
	if !ok {
		return false, nil
	}
	client, err := s.client(league)
	if err != nil {
		return false, err
	}

	type fetched struct {
		group  mapping.StatGroup
		season *string
		data   provider.Record
	}
	groups := mapping.StatGroups(league)
	responses := make([]fetched, 0, len(groups))
	for _, group := range groups {
		data := client.GetPlayerStats(ctx, playerID, season, group.Group)
		responses = append(responses, fetched{group: group, season: statSeason(league, season, data), data: data})
	}

	saved := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		for _, res := range responses {
			for _, entry := range mapping.ExtractStats(res.group, res.data) {
				if err := s.upsertStat(ctx, repos, profile.ID, entry, res.season); err != nil {
					return err
				}
				saved++
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.SyncedRecords.WithLabelValues(league.String(), "athlete_stat").Add(float64(saved))
	s.logger.InfoContext(ctx, "synced athlete stats", "league", league, "athlete_id", profile.ID, "count", saved)
	return true, nil
}

func (s *SyncService) upsertStat(ctx context.Context, repos store.Repositories, athleteID string, entry mapping.StatEntry, season *string) error {
	key := stat.Key{AthleteID: athleteID, Name: entry.Name, Season: season}
	existing, found, err := repos.Stats.FindByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("find stat %s/%s: %w", athleteID, entry.Name, err)
	}

	if found {
		existing.Value = entry.Value
		existing.StatType = entry.StatType
		existing.Season = season
		if err := repos.Stats.Update(ctx, existing); err != nil {
			return fmt.Errorf("update stat %s/%s: %w", athleteID, entry.Name, err)
		}
	} else {
		statID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate stat id: %w", err)
		}
		created := stat.AthleteStat{
			ID:        statID,
			AthleteID: athleteID,
			Name:      entry.Name,
			Value:     entry.Value,
			Season:    season,
			StatType:  entry.StatType,
		}
		if err := repos.Stats.Create(ctx, created); err != nil {
			return fmt.Errorf("create stat %s/%s: %w", athleteID, entry.Name, err)
		}
	}

	if season == nil || entry.Numeric == nil {
		return nil
	}
	mirror := stat.SeasonStat{AthleteID: athleteID, Season: *season, Name: entry.Name, Value: *entry.Numeric}
	if err := repos.SeasonStats.SaveSeasonStat(ctx, mirror); err != nil {
		return fmt.Errorf("save season stat %s/%s: %w", athleteID, entry.Name, err)
	}
	return nil
}

// statSeason labels stored rows. NBA season averages carry their own season
// when none was requested.
func statSeason(league sport.Code, season int, data provider.Record) *string {
	if season > 0 {
		return stat.Season(strconv.Itoa(season))
	}
	if league == sport.NBA {
		return stat.Season(mapping.StatValue(data["season"]))
	}
	return nil
}

// SyncStandings copies the NHL standings feed onto known teams. Unknown teams are skipped.
func (s *SyncService) SyncStandings(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncStandings")
	defer span.End()

	client, err := s.client(sport.NHL)
	if err != nil {
		return 0, err
	}
	standingsClient, ok := client.(StandingsClient)
	if !ok {
		return 0, fmt.Errorf("%w: %s client has no standings feed", ErrInvalidInput, sport.NHL)
	}

	rows := mapping.NHLStandings(standingsClient.GetStandings(ctx))
	updated := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		for _, row := range rows {
			existing, found, err := repos.Teams.Get(ctx, sport.NHL, row.TeamID)
			if err != nil {
				return fmt.Errorf("get team %s/%d: %w", sport.NHL, row.TeamID, err)
			}
			if !found {
				continue
			}
			if err := repos.Teams.Save(ctx, row.Apply(existing)); err != nil {
				return fmt.Errorf("save standings %s/%d: %w", sport.NHL, row.TeamID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "synced standings", "league", sport.NHL, "teams", updated)
	return updated, nil
}

// SyncGameStats stores NBA per-game box score lines for one athlete.
func (s *SyncService) SyncGameStats(ctx context.Context, profile athlete.Profile, season int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncGameStats")
	defer span.End()

	playerID, ok := profile.ExternalID(sport.NBA)
	if !ok {
		return 0, nil
	}
	client, err := s.client(sport.NBA)
	if err != nil {
		return 0, err
	}
	gameStatsClient, ok := client.(GameStatsClient)
	if !ok {
		return 0, nil
	}

	lines := mapping.NBAGameStats(gameStatsClient.GetPlayerGameStats(ctx, playerID, season))
	saved := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		for _, line := range lines {
			for name, value := range line.Values {
				item := stat.GameStat{AthleteID: profile.ID, GameID: line.GameID, Name: name, Value: value}
				if err := repos.GameStats.SaveGameStat(ctx, item); err != nil {
					return fmt.Errorf("save game stat %s/%d/%s: %w", profile.ID, line.GameID, name, err)
				}
				saved++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.SyncedRecords.WithLabelValues(sport.NBA.String(), "game_stat").Add(float64(saved))
	return saved, nil
}

// CurrentSeason is the season label jobs use for "now".
func CurrentSeason(now time.Time) int {
	return now.Year()
}
