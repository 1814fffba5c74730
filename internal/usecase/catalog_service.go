package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

const (
	defaultSyncLogLimit = 50
	maxSyncLogLimit     = 500
)

// CatalogService serves read-only views of synced data and the audit log.
type CatalogService struct {
	tx store.Transactor
}

func NewCatalogService(tx store.Transactor) *CatalogService {
	return &CatalogService{tx: tx}
}

func (s *CatalogService) ListTeams(ctx context.Context, rawLeague string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	league, err := sport.ParseCode(rawLeague)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	items, err := s.tx.Repositories().Teams.ListByLeague(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *CatalogService) ListGames(ctx context.Context, rawLeague string, filter game.ListFilter) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListGames")
	defer span.End()

	league, err := sport.ParseCode(rawLeague)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.TeamID < 0 {
		return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	filter.Season = strings.TrimSpace(filter.Season)
	items, err := s.tx.Repositories().Games.ListByLeague(ctx, league, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return items, nil
}

type AthleteStats struct {
	Athlete     athlete.Profile
	Stats       []stat.AthleteStat
	SeasonStats []stat.SeasonStat
	GameStats   []stat.GameStat
}

// GetAthleteStats returns every stat row of an athlete, optionally for one season.
func (s *CatalogService) GetAthleteStats(ctx context.Context, athleteID, season string) (AthleteStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetAthleteStats")
	defer span.End()

	athleteID = strings.TrimSpace(athleteID)
	if athleteID == "" {
		return AthleteStats{}, fmt.Errorf("%w: athlete id is required", ErrInvalidInput)
	}

	repos := s.tx.Repositories()
	profile, found, err := repos.Athletes.Get(ctx, athleteID)
	if err != nil {
		return AthleteStats{}, fmt.Errorf("get athlete: %w", err)
	}
	if !found {
		return AthleteStats{}, fmt.Errorf("%w: athlete %s", ErrNotFound, athleteID)
	}

	seasonFilter := stat.Season(season)
	stats, err := repos.Stats.ListByAthlete(ctx, athleteID, seasonFilter)
	if err != nil {
		return AthleteStats{}, fmt.Errorf("list athlete stats: %w", err)
	}
	seasonStats, err := repos.SeasonStats.ListSeasonStats(ctx, athleteID)
	if err != nil {
		return AthleteStats{}, fmt.Errorf("list season stats: %w", err)
	}
	if seasonFilter != nil {
		filtered := seasonStats[:0]
		for _, item := range seasonStats {
			if item.Season == *seasonFilter {
				filtered = append(filtered, item)
			}
		}
		seasonStats = filtered
	}
	gameStats, err := repos.GameStats.ListGameStats(ctx, athleteID)
	if err != nil {
		return AthleteStats{}, fmt.Errorf("list game stats: %w", err)
	}

	return AthleteStats{Athlete: profile, Stats: stats, SeasonStats: seasonStats, GameStats: gameStats}, nil
}

func (s *CatalogService) ListSyncLogs(ctx context.Context, filter synclog.ListFilter) ([]synclog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListSyncLogs")
	defer span.End()

	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultSyncLogLimit
	}
	if filter.Limit > maxSyncLogLimit {
		filter.Limit = maxSyncLogLimit
	}
	filter.JobName = strings.TrimSpace(filter.JobName)

	items, err := s.tx.Repositories().SyncLogs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	return items, nil
}
