package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	qb "github.com/riskibarqy/athlete-hub/internal/platform/querybuilder"
)

const (
	athleteStatsTable = "athlete_stats"
	seasonStatsTable  = "athlete_season_stats"
	gameStatsTable    = "athlete_game_stats"
)

// StatRepository serves the text, season and game stat tables.
type StatRepository struct {
	db dbtx
}

func (r *StatRepository) FindByKey(ctx context.Context, key stat.Key) (stat.AthleteStat, bool, error) {
	seasonCond := qb.IsNull("season")
	if key.Season != nil {
		seasonCond = qb.Eq("season", *key.Season)
	}
	query, args, err := qb.Select("*").From(athleteStatsTable).
		Where(qb.Eq("athlete_id", key.AthleteID), qb.Eq("name", key.Name), seasonCond).
		Limit(1).
		ToSQL()
	if err != nil {
		return stat.AthleteStat{}, false, fmt.Errorf("build select athlete stat query: %w", err)
	}

	var row athleteStatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stat.AthleteStat{}, false, nil
		}
		return stat.AthleteStat{}, false, fmt.Errorf("find athlete stat %s/%s: %w", key.AthleteID, key.Name, err)
	}
	return athleteStatFromRow(row), true, nil
}

// Create is a plain insert; a duplicate id or key surfaces as store.ErrConflict.
func (r *StatRepository) Create(ctx context.Context, s stat.AthleteStat) error {
	if err := s.Validate(); err != nil {
		return err
	}

	row := athleteStatTableModel{
		ID:        s.ID,
		AthleteID: s.AthleteID,
		Name:      s.Name,
		Value:     s.Value,
		Season:    nullString(s.Season),
		StatType:  s.StatType,
		UpdatedAt: time.Now().UTC(),
	}
	query, args, err := qb.InsertModel(athleteStatsTable, row, "")
	if err != nil {
		return fmt.Errorf("build insert athlete stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(fmt.Sprintf("create athlete stat %s/%s", s.AthleteID, s.Name), err)
	}
	return nil
}

func (r *StatRepository) Update(ctx context.Context, s stat.AthleteStat) error {
	if err := s.Validate(); err != nil {
		return err
	}

	query, args, err := qb.Update(athleteStatsTable).
		Set("value", s.Value).
		Set("stat_type", s.StatType).
		Set("season", nullString(s.Season)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", s.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update athlete stat query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeError("update athlete stat "+s.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update athlete stat %s: rows affected: %w", s.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update athlete stat %s: not found", s.ID)
	}
	return nil
}

func (r *StatRepository) ListByAthlete(ctx context.Context, athleteID string, season *string) ([]stat.AthleteStat, error) {
	conds := []qb.Condition{qb.Eq("athlete_id", athleteID)}
	if season != nil {
		conds = append(conds, qb.Expr("COALESCE(season, '') = ?", *season))
	}
	query, args, err := qb.Select("*").From(athleteStatsTable).
		Where(conds...).
		OrderBy("COALESCE(season, '')", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athlete stats query: %w", err)
	}

	var rows []athleteStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list athlete stats for %s: %w", athleteID, err)
	}

	out := make([]stat.AthleteStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, athleteStatFromRow(row))
	}
	return out, nil
}

func (r *StatRepository) SaveSeasonStat(ctx context.Context, s stat.SeasonStat) error {
	if err := s.Validate(); err != nil {
		return err
	}

	row := seasonStatTableModel{
		AthleteID: s.AthleteID,
		TeamID:    nullInt64(s.TeamID),
		Season:    s.Season,
		Name:      s.Name,
		Value:     s.Value,
		UpdatedAt: time.Now().UTC(),
	}
	query, args, err := qb.UpsertModel(seasonStatsTable, row, []string{"athlete_id", "season", "name"})
	if err != nil {
		return fmt.Errorf("build upsert season stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(fmt.Sprintf("save season stat %s/%s/%s", s.AthleteID, s.Season, s.Name), err)
	}
	return nil
}

func (r *StatRepository) ListSeasonStats(ctx context.Context, athleteID string) ([]stat.SeasonStat, error) {
	query, args, err := qb.Select("*").From(seasonStatsTable).
		Where(qb.Eq("athlete_id", athleteID)).
		OrderBy("season", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season stats query: %w", err)
	}

	var rows []seasonStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season stats for %s: %w", athleteID, err)
	}

	out := make([]stat.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, stat.SeasonStat{
			AthleteID: row.AthleteID,
			TeamID:    int64Ptr(row.TeamID),
			Season:    row.Season,
			Name:      row.Name,
			Value:     row.Value,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *StatRepository) SaveGameStat(ctx context.Context, s stat.GameStat) error {
	if err := s.Validate(); err != nil {
		return err
	}

	row := gameStatTableModel{
		AthleteID: s.AthleteID,
		GameID:    s.GameID,
		Name:      s.Name,
		Value:     s.Value,
		UpdatedAt: time.Now().UTC(),
	}
	query, args, err := qb.UpsertModel(gameStatsTable, row, []string{"athlete_id", "game_id", "name"})
	if err != nil {
		return fmt.Errorf("build upsert game stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(fmt.Sprintf("save game stat %s/%d/%s", s.AthleteID, s.GameID, s.Name), err)
	}
	return nil
}

func (r *StatRepository) ListGameStats(ctx context.Context, athleteID string) ([]stat.GameStat, error) {
	query, args, err := qb.Select("*").From(gameStatsTable).
		Where(qb.Eq("athlete_id", athleteID)).
		OrderBy("game_id", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game stats query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game stats for %s: %w", athleteID, err)
	}

	out := make([]stat.GameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, stat.GameStat{
			AthleteID: row.AthleteID,
			GameID:    row.GameID,
			Name:      row.Name,
			Value:     row.Value,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func athleteStatFromRow(row athleteStatTableModel) stat.AthleteStat {
	return stat.AthleteStat{
		ID:        row.ID,
		AthleteID: row.AthleteID,
		Name:      row.Name,
		Value:     row.Value,
		Season:    stringPtr(row.Season),
		StatType:  row.StatType,
		UpdatedAt: row.UpdatedAt,
	}
}
