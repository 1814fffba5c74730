package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	qb "github.com/riskibarqy/athlete-hub/internal/platform/querybuilder"
)

const gamesTable = "games"

type GameRepository struct {
	db dbtx
}

func (r *GameRepository) Get(ctx context.Context, league sport.Code, id int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From(gamesTable).
		Where(qb.Eq("league", string(league)), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game %s/%d: %w", league, id, err)
	}
	return gameFromRow(row), true, nil
}

// ListByLeague orders by date with undated games last, then by id.
func (r *GameRepository) ListByLeague(ctx context.Context, league sport.Code, filter game.ListFilter) ([]game.Game, error) {
	conds := []qb.Condition{qb.Eq("league", string(league))}
	if season := strings.TrimSpace(filter.Season); season != "" {
		conds = append(conds, qb.Eq("season", season))
	}
	if filter.TeamID > 0 {
		conds = append(conds, qb.Or(qb.Eq("home_team_id", filter.TeamID), qb.Eq("visitor_team_id", filter.TeamID)))
	}

	query, args, err := qb.Select("*").From(gamesTable).
		Where(conds...).
		OrderBy("game_date ASC NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games for %s: %w", league, err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) Save(ctx context.Context, g game.Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	row := gameTableModel{
		League:        string(g.League),
		ID:            g.ID,
		Season:        nullString(g.Season),
		HomeTeamID:    nullInt64(g.HomeTeamID),
		VisitorTeamID: nullInt64(g.VisitorTeamID),
		HomeScore:     nullInt(g.HomeScore),
		VisitorScore:  nullInt(g.VisitorScore),
		UpdatedAt:     time.Now().UTC(),
	}
	if g.Date != nil {
		row.GameDate = sql.NullTime{Time: g.Date.UTC(), Valid: true}
	}

	query, args, err := qb.UpsertModel(gamesTable, row, []string{"league", "id"})
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(fmt.Sprintf("save game %s/%d", g.League, g.ID), err)
	}
	return nil
}

func gameFromRow(row gameTableModel) game.Game {
	out := game.Game{
		ID:            row.ID,
		League:        sport.Code(row.League),
		Season:        stringPtr(row.Season),
		HomeTeamID:    int64Ptr(row.HomeTeamID),
		VisitorTeamID: int64Ptr(row.VisitorTeamID),
		HomeScore:     intPtr(row.HomeScore),
		VisitorScore:  intPtr(row.VisitorScore),
		UpdatedAt:     row.UpdatedAt,
	}
	if row.GameDate.Valid {
		d := row.GameDate.Time.UTC()
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		out.Date = &d
	}
	return out
}
