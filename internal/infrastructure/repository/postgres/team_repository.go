package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
	qb "github.com/riskibarqy/athlete-hub/internal/platform/querybuilder"
)

const teamsTable = "teams"

type TeamRepository struct {
	db dbtx
}

func (r *TeamRepository) Get(ctx context.Context, league sport.Code, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From(teamsTable).
		Where(qb.Eq("league", string(league)), qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team %s/%d: %w", league, id, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, league sport.Code) ([]team.Team, error) {
	query, args, err := qb.Select("*").From(teamsTable).
		Where(qb.Eq("league", string(league))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams for %s: %w", league, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) Save(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	row := teamTableModel{
		League:         string(t.League),
		ID:             t.ID,
		Name:           t.Name,
		FullName:       t.FullName,
		Abbreviation:   t.Abbreviation,
		Location:       t.Location,
		Conference:     t.Conference,
		Division:       t.Division,
		LeagueName:     t.LeagueName,
		Wins:           nullInt(t.Wins),
		Losses:         nullInt(t.Losses),
		OvertimeLosses: nullInt(t.OvertimeLosses),
		Points:         nullInt(t.Points),
		UpdatedAt:      time.Now().UTC(),
	}
	query, args, err := qb.UpsertModel(teamsTable, row, []string{"league", "id"})
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(fmt.Sprintf("save team %s/%d", t.League, t.ID), err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.ID,
		League:         sport.Code(row.League),
		Name:           row.Name,
		FullName:       row.FullName,
		Abbreviation:   row.Abbreviation,
		Location:       row.Location,
		Conference:     row.Conference,
		Division:       row.Division,
		LeagueName:     row.LeagueName,
		Wins:           intPtr(row.Wins),
		Losses:         intPtr(row.Losses),
		OvertimeLosses: intPtr(row.OvertimeLosses),
		Points:         intPtr(row.Points),
		UpdatedAt:      row.UpdatedAt,
	}
}
