package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	qb "github.com/riskibarqy/athlete-hub/internal/platform/querybuilder"
)

const athletesTable = "athletes"

type AthleteRepository struct {
	db dbtx
}

func (r *AthleteRepository) List(ctx context.Context) ([]athlete.Profile, error) {
	query, args, err := qb.Select("*").From(athletesTable).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athletes query: %w", err)
	}

	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}

	out := make([]athlete.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := athleteFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *AthleteRepository) Get(ctx context.Context, id string) (athlete.Profile, bool, error) {
	query, args, err := qb.Select("*").From(athletesTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return athlete.Profile{}, false, fmt.Errorf("build select athlete query: %w", err)
	}

	var row athleteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return athlete.Profile{}, false, nil
		}
		return athlete.Profile{}, false, fmt.Errorf("get athlete %s: %w", id, err)
	}
	p, err := athleteFromRow(row)
	if err != nil {
		return athlete.Profile{}, false, err
	}
	return p, true, nil
}

func (r *AthleteRepository) Save(ctx context.Context, p athlete.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	ids := p.ExternalIDs
	if ids == nil {
		ids = map[sport.Code]int64{}
	}
	encoded, err := sonic.MarshalString(ids)
	if err != nil {
		return fmt.Errorf("encode external ids for athlete %s: %w", p.ID, err)
	}

	row := athleteTableModel{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CurrentTeam: p.CurrentTeam,
		ExternalIDs: encoded,
	}
	if p.PrimarySport != nil {
		row.PrimarySport = sql.NullString{String: string(*p.PrimarySport), Valid: true}
	}

	query, args, err := qb.UpsertModel(athletesTable, row, []string{"id"})
	if err != nil {
		return fmt.Errorf("build upsert athlete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError("save athlete "+p.ID, err)
	}
	return nil
}

func athleteFromRow(row athleteTableModel) (athlete.Profile, error) {
	out := athlete.Profile{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		CurrentTeam: row.CurrentTeam,
		ExternalIDs: map[sport.Code]int64{},
	}
	if row.PrimarySport.Valid {
		code := sport.Code(row.PrimarySport.String)
		out.PrimarySport = &code
	}
	if row.ExternalIDs != "" {
		if err := sonic.UnmarshalString(row.ExternalIDs, &out.ExternalIDs); err != nil {
			return athlete.Profile{}, fmt.Errorf("decode external ids for athlete %s: %w", row.ID, err)
		}
	}
	return out, nil
}
