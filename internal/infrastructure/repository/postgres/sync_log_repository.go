package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	qb "github.com/riskibarqy/athlete-hub/internal/platform/querybuilder"
)

const syncLogsTable = "sync_logs"

type SyncLogRepository struct {
	db dbtx
}

// Append lets the database assign id and created_at.
func (r *SyncLogRepository) Append(ctx context.Context, e synclog.Entry) (synclog.Entry, error) {
	if err := e.Validate(); err != nil {
		return synclog.Entry{}, err
	}
	e.Message = synclog.TruncateMessage(e.Message)

	query, args, err := qb.InsertInto(syncLogsTable).
		Columns("job_name", "success", "message", "run_id").
		Values(e.JobName, e.Success, e.Message, e.RunID).
		Suffix("RETURNING id, created_at").
		ToSQL()
	if err != nil {
		return synclog.Entry{}, fmt.Errorf("build insert sync log query: %w", err)
	}

	var out syncLogTableModel
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return synclog.Entry{}, writeError("append sync log "+e.JobName, err)
	}
	e.ID = out.ID
	e.CreatedAt = out.CreatedAt
	return e, nil
}

// List returns entries newest first.
func (r *SyncLogRepository) List(ctx context.Context, filter synclog.ListFilter) ([]synclog.Entry, error) {
	b := qb.Select("*").From(syncLogsTable).OrderBy("id DESC").Limit(filter.Limit)
	if filter.JobName != "" {
		b = b.Where(qb.Eq("job_name", filter.JobName))
	}
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sync logs query: %w", err)
	}

	var rows []syncLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}

	out := make([]synclog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, synclog.Entry{
			ID:        row.ID,
			JobName:   row.JobName,
			Success:   row.Success,
			Message:   row.Message,
			RunID:     row.RunID,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
