package memory

import (
	"context"

	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
)

type SyncLogRepository struct {
	v view
}

func (r *SyncLogRepository) Append(ctx context.Context, e synclog.Entry) (synclog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return synclog.Entry{}, err
	}
	if err := e.Validate(); err != nil {
		return synclog.Entry{}, err
	}
	e.Message = synclog.TruncateMessage(e.Message)
	e.CreatedAt = r.v.now()
	err := r.v.write(func(s *state) error {
		s.nextLogID++
		e.ID = s.nextLogID
		s.syncLogs = append(s.syncLogs, e)
		return nil
	})
	return e, err
}

// List returns entries newest first.
func (r *SyncLogRepository) List(ctx context.Context, filter synclog.ListFilter) ([]synclog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]synclog.Entry, 0)
	r.v.read(func(s *state) {
		for i := len(s.syncLogs) - 1; i >= 0; i-- {
			item := s.syncLogs[i]
			if filter.JobName != "" && item.JobName != filter.JobName {
				continue
			}
			out = append(out, item)
			if filter.Limit > 0 && len(out) >= filter.Limit {
				return
			}
		}
	})
	return out, nil
}
