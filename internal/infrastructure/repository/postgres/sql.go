package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
)

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// writeError maps unique violations to store.ErrConflict and keeps the driver
// error in the chain.
func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, store.ErrConflict, pqErr.Constraint)
		case pqCheckViolation:
			return fmt.Errorf("%s: check %s violated: %w", op, pqErr.Constraint, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}
