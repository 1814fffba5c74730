package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds a single-row insert from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts model and, on a conflict over conflictColumns, overwrites
// every other column with the incoming row. Columns listed in keep are left
// untouched on update.
func UpsertModel(table string, model any, conflictColumns []string, keep ...string) (string, []any, error) {
	if len(conflictColumns) == 0 {
		return "", nil, fmt.Errorf("upsert conflict columns are required")
	}
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(OnConflictUpdate(conflictColumns, updatableColumns(cols, conflictColumns, keep))).
		ToSQL()
}

// OnConflictUpdate renders an ON CONFLICT clause that copies EXCLUDED values
// into updateColumns, or DO NOTHING when there is nothing to update.
func OnConflictUpdate(conflictColumns, updateColumns []string) string {
	var buf strings.Builder
	buf.WriteString("ON CONFLICT (")
	buf.WriteString(strings.Join(conflictColumns, ", "))
	buf.WriteString(")")
	if len(updateColumns) == 0 {
		buf.WriteString(" DO NOTHING")
		return buf.String()
	}
	buf.WriteString(" DO UPDATE SET ")
	for i, col := range updateColumns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(col)
	}
	return buf.String()
}

func updatableColumns(cols, conflictColumns, keep []string) []string {
	skip := make(map[string]struct{}, len(conflictColumns)+len(keep))
	for _, c := range conflictColumns {
		skip[c] = struct{}{}
	}
	for _, c := range keep {
		skip[c] = struct{}{}
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := skip[c]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
