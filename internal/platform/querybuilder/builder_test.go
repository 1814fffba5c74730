package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("teams").
		Where(Eq("league", "NBA"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM teams WHERE league = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "NBA" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderOrCondition(t *testing.T) {
	query, args, err := Select("*").
		From("games").
		Where(Eq("league", "NHL"), Or(Eq("home_team_id", int64(7)), Eq("visitor_team_id", int64(7)))).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM games WHERE league = $1 AND (home_team_id = $2 OR visitor_team_id = $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("sync_logs").
		Columns("job_name", "success").
		Values("nightly_sync_games", true).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO sync_logs (job_name, success) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "nightly_sync_games" || args[1] != true {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("athlete_stats").
		Set("value", "25.7").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE athlete_stats SET value = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "25.7" || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type upsertRow struct {
	League    string `db:"league"`
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

func TestUpsertModel(t *testing.T) {
	query, args, err := UpsertModel("teams", upsertRow{League: "NBA", ID: 14, Name: "Lakers", CreatedAt: "x"}, []string{"league", "id"}, "created_at")
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (league, id, name, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (league, id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "Lakers" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestOnConflictUpdateDoNothing(t *testing.T) {
	got := OnConflictUpdate([]string{"id"}, nil)
	if got != "ON CONFLICT (id) DO NOTHING" {
		t.Fatalf("unexpected clause: %s", got)
	}
}

func TestInsertModelRejectsNil(t *testing.T) {
	var row *upsertRow
	if _, _, err := InsertModel("teams", row, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
