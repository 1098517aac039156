package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("users").
		Where(Eq("tenant_id", "t1"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM users WHERE tenant_id = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("users").
		Columns("id", "name").
		Values("u1", "name-1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO users (id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "name-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("acquisitions").
		Columns("id", "player_id", "season_year").
		Values("a1", "p1", 2024).
		Values("a2", "p2", 2024).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO acquisitions (id, player_id, season_year) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[0] != "a1" || args[3] != "a2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRow(t *testing.T) {
	_, _, err := InsertInto("acquisitions").
		Columns("id", "player_id").
		Values("a1").
		ToSQL()
	if err == nil {
		t.Fatal("expected an error for a row shorter than the column list")
	}
}

func TestInsertBuilder_ConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("rules").
		Columns("code", "enabled").
		Values("TRUE_FA_ROUND_15", true).
		Suffix("ON CONFLICT (code) DO UPDATE SET enabled = EXCLUDED.enabled").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO rules (code, enabled) VALUES ($1, $2) ON CONFLICT (code) DO UPDATE SET enabled = EXCLUDED.enabled"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_ReturningSuffix(t *testing.T) {
	query, args, err := Update("acquisitions").
		Set("dropped_at", "2026-01-02").
		Where(Eq("player_id", "p1"), Eq("slot_id", "s1"), IsNull("dropped_at")).
		Suffix("RETURNING id, draft_round").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE acquisitions SET dropped_at = $1 WHERE player_id = $2 AND slot_id = $3 AND dropped_at IS NULL RETURNING id, draft_round"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_ExprWhere(t *testing.T) {
	query, args, err := Update("seasons").
		Set("is_active", false).
		Where(Expr("year <> ?", 2026)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE seasons SET is_active = $1 WHERE year <> $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != false || args[1] != 2026 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
