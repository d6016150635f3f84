package querybuilder

import (
	"reflect"
	"testing"
)

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       int64   `db:"id"`
		Name     string  `db:"name"`
		Ignored  string  `db:"-"`
		Untagged string  ``
		Score    *int    `db:"score"`
		hidden   float64 `db:"hidden"`
	}
	_ = row{hidden: 0}

	score := 3
	sql, args, err := InsertModel("players", row{ID: 9, Name: "Keeper", Score: &score}, "")
	if err != nil {
		t.Fatalf("InsertModel error: %v", err)
	}
	if sql != "INSERT INTO players (id, name, score) VALUES ($1, $2, $3)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{int64(9), "Keeper", &score}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_PointerAndErrors(t *testing.T) {
	t.Parallel()

	type row struct {
		ID int64 `db:"id"`
	}

	if _, _, err := InsertModel("players", &row{ID: 1}, ""); err != nil {
		t.Fatalf("pointer model must be accepted: %v", err)
	}
	if _, _, err := InsertModel("players", (*row)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("players", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, _, err := InsertModel("players", struct{ X int }{X: 1}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}
