// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package sqlgen

import (
	"strings"
	"testing"

	"github.com/dbflux/dbflux/dbvalue"
	"github.com/dbflux/dbflux/dialect"
	"github.com/dbflux/dbflux/schema"
)

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestSelectWherePlaceholderCount(t *testing.T) {
	req := Request{
		Operation: OpSelectWhere,
		Table:     "users",
		Columns:   []string{"id", "name", "email"},
		Source:    WithPlaceholders,
		PKIndices: []int{0},
		Options:   Options{Compact: true},
	}
	got := GenerateSelectWhere(dialect.Postgres, req)
	want := `SELECT * FROM "users" WHERE "id" = $1;`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestUpdateTemplateSplitsPKAndNonPK(t *testing.T) {
	req := TemplateRequest{
		Table: "users",
		Columns: []schema.ColumnInfo{
			{Name: "id", IsPrimaryKey: true},
			{Name: "name"},
			{Name: "email"},
		},
		Options: Options{Compact: true},
	}
	got := GenerateUpdateTemplate(dialect.SQLite, req)
	want := `UPDATE "users" SET "name" = ?, "email" = ? WHERE "id" = ?;`
	if normalizeWhitespace(got) != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSelectWhereNullIsNull(t *testing.T) {
	req := Request{
		Operation: OpSelectWhere,
		Table:     "t",
		Columns:   []string{"id"},
		Source:    WithValues,
		Values:    []dbvalue.Value{dbvalue.Null},
		PKIndices: []int{0},
		Options:   Options{Compact: true},
	}
	got := GenerateSelectWhere(dialect.SQLite, req)
	want := `SELECT * FROM "t" WHERE "id" IS NULL;`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if lit := dialect.SQLite.ValueToLiteral(dbvalue.Null); lit != "NULL" {
		t.Fatalf("ValueToLiteral(Null) = %q, want NULL", lit)
	}
}

func TestS5UpdateTemplateQuestionMarkDoubleQuote(t *testing.T) {
	req := TemplateRequest{
		Table: "users",
		Columns: []schema.ColumnInfo{
			{Name: "id", IsPrimaryKey: true},
			{Name: "name"},
			{Name: "email"},
		},
		Options: Options{Compact: true},
	}
	got := normalizeWhitespace(GenerateUpdateTemplate(dialect.SQLite, req))
	want := `UPDATE "users" SET "name" = ?, "email" = ? WHERE "id" = ?;`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
