package relal_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bawdo/relal"
	"github.com/bawdo/relal/nodes"
)

func TestFromStartsASelect(t *testing.T) {
	users := relal.NewTable("users")

	query := relal.From(users).
		Select(users.Col("id"), users.Col("name")).
		Where(users.Col("active").Eq(relal.Literal(true))).
		Order(users.Col("name").Asc()).
		Limit(10)

	sql, binds, err := query.ToSQL(relal.NewPostgresVisitor(relal.WithoutParams()))
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	expected := `SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."active" = TRUE ORDER BY "users"."name" ASC LIMIT 10`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(binds) != 0 {
		t.Errorf("Expected no binds with inline values, got %v", binds)
	}
}

func TestParameterisedQuery(t *testing.T) {
	users := relal.NewTable("users")

	query := relal.NewSelect(users).
		Select(users.Col("id"), users.Col("name")).
		Where(users.Col("name").Eq(relal.BindParam("Alice"))).
		Where(users.Col("age").Gt(18))

	sql, params, err := query.ToSQL(relal.NewPostgresVisitor())
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	expected := `SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."name" = $1 AND "users"."age" > $2`
	if sql != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, sql)
	}
	if len(params) != 2 || params[0] != "Alice" || params[1] != 18 {
		t.Errorf("Expected [Alice 18], got %v", params)
	}
}

func TestAggregateFunctions(t *testing.T) {
	users := relal.NewTable("users")

	query := relal.From(users).
		Select(
			users.Col("department"),
			relal.Count(relal.Star()).As("total"),
			relal.Avg(users.Col("salary")).As("avg_salary"),
		).
		Group(users.Col("department"))

	sql, _, err := query.ToSQL(relal.NewPostgresVisitor())
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if !strings.Contains(sql, `COUNT(*) AS "total"`) {
		t.Errorf("Expected COUNT(*), got: %s", sql)
	}
	if !strings.Contains(sql, `AVG("users"."salary") AS "avg_salary"`) {
		t.Errorf("Expected AVG, got: %s", sql)
	}
}

func TestCompileByDialectName(t *testing.T) {
	users := relal.NewTable("users")
	query := relal.From(users).
		Select(users.Col("name")).
		Where(users.Col("active").Eq(true))

	tests := []struct {
		dialect  string
		expected string
	}{
		{"postgres", `SELECT "users"."name" FROM "users" WHERE "users"."active" = $1`},
		{"mysql", "SELECT `users`.`name` FROM `users` WHERE `users`.`active` = ?"},
		{"sqlite", `SELECT "users"."name" FROM "users" WHERE "users"."active" = ?`},
		{"ansi", `SELECT "users"."name" FROM "users" WHERE "users"."active" = $1`},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			q, err := relal.Compile(query, tt.dialect)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if q.SQL != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, q.SQL)
			}
			if len(q.Binds) != 1 || q.Binds[0] != true {
				t.Errorf("Expected [true], got %v", q.Binds)
			}
		})
	}

	if _, err := relal.Compile(query, "oracle"); err == nil {
		t.Error("Expected an error for an unknown dialect")
	}
}

func TestFeatureNotAvailable(t *testing.T) {
	users := relal.NewTable("users")
	query := relal.From(users).Where(users.Col("name").MatchesRegexp("^A"))

	_, err := relal.Compile(query, "ansi")
	if !errors.Is(err, nodes.ErrFeatureNotAvailable) {
		t.Fatalf("Expected ErrFeatureNotAvailable, got %v", err)
	}
}

func TestBuildThroughRegistry(t *testing.T) {
	users := relal.NewTable("users")
	sub := relal.From(users).Select(users.Col("id"))

	q, err := relal.Compile(relal.Build(nodes.KindExists, sub), "postgres")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	expected := `EXISTS (SELECT "users"."id" FROM "users")`
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
}

func TestDMLOperations(t *testing.T) {
	users := relal.NewTable("users")
	visitor := relal.NewPostgresVisitor()

	sql, _, err := relal.NewInsert(users).
		Columns(users.Col("name"), users.Col("email")).
		Values("Alice", "alice@example.com").
		ToSQL(visitor)
	if err != nil {
		t.Fatalf("INSERT ToSQL failed: %v", err)
	}
	if sql != `INSERT INTO "users" ("name", "email") VALUES ($1, $2)` {
		t.Errorf("Unexpected INSERT: %s", sql)
	}

	sql, _, err = relal.NewUpdate(users).
		Set(users.Col("status"), "inactive").
		Where(users.Col("id").Eq(1)).
		ToSQL(visitor)
	if err != nil {
		t.Fatalf("UPDATE ToSQL failed: %v", err)
	}
	if sql != `UPDATE "users" SET "status" = $1 WHERE "users"."id" = $2` {
		t.Errorf("Unexpected UPDATE: %s", sql)
	}

	sql, _, err = relal.NewDelete(users).
		Where(users.Col("status").Eq("deleted")).
		ToSQL(visitor)
	if err != nil {
		t.Fatalf("DELETE ToSQL failed: %v", err)
	}
	if sql != `DELETE FROM "users" WHERE "users"."status" = $1` {
		t.Errorf("Unexpected DELETE: %s", sql)
	}
}
