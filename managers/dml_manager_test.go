package managers

import (
	"errors"
	"testing"

	"github.com/bawdo/relal/internal/testutil"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
	"github.com/bawdo/relal/visitors"
)

// --- InsertManager ---

func TestInsertManagerSQL(t *testing.T) {
	t.Parallel()
	pg := visitors.NewPostgresVisitor()
	email := users.Col("email")

	tests := []struct {
		name string
		m    func() *InsertManager
		want string
	}{
		{
			name: "multi-row values",
			m: func() *InsertManager {
				return NewInsertManager(users).
					Columns(users.Col("name"), email).
					Values("Alice", "a@example.com").
					Values("Bob", "b@example.com")
			},
			want: `INSERT INTO "users" ("name", "email") VALUES ($1, $2), ($3, $4)`,
		},
		{
			name: "default values",
			m:    func() *InsertManager { return NewInsertManager(users) },
			want: `INSERT INTO "users" DEFAULT VALUES`,
		},
		{
			name: "from select",
			m: func() *InsertManager {
				archive := nodes.NewTable("archive")
				sel := NewSelectManager(users).Select(users.Col("id")).Where(users.Col("active").Eq(false))
				return NewInsertManager(archive).Columns(archive.Col("id")).FromSelect(sel)
			},
			want: `INSERT INTO "archive" ("id") SELECT "users"."id" FROM "users" WHERE "users"."active" = $1`,
		},
		{
			name: "on conflict do nothing",
			m: func() *InsertManager {
				return NewInsertManager(users).Columns(email).Values("a@example.com").OnConflict(email).DoNothing()
			},
			want: `INSERT INTO "users" ("email") VALUES ($1) ON CONFLICT ("email") DO NOTHING`,
		},
		{
			name: "on conflict do update",
			m: func() *InsertManager {
				return NewInsertManager(users).
					Columns(email, users.Col("name")).
					Values("a@example.com", "Alice").
					OnConflict(email).
					DoUpdate(nodes.NewAssignment(users.Col("name"), nodes.NewSqlLiteral(`EXCLUDED."name"`))).
					Where(users.Col("locked").Eq(false))
			},
			want: `INSERT INTO "users" ("email", "name") VALUES ($1, $2) ON CONFLICT ("email") DO UPDATE SET "name" = EXCLUDED."name" WHERE "users"."locked" = $3`,
		},
		{
			name: "returning",
			m: func() *InsertManager {
				return NewInsertManager(users).Columns(email).Values("a@example.com").Returning(users.Col("id"))
			},
			want: `INSERT INTO "users" ("email") VALUES ($1) RETURNING "users"."id"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, pg, tt.m(), tt.want)
		})
	}
}

func TestInsertManagerMySQLBinds(t *testing.T) {
	t.Parallel()
	m := NewInsertManager(users).Columns(users.Col("name")).Values("Alice")

	sql, binds, err := m.ToSQL(visitors.NewMySQLVisitor())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "INSERT INTO `users` (`name`) VALUES (?)")
	if len(binds) != 1 || binds[0] != "Alice" {
		t.Errorf("unexpected binds %v", binds)
	}
}

func TestInsertDoUpdateWithoutAssignmentsIsMalformed(t *testing.T) {
	t.Parallel()
	m := NewInsertManager(users).Values(1).OnConflict().DoUpdate().Done()

	_, err := m.Compile(visitors.NewPostgresVisitor())
	if !errors.Is(err, nodes.ErrMalformedNode) {
		t.Fatalf("expected ErrMalformedNode, got %v", err)
	}
}

// --- UpdateManager ---

func TestUpdateManagerSQL(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(users).
		Set(users.Col("name"), "Bob").
		Set(users.Col("visits"), users.Col("visits").Plus(1)).
		Where(users.Col("id").Eq(1)).
		Returning(users.Col("id"))

	sql, binds, err := m.ToSQL(visitors.NewPostgresVisitor())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `UPDATE "users" SET "name" = $1, "visits" = ("users"."visits" + $2) WHERE "users"."id" = $3 RETURNING "users"."id"`)
	testutil.AssertEqual(t, len(binds), 3)
}

func TestUpdateManagerTypedColumnCasts(t *testing.T) {
	t.Parallel()
	m := NewUpdateManager(users).Set(users.Col("born").Typed("date"), "2001-02-03")
	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), m, `UPDATE "users" SET "born" = CAST($1 AS date)`)
}

func TestUpdateWithoutSetIsMalformed(t *testing.T) {
	t.Parallel()
	_, err := NewUpdateManager(users).Where(users.Col("id").Eq(1)).Compile(visitors.NewPostgresVisitor())
	if !errors.Is(err, nodes.ErrMalformedNode) {
		t.Fatalf("expected ErrMalformedNode, got %v", err)
	}
}

// --- DeleteManager ---

func TestDeleteManagerSQL(t *testing.T) {
	t.Parallel()
	m := NewDeleteManager(users).Where(users.Col("id").Eq(1)).Returning(users.Col("email"))
	testutil.AssertSQL(t, visitors.NewSQLiteVisitor(), m, `DELETE FROM "users" WHERE "users"."id" = ? RETURNING "users"."email"`)
}

type tenantScope struct {
	plugins.BaseTransformer
}

func (tenantScope) TransformUpdate(s *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	s.Wheres = append(s.Wheres, users.Col("tenant_id").Eq(7))
	return s, nil
}

func (tenantScope) TransformDelete(s *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	s.Wheres = append(s.Wheres, users.Col("tenant_id").Eq(7))
	return s, nil
}

func (tenantScope) TransformInsert(s *nodes.InsertStatement) (*nodes.InsertStatement, error) {
	return nil, errors.New("inserts are not scoped")
}

func TestDMLTransformers(t *testing.T) {
	t.Parallel()
	pg := visitors.NewPostgresVisitor()

	del := NewDeleteManager(users).Use(tenantScope{})
	testutil.AssertSQL(t, pg, del, `DELETE FROM "users" WHERE "users"."tenant_id" = $1`)
	testutil.AssertEqual(t, len(del.Statement.Wheres), 0)

	upd := NewUpdateManager(users).Set(users.Col("name"), "x").Use(tenantScope{})
	testutil.AssertSQL(t, pg, upd, `UPDATE "users" SET "name" = $1 WHERE "users"."tenant_id" = $2`)

	_, err := NewInsertManager(users).Values(1).Use(tenantScope{}).Compile(pg)
	testutil.AssertError(t, err)
}
