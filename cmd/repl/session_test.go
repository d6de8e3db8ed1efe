package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, engine string, params bool) (*Session, *bytes.Buffer) {
	t.Helper()
	cfg, err := Config{Engine: engine, Parameterize: &params, HistoryFile: "-"}.withDefaults()
	require.NoError(t, err)
	s, err := NewSession(cfg, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	out := &bytes.Buffer{}
	s.out = out
	return s, out
}

func execAll(t *testing.T, s *Session, commands ...string) {
	t.Helper()
	for _, cmd := range commands {
		require.NoError(t, s.Execute(cmd), "command %q", cmd)
	}
}

// inlineSQL runs commands on a postgres session without bind parameters.
func inlineSQL(t *testing.T, commands ...string) string {
	t.Helper()
	s, _ := newTestSession(t, "postgres", false)
	execAll(t, s, commands...)
	sql, err := s.GenerateSQL()
	require.NoError(t, err)
	return sql
}

func TestSelectCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		commands []string
		want     string
	}{
		{
			name:     "bare from",
			commands: []string{"from users"},
			want:     `SELECT * FROM "users"`,
		},
		{
			name: "projection filter order limit",
			commands: []string{
				"from users",
				"select users.id, users.name",
				"where users.age > 18",
				"order users.name desc",
				"limit 10",
				"offset 20",
			},
			want: `SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."age" > 18 ORDER BY "users"."name" DESC LIMIT 10 OFFSET 20`,
		},
		{
			name:     "bare columns resolve against from",
			commands: []string{"from users", "select id", "where active = true"},
			want:     `SELECT "users"."id" FROM "users" WHERE "users"."active" = TRUE`,
		},
		{
			name:     "where conditions are anded",
			commands: []string{"from users", "where users.active = true", "where users.deleted_at is null"},
			want:     `SELECT * FROM "users" WHERE "users"."active" = TRUE AND "users"."deleted_at" IS NULL`,
		},
		{
			name:     "aliased from",
			commands: []string{"from users u", "select u.id"},
			want:     `SELECT "u"."id" FROM "users" AS "u"`,
		},
		{
			name:     "inner join",
			commands: []string{"from users", "join posts on users.id = posts.user_id"},
			want:     `SELECT * FROM "users" INNER JOIN "posts" ON "users"."id" = "posts"."user_id"`,
		},
		{
			name:     "left join",
			commands: []string{"from users", "left join posts on users.id = posts.user_id"},
			want:     `SELECT * FROM "users" LEFT OUTER JOIN "posts" ON "users"."id" = "posts"."user_id"`,
		},
		{
			name: "group and having",
			commands: []string{
				"from users",
				"select users.role, count(users.id) as n",
				"group users.role",
				"having count(users.id) > 5",
			},
			want: `SELECT "users"."role", COUNT("users"."id") AS "n" FROM "users" GROUP BY "users"."role" HAVING COUNT("users"."id") > 5`,
		},
		{
			name:     "distinct",
			commands: []string{"from users", "select users.name", "distinct"},
			want:     `SELECT DISTINCT "users"."name" FROM "users"`,
		},
		{
			name:     "distinct on",
			commands: []string{"from users", "distinct on users.email"},
			want:     `SELECT DISTINCT ON ("users"."email") * FROM "users"`,
		},
		{
			name:     "locking",
			commands: []string{"from users", "for update", "skip locked"},
			want:     `SELECT * FROM "users" FOR UPDATE SKIP LOCKED`,
		},
		{
			name:     "named window",
			commands: []string{"from users", "window w partition by users.role", "select row_number() over w"},
			want:     `SELECT ROW_NUMBER() OVER "w" FROM "users" WINDOW "w" AS (PARTITION BY "users"."role")`,
		},
		{
			name:     "union",
			commands: []string{"from users", "select users.id", "union", "from admins", "select admins.id"},
			want:     `( SELECT "users"."id" FROM "users" UNION SELECT "admins"."id" FROM "admins" )`,
		},
		{
			name:     "cte",
			commands: []string{"from users", "where users.active = true", "with active_users", "from active_users"},
			want:     `WITH "active_users" AS (SELECT * FROM "users" WHERE "users"."active" = TRUE) SELECT * FROM "active_users"`,
		},
		{
			name: "lateral join of a pushed query",
			commands: []string{
				"table users",
				"from posts",
				"select posts.title",
				"where posts.user_id = users.id",
				"with p",
				"from users",
				"lateral left join p on true",
			},
			want: `SELECT * FROM "users" LEFT OUTER JOIN LATERAL (SELECT "posts"."title" FROM "posts" WHERE "posts"."user_id" = "users"."id") AS "p" ON TRUE`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, inlineSQL(t, tt.commands...))
		})
	}
}

func TestParameterizedOutput(t *testing.T) {
	t.Parallel()
	s, out := newTestSession(t, "postgres", true)
	execAll(t, s, "from users", "where users.id = 1")
	out.Reset()

	require.NoError(t, s.Execute("sql"))
	assert.Equal(t, "  SELECT * FROM \"users\" WHERE \"users\".\"id\" = $1;\n  Params: [1]\n", out.String())

	require.NoError(t, s.Execute("params"))
	out.Reset()
	require.NoError(t, s.Execute("sql"))
	assert.Equal(t, "  SELECT * FROM \"users\" WHERE \"users\".\"id\" = 1;\n", out.String())
}

func TestEngineSwitch(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "postgres", true)
	execAll(t, s, "from users", "where users.id = 1", "engine mysql")

	sql, err := s.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`id` = ?", sql)

	assert.Error(t, s.Execute("engine oracle"))
	assert.Equal(t, "mysql", s.engine)
}

func TestSQLiteRejectsLocking(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "sqlite", true)
	execAll(t, s, "from users", "for update")
	_, err := s.GenerateSQL()
	assert.Error(t, err)
}

func TestDMLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		commands  []string
		want      string
		wantBinds []any
	}{
		{
			name:      "insert",
			commands:  []string{"insert into users", "columns name, email", "values 'Alice', 'a@example.com'"},
			want:      `INSERT INTO "users" ("name", "email") VALUES ($1, $2)`,
			wantBinds: []any{"Alice", "a@example.com"},
		},
		{
			name: "insert multiple rows returning",
			commands: []string{
				"insert into users",
				"columns name",
				"values 'Alice'",
				"values 'Bob'",
				"returning id",
			},
			want:      `INSERT INTO "users" ("name") VALUES ($1), ($2) RETURNING "users"."id"`,
			wantBinds: []any{"Alice", "Bob"},
		},
		{
			name: "on conflict do nothing",
			commands: []string{
				"insert into users",
				"columns email",
				"values 'a@example.com'",
				"on conflict (email) do nothing",
			},
			want:      `INSERT INTO "users" ("email") VALUES ($1) ON CONFLICT ("email") DO NOTHING`,
			wantBinds: []any{"a@example.com"},
		},
		{
			name:      "update",
			commands:  []string{"update users", "set name = 'Bob'", "where id = 1"},
			want:      `UPDATE "users" SET "name" = $1 WHERE "users"."id" = $2`,
			wantBinds: []any{"Bob", 1},
		},
		{
			name:      "delete returning",
			commands:  []string{"delete from users", "where id = 1", "returning id"},
			want:      `DELETE FROM "users" WHERE "users"."id" = $1 RETURNING "users"."id"`,
			wantBinds: []any{1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, _ := newTestSession(t, "postgres", true)
			execAll(t, s, tt.commands...)
			q, err := s.compile(s.visitor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.SQL)
			assert.Equal(t, tt.wantBinds, q.Binds)
		})
	}
}

func TestDMLErrors(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "postgres", true)

	assert.Error(t, s.Execute("columns name"), "columns without insert")
	assert.Error(t, s.Execute("set name = 1"), "set without update")
	assert.Error(t, s.Execute("returning id"), "returning without DML")

	execAll(t, s, "insert into users", "columns name, email")
	assert.Error(t, s.Execute("values 'Alice'"), "value count mismatch")
	assert.Error(t, s.Execute("where id = 1"), "where on insert")
	assert.Error(t, s.Execute("on conflict email do nothing"))

	execAll(t, s, "update users")
	assert.Error(t, s.Execute("set count(id) = 1"), "non-column target")
}

func TestSoftdeletePluginToggles(t *testing.T) {
	t.Parallel()
	s, out := newTestSession(t, "postgres", false)
	execAll(t, s, "from users", "plugin softdelete")
	assert.Contains(t, out.String(), "Soft-delete enabled (column: deleted_at)")

	sql, err := s.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."deleted_at" IS NULL`, sql)

	execAll(t, s, "plugin softdelete removed_at on posts", "join posts on users.id = posts.user_id")
	sql, err = s.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" INNER JOIN "posts" ON "users"."id" = "posts"."user_id" WHERE "posts"."removed_at" IS NULL`, sql)

	execAll(t, s, "plugin off softdelete")
	sql, err = s.GenerateSQL()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" INNER JOIN "posts" ON "users"."id" = "posts"."user_id"`, sql)

	assert.Error(t, s.Execute("plugin off softdelete"))
	assert.Error(t, s.Execute("plugin nosuch"))
}

func TestSoftdeleteArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args   string
		status string
		ok     bool
	}{
		{"", "column: deleted_at", true},
		{"removed_at", "column: removed_at", true},
		{"removed_at on users posts", "column: removed_at, tables: users, posts", true},
		{"posts.removed_at, users.deleted_at", "posts.removed_at, users.deleted_at", true},
		{"users.", "", false},
		{"a b", "", false},
		{"on users", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			t.Parallel()
			s, _ := newTestSession(t, "postgres", false)
			err := configureSoftdelete(s, tt.args)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			entry, ok := s.plugins.get("softdelete")
			require.True(t, ok)
			assert.Equal(t, tt.status, entry.status())
		})
	}
}

func TestExprCommand(t *testing.T) {
	t.Parallel()
	s, out := newTestSession(t, "postgres", false)
	execAll(t, s, "table users")
	out.Reset()

	require.NoError(t, s.Execute("expr users.age between 18 and 30"))
	assert.Equal(t, "  \"users\".\"age\" BETWEEN 18 AND 30;\n", out.String())

	assert.ErrorContains(t, s.Execute("expr nope.id = 1"), `unknown table or alias "nope"`)
}

func TestASTSummary(t *testing.T) {
	t.Parallel()
	s, out := newTestSession(t, "postgres", true)
	execAll(t, s, "from users", "select users.id", "where users.id = 1", "limit 5", "plugin softdelete")
	out.Reset()

	require.NoError(t, s.Execute("ast"))
	got := out.String()
	assert.Contains(t, got, `FROM: "users"`)
	assert.Contains(t, got, `SELECT: "users"."id"`)
	assert.Contains(t, got, "WHERE: 1 condition(s)")
	assert.Contains(t, got, "LIMIT: 5")
	assert.Contains(t, got, "Plugin: softdelete (column: deleted_at)")
	assert.Contains(t, got, "Engine: postgres")
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "postgres", true)

	assert.ErrorIs(t, s.Execute("select users.id"), errNoQuery)
	assert.ErrorIs(t, s.Execute("sql"), errNoQuery)
	assert.ErrorIs(t, s.Execute("exec"), errNotConnected)
	assert.ErrorContains(t, s.Execute("frobnicate"), "unknown command: frobnicate")
	assert.Error(t, s.Execute("limit -1"))
	assert.NoError(t, s.Execute("   "))
}

func TestResetClearsState(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "postgres", true)
	execAll(t, s, "from users", "with u", "from u", "union", "from users", "reset")
	assert.Empty(t, s.ctes)
	assert.Empty(t, s.setOps)
	assert.Nil(t, s.query)
	assert.Contains(t, s.tables, "users", "registered tables survive a reset")
	assert.ErrorIs(t, s.Execute("sql"), errNoQuery)
}

func TestCommandNames(t *testing.T) {
	t.Parallel()
	s, _ := newTestSession(t, "postgres", true)
	names := s.commandNames()
	assert.Contains(t, names, "from")
	assert.Contains(t, names, "left join")
	assert.Contains(t, names, "exit")
	assert.NotContains(t, names, "tosql", "hidden commands are not offered")
	assert.IsNonDecreasing(t, names)
}
