package managers

import (
	"errors"
	"testing"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/internal/testutil"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
	"github.com/bawdo/relal/visitors"
)

var (
	users = nodes.NewTable("users")
	posts = nodes.NewTable("posts")
)

// --- Construction ---

func TestNewSelectManagerSetsFrom(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users)

	if m.Core.Source.Left != users {
		t.Error("expected FROM to be the users table")
	}
	if len(m.Ast.Cores) != 1 || m.Ast.Cores[0] != m.Core {
		t.Error("expected a single core that the manager writes to")
	}
	if len(m.Core.Projections) != 0 || len(m.Core.Wheres) != 0 || len(m.Core.Source.Right) != 0 {
		t.Error("expected an empty core")
	}
}

func TestNewSelectManagerNilFrom(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(nil)
	if m.Core.Source.Left != nil {
		t.Error("expected nil FROM")
	}
	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), m.Select(nodes.NewSqlLiteral("1")), "SELECT 1")
}

func TestSelectReplacesProjections(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users)
	m.Select(users.Col("id"))
	m.Project(users.Col("name"), users.Col("email"))

	if len(m.Core.Projections) != 2 {
		t.Fatalf("expected 2 projections after replacement, got %d", len(m.Core.Projections))
	}
}

func TestSelectManagerIsASelectStatement(t *testing.T) {
	t.Parallel()
	var n nodes.Node = NewSelectManager(users)
	if n.Kind() != nodes.KindSelectStatement {
		t.Errorf("expected kind SelectStatement, got %s", n.Kind())
	}
}

// --- Rendering ---

func TestSelectManagerSQL(t *testing.T) {
	t.Parallel()
	pg := visitors.NewPostgresVisitor()

	tests := []struct {
		name string
		m    func() *SelectManager
		want string
	}{
		{
			name: "select all",
			m:    func() *SelectManager { return NewSelectManager(users) },
			want: `SELECT * FROM "users"`,
		},
		{
			name: "where order limit offset",
			m: func() *SelectManager {
				return NewSelectManager(users).
					Select(users.Col("id"), users.Col("name")).
					Where(users.Col("active").Eq(true)).
					Order(users.Col("name").Asc()).
					Limit(10).
					Offset(20)
			},
			want: `SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."active" = $1 ORDER BY "users"."name" ASC LIMIT $2 OFFSET $3`,
		},
		{
			name: "multiple wheres are ANDed",
			m: func() *SelectManager {
				return NewSelectManager(users).
					Where(users.Col("active").Eq(true)).
					Where(users.Col("age").Gt(18), users.Col("deleted_at").Eq(nil))
			},
			want: `SELECT * FROM "users" WHERE "users"."active" = $1 AND "users"."age" > $2 AND "users"."deleted_at" IS NULL`,
		},
		{
			name: "take and skip",
			m:    func() *SelectManager { return NewSelectManager(users).Take(5).Skip(10) },
			want: `SELECT * FROM "users" LIMIT $1 OFFSET $2`,
		},
		{
			name: "inner join",
			m: func() *SelectManager {
				return NewSelectManager(users).
					Join(posts).On(users.Col("id").Eq(posts.Col("user_id")))
			},
			want: `SELECT * FROM "users" INNER JOIN "posts" ON "users"."id" = "posts"."user_id"`,
		},
		{
			name: "join without condition",
			m: func() *SelectManager {
				m := NewSelectManager(users)
				m.Join(posts)
				return m
			},
			want: `SELECT * FROM "users" INNER JOIN "posts"`,
		},
		{
			name: "outer joins",
			m: func() *SelectManager {
				on := users.Col("id").Eq(posts.Col("user_id"))
				m := NewSelectManager(users)
				m.OuterJoin(posts).On(on)
				m.RightOuterJoin(posts).On(on)
				m.FullOuterJoin(posts).On(on)
				return m
			},
			want: `SELECT * FROM "users" LEFT OUTER JOIN "posts" ON "users"."id" = "posts"."user_id" RIGHT OUTER JOIN "posts" ON "users"."id" = "posts"."user_id" FULL OUTER JOIN "posts" ON "users"."id" = "posts"."user_id"`,
		},
		{
			name: "cross and string joins",
			m: func() *SelectManager {
				return NewSelectManager(users).
					CrossJoin(posts).
					StringJoin(`JOIN "tags" ON "tags"."id" = 1`)
			},
			want: `SELECT * FROM "users" CROSS JOIN "posts" JOIN "tags" ON "tags"."id" = 1`,
		},
		{
			name: "aliased table",
			m: func() *SelectManager {
				u := users.Alias("u")
				return NewSelectManager(u).Select(u.Col("id"))
			},
			want: `SELECT "u"."id" FROM "users" AS "u"`,
		},
		{
			name: "distinct",
			m:    func() *SelectManager { return NewSelectManager(users).Select(users.Col("name")).Distinct() },
			want: `SELECT DISTINCT "users"."name" FROM "users"`,
		},
		{
			name: "distinct turned off",
			m:    func() *SelectManager { return NewSelectManager(users).Distinct().Distinct(false) },
			want: `SELECT * FROM "users"`,
		},
		{
			name: "distinct on",
			m:    func() *SelectManager { return NewSelectManager(users).DistinctOn(users.Col("email")) },
			want: `SELECT DISTINCT ON ("users"."email") * FROM "users"`,
		},
		{
			name: "group and having",
			m: func() *SelectManager {
				return NewSelectManager(users).
					Select(users.Col("role"), users.Col("id").Count().As("n")).
					Group(users.Col("role")).
					Having(users.Col("id").Count().Gt(5))
			},
			want: `SELECT "users"."role", COUNT("users"."id") AS "n" FROM "users" GROUP BY "users"."role" HAVING COUNT("users"."id") > $1`,
		},
		{
			name: "lock",
			m:    func() *SelectManager { return NewSelectManager(users).ForUpdate().SkipLocked() },
			want: `SELECT * FROM "users" FOR UPDATE SKIP LOCKED`,
		},
		{
			name: "lock modes",
			m:    func() *SelectManager { return NewSelectManager(users).ForShare().ForNoKeyUpdate().ForKeyShare() },
			want: `SELECT * FROM "users" FOR KEY SHARE`,
		},
		{
			name: "skip locked without a mode",
			m:    func() *SelectManager { return NewSelectManager(users).SkipLocked() },
			want: `SELECT * FROM "users"`,
		},
		{
			name: "comment and hints",
			m: func() *SelectManager {
				return NewSelectManager(users).Comment("report */ x").Hint("SeqScan(users)").Hint("NoIndex")
			},
			want: `/* report * / x */ SELECT /*+ SeqScan(users) NoIndex */ * FROM "users"`,
		},
		{
			name: "common table expression",
			m: func() *SelectManager {
				active := NewSelectManager(users).Where(users.Col("active").Eq(true))
				return NewSelectManager(nodes.NewTable("active_users")).With("active_users", active)
			},
			want: `WITH "active_users" AS (SELECT * FROM "users" WHERE "users"."active" = $1) SELECT * FROM "active_users"`,
		},
		{
			name: "recursive cte with columns",
			m: func() *SelectManager {
				tree := nodes.NewTable("tree")
				seed := NewSelectManager(nil).Select(nodes.NewSqlLiteral("1"))
				return NewSelectManager(tree).WithRecursive("tree", seed, "n")
			},
			want: `WITH RECURSIVE "tree" ("n") AS (SELECT 1) SELECT * FROM "tree"`,
		},
		{
			name: "subquery in FROM",
			m: func() *SelectManager {
				sub := NewSelectManager(posts).Select(posts.Col("user_id"))
				return NewSelectManager(sub.As("p"))
			},
			want: `SELECT * FROM (SELECT "posts"."user_id" FROM "posts") AS "p"`,
		},
		{
			name: "in subquery",
			m: func() *SelectManager {
				sub := NewSelectManager(posts).Select(posts.Col("user_id"))
				return NewSelectManager(users).Where(users.Col("id").In(sub))
			},
			want: `SELECT * FROM "users" WHERE "users"."id" IN (SELECT "posts"."user_id" FROM "posts")`,
		},
		{
			name: "exists",
			m: func() *SelectManager {
				sub := NewSelectManager(posts).Where(posts.Col("user_id").Eq(users.Col("id")))
				return NewSelectManager(users).Where(sub.Exists())
			},
			want: `SELECT * FROM "users" WHERE EXISTS (SELECT * FROM "posts" WHERE "posts"."user_id" = "users"."id")`,
		},
		{
			name: "lateral join",
			m: func() *SelectManager {
				latest := NewSelectManager(posts).
					Select(posts.Col("title")).
					Where(posts.Col("user_id").Eq(users.Col("id"))).
					Order(posts.Col("created_at").Desc()).
					Limit(1)
				return NewSelectManager(users).LateralJoin(latest.As("p"), nodes.LeftOuterJoin).On(nodes.NewSqlLiteral("TRUE"))
			},
			want: `SELECT * FROM "users" LEFT OUTER JOIN LATERAL (SELECT "posts"."title" FROM "posts" WHERE "posts"."user_id" = "users"."id" ORDER BY "posts"."created_at" DESC LIMIT $1) AS "p" ON TRUE`,
		},
		{
			name: "window",
			m: func() *SelectManager {
				w := nodes.NewWindowDef("w").Partition(users.Col("role"))
				return NewSelectManager(users).Select(nodes.RowNumber().OverName("w")).Window(w)
			},
			want: `SELECT ROW_NUMBER() OVER "w" FROM "users" WINDOW "w" AS (PARTITION BY "users"."role")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, pg, tt.m(), tt.want)
		})
	}
}

func TestToSQLReturnsBindsInOrder(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users).
		Where(users.Col("name").Eq("Alice")).
		Where(users.Col("age").Between(18, 65)).
		Limit(3)

	sql, binds, err := m.ToSQL(visitors.NewMySQLVisitor())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "SELECT * FROM `users` WHERE `users`.`name` = ? AND `users`.`age` BETWEEN ? AND ? LIMIT ?")
	want := []any{"Alice", 18, 65, 3}
	if len(binds) != len(want) {
		t.Fatalf("expected %d binds, got %v", len(want), binds)
	}
	for i := range want {
		if binds[i] != want[i] {
			t.Errorf("bind %d: expected %v, got %v", i, want[i], binds[i])
		}
	}
}

func TestCompileIsRepeatable(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users).Where(users.Col("id").Eq(1))
	pg := visitors.NewPostgresVisitor()

	first, err := m.Compile(pg)
	testutil.AssertNoError(t, err)
	second, err := m.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, second.SQL, first.SQL)
	testutil.AssertEqual(t, len(second.Binds), 1)
}

func TestLateralJoinRequiresDialectSupport(t *testing.T) {
	t.Parallel()
	sub := NewSelectManager(posts)
	m := NewSelectManager(users).LateralJoin(sub).On(nodes.NewSqlLiteral("TRUE"))

	_, _, err := m.ToSQL(visitors.NewANSIVisitor())
	if !errors.Is(err, nodes.ErrFeatureNotAvailable) {
		t.Fatalf("expected ErrFeatureNotAvailable, got %v", err)
	}

	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), m,
		`SELECT * FROM "users" INNER JOIN LATERAL (SELECT * FROM "posts") ON TRUE`)
}

func TestDistinctOnRejectedOutsidePostgres(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users).DistinctOn(users.Col("email"))

	sql, binds, err := m.ToSQL(visitors.NewSQLiteVisitor())
	var fna *nodes.FeatureNotAvailableError
	if !errors.As(err, &fna) {
		t.Fatalf("expected FeatureNotAvailableError, got %v", err)
	}
	testutil.AssertEqual(t, fna.Feature, "DISTINCT ON")
	testutil.AssertEqual(t, sql, "")
	if binds != nil {
		t.Errorf("expected no binds on error, got %v", binds)
	}
}

func TestDistinctOnEmptyClears(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users).Distinct().DistinctOn()
	if m.Core.SetQuantifier != nil {
		t.Error("expected no set quantifier")
	}
}

// --- Set operations ---

func TestSetOperations(t *testing.T) {
	t.Parallel()
	admins := nodes.NewTable("admins")
	left := func() *SelectManager { return NewSelectManager(users).Select(users.Col("id")) }
	right := NewSelectManager(admins).Select(admins.Col("id"))

	tests := []struct {
		name string
		node nodes.Node
		want string
	}{
		{"union", left().Union(right), `( SELECT "users"."id" FROM "users" UNION SELECT "admins"."id" FROM "admins" )`},
		{"union all", left().UnionAll(right), `( SELECT "users"."id" FROM "users" UNION ALL SELECT "admins"."id" FROM "admins" )`},
		{"intersect", left().Intersect(right), `( SELECT "users"."id" FROM "users" INTERSECT SELECT "admins"."id" FROM "admins" )`},
		{"intersect all", left().IntersectAll(right), `( SELECT "users"."id" FROM "users" INTERSECT ALL SELECT "admins"."id" FROM "admins" )`},
		{"except", left().Except(right), `( SELECT "users"."id" FROM "users" EXCEPT SELECT "admins"."id" FROM "admins" )`},
		{"except all", left().ExceptAll(right), `( SELECT "users"."id" FROM "users" EXCEPT ALL SELECT "admins"."id" FROM "admins" )`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertRender(t, tt.node, tt.want)
		})
	}
}

func TestUnionChainsFlatten(t *testing.T) {
	t.Parallel()
	lit := func(s string) *SelectManager { return NewSelectManager(nil).Select(nodes.NewSqlLiteral(s)) }
	u := nodes.Build(nodes.KindUnion, lit("1").Union(lit("2")), lit("3").Union(lit("4")))
	testutil.AssertRender(t, u, "( SELECT 1 UNION SELECT 2 UNION SELECT 3 UNION SELECT 4 )")
}

// --- Transformers ---

func TestUseAppliesTransformersWithoutMutation(t *testing.T) {
	t.Parallel()
	tenant := plugins.SelectFunc(func(c *nodes.SelectCore) (*nodes.SelectCore, error) {
		c.Wheres = append(c.Wheres, users.Col("tenant_id").Eq(9))
		return c, nil
	})
	m := NewSelectManager(users).Where(users.Col("active").Eq(true)).Use(tenant)

	testutil.AssertEqual(t, len(m.Transformers()), 1)
	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), m,
		`SELECT * FROM "users" WHERE "users"."active" = $1 AND "users"."tenant_id" = $2`)
	testutil.AssertEqual(t, len(m.Core.Wheres), 1)
}

func TestTransformerErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	m := NewSelectManager(users).Use(plugins.SelectFunc(func(*nodes.SelectCore) (*nodes.SelectCore, error) {
		return nil, boom
	}))

	_, err := m.Compile(visitors.NewPostgresVisitor())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transformer error, got %v", err)
	}
}

func TestCloneStatementIsIndependent(t *testing.T) {
	t.Parallel()
	m := NewSelectManager(users).Where(users.Col("id").Eq(1))
	clone := m.CloneStatement()
	clone.Cores[0].Wheres = append(clone.Cores[0].Wheres, users.Col("id").Eq(2))
	clone.Cores[0].Source.Right = append(clone.Cores[0].Source.Right, nodes.NewJoin(nodes.CrossJoin, posts, nil))

	testutil.AssertEqual(t, len(m.Core.Wheres), 1)
	testutil.AssertEqual(t, len(m.Core.Source.Right), 0)
}

// --- Registry seam ---

type fetchFirst struct{ n nodes.Node }

func (f *fetchFirst) Kind() nodes.Kind { return nodes.KindLimit }

func (f *fetchFirst) Render(c *collector.Collector, visit nodes.VisitFunc) error {
	return nodes.Emit(c, visit, "FETCH FIRST ", f.n, " ROWS ONLY")
}

// Not parallel: replaces a process-wide registry entry.
func TestLimitIsBuiltThroughTheRegistry(t *testing.T) {
	prev := nodes.Register(nodes.KindLimit, func(ops ...nodes.Node) nodes.Node {
		return &fetchFirst{n: ops[0]}
	})
	t.Cleanup(func() { nodes.Register(nodes.KindLimit, prev) })

	m := NewSelectManager(users).Limit(5)
	testutil.AssertSQL(t, visitors.NewPostgresVisitor(), m, `SELECT * FROM "users" FETCH FIRST $1 ROWS ONLY`)
}
