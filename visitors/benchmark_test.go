package visitors

import (
	"testing"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/managers"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins/softdelete"
)

func reportQuery() *managers.SelectManager {
	users := nodes.NewTable("users")
	posts := nodes.NewTable("posts")
	m := managers.NewSelectManager(users).
		Select(users.Col("name"), nodes.Count(posts.Col("id")).As("post_count"))
	m.Join(posts, nodes.LeftOuterJoin).On(users.Col("id").Eq(posts.Col("user_id")))
	return m.
		Where(users.Col("active").Eq(true), users.Col("role").In("admin", "editor")).
		Group(users.Col("name")).
		Having(nodes.Count(posts.Col("id")).Gt(5)).
		Order(users.Col("name").Asc()).
		Limit(20)
}

// BenchmarkRegistryBuild measures building predicates by kind and
// compiling them.
func BenchmarkRegistryBuild(b *testing.B) {
	id := nodes.NewTable("users").Col("id")
	vals := []nodes.Node{nodes.Literal(1), nodes.Literal(2), nodes.Literal(3)}
	v := NewPostgresVisitor()

	for b.Loop() {
		n := nodes.Build(nodes.KindAnd,
			nodes.Build(nodes.KindIn, append([]nodes.Node{id}, vals...)...),
			nodes.Build(nodes.KindNotEqual, id, nodes.Literal(7)),
		)
		_, _ = v.Compile(n)
	}
}

// BenchmarkDialectOverrides compiles expressions that every dialect
// renders through its override table.
func BenchmarkDialectOverrides(b *testing.B) {
	users := nodes.NewTable("users")
	name := users.Col("name")
	stmt := nodes.NewSelectStatement()
	stmt.Cores[0].Source.Left = users
	stmt.Cores[0].Wheres = []nodes.Node{
		name.Matches("a%").IgnoringCase(),
		name.IsDistinctFrom("bob"),
		name.MatchesRegexp("^b").IgnoringCase(),
	}
	stmt.Orders = []nodes.Node{name.Desc().NullsLast()}

	for _, v := range []*Visitor{NewPostgresVisitor(), NewMySQLVisitor(), NewSQLiteVisitor()} {
		b.Run(v.Adapter().Name(), func(b *testing.B) {
			for b.Loop() {
				_, _ = v.Compile(stmt)
			}
		})
	}
}

// BenchmarkAttributeHook measures a visitor whose column references go
// through the attribute hook.
func BenchmarkAttributeHook(b *testing.B) {
	m := reportQuery()
	v := NewPostgresVisitor(WithAttributeOverride(func(a *nodes.Attribute, c *collector.Collector, _ nodes.VisitFunc) error {
		c.Add(c.QuoteColumnName(a.Name))
		return nil
	}))

	for b.Loop() {
		_, _ = v.Compile(m)
	}
}

func BenchmarkFormatting(b *testing.B) {
	m := reportQuery()
	v := NewPostgresVisitor(WithFormatting())

	for b.Loop() {
		_, _ = v.Compile(m)
	}
}

// BenchmarkSetOperationChain compiles eight UNION legs, each filtered by
// the soft-delete transformer.
func BenchmarkSetOperationChain(b *testing.B) {
	var chain nodes.Node
	for i := range 8 {
		t := nodes.NewTable("events_" + string(rune('a'+i)))
		leg := managers.NewSelectManager(t).Select(t.Col("id")).Use(softdelete.New())
		if chain == nil {
			chain = leg
			continue
		}
		chain = nodes.Build(nodes.KindUnion, chain, leg)
	}
	v := NewPostgresVisitor()

	for b.Loop() {
		_, _ = v.Compile(chain)
	}
}

// BenchmarkSharedVisitor compiles from many goroutines with one visitor.
func BenchmarkSharedVisitor(b *testing.B) {
	m := reportQuery()
	v := NewMySQLVisitor()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = v.Compile(m)
		}
	})
}
