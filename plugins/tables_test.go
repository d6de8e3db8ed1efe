package plugins

import (
	"testing"

	"github.com/bawdo/relal/nodes"
)

func coreFrom(from nodes.Node, joins ...*nodes.JoinNode) *nodes.SelectCore {
	core := nodes.NewSelectCore()
	core.Source.Left = from
	core.Source.Right = joins
	return core
}

func TestCollectTablesFromTable(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")

	refs := CollectTables(coreFrom(users))
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	if refs[0].Name != "users" {
		t.Errorf("expected name 'users', got %q", refs[0].Name)
	}
	if refs[0].Relation != users {
		t.Error("expected relation to be the table")
	}
}

func TestCollectTablesFromAlias(t *testing.T) {
	t.Parallel()
	u := nodes.NewTable("users").Alias("u")

	refs := CollectTables(coreFrom(u))
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	if refs[0].Name != "users" {
		t.Errorf("expected underlying name 'users', got %q", refs[0].Name)
	}
	if refs[0].Relation != u {
		t.Error("expected relation to be the alias")
	}
}

func TestCollectTablesIncludesJoins(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	posts := nodes.NewTable("posts")
	comments := nodes.NewTable("comments")
	core := coreFrom(users,
		nodes.NewJoin(nodes.InnerJoin, posts, nil),
		nodes.NewJoin(nodes.LeftOuterJoin, comments, nil),
	)

	refs := CollectTables(core)
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	if names[0] != "users" || names[1] != "posts" || names[2] != "comments" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestCollectTablesSkipsSubqueryAndLateral(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	sub := nodes.NewSelectStatement()
	sub.Cores[0].Source.Left = nodes.NewTable("posts")
	core := coreFrom(users,
		nodes.NewJoin(nodes.InnerJoin, sub, nil),
		nodes.NewJoin(nodes.InnerJoin, nodes.NewLateral(sub), nil),
		nodes.NewJoin(nodes.StringJoin, nodes.NewSqlLiteral("JOIN x ON true"), nil),
	)

	refs := CollectTables(core)
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref (subquery skipped), got %d", len(refs))
	}
	if refs[0].Name != "users" {
		t.Errorf("expected 'users', got %q", refs[0].Name)
	}
}

func TestCollectTablesNilFrom(t *testing.T) {
	t.Parallel()
	if refs := CollectTables(nodes.NewSelectCore()); len(refs) != 0 {
		t.Errorf("expected 0 refs, got %d", len(refs))
	}
	if refs := CollectTables(&nodes.SelectCore{}); len(refs) != 0 {
		t.Errorf("expected 0 refs without a source, got %d", len(refs))
	}
}
