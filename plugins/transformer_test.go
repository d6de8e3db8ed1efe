package plugins

import (
	"testing"

	"github.com/bawdo/relal/nodes"
)

// --- BaseTransformer no-op behaviour ---

func TestBaseTransformerSelect(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}
	users := nodes.NewTable("users")
	core := coreFrom(users)
	core.Projections = []nodes.Node{users.Col("id")}
	core.Wheres = []nodes.Node{users.Col("active").Eq(true)}

	result, err := bt.TransformSelect(core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != core {
		t.Error("expected BaseTransformer.TransformSelect to return input unchanged")
	}
}

func TestBaseTransformerInsert(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("name")},
		Values:  [][]nodes.Node{{nodes.Literal("Alice")}},
	}

	result, err := bt.TransformInsert(stmt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != stmt {
		t.Error("expected BaseTransformer.TransformInsert to return input unchanged")
	}
}

func TestBaseTransformerUpdate(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}
	users := nodes.NewTable("users")
	stmt := &nodes.UpdateStatement{
		Table: users,
		Assignments: []*nodes.AssignmentNode{
			nodes.NewAssignment(users.Col("name"), "Bob"),
		},
		Wheres: []nodes.Node{users.Col("id").Eq(1)},
	}

	result, err := bt.TransformUpdate(stmt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != stmt {
		t.Error("expected BaseTransformer.TransformUpdate to return input unchanged")
	}
}

func TestBaseTransformerDelete(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}
	users := nodes.NewTable("users")
	stmt := &nodes.DeleteStatement{
		From:   users,
		Wheres: []nodes.Node{users.Col("id").Eq(1)},
	}

	result, err := bt.TransformDelete(stmt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != stmt {
		t.Error("expected BaseTransformer.TransformDelete to return input unchanged")
	}
}

// --- BaseTransformer with nil inputs ---

func TestBaseTransformerNilInputs(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}

	if r, err := bt.TransformSelect(nil); err != nil || r != nil {
		t.Errorf("select: got %v, %v", r, err)
	}
	if r, err := bt.TransformInsert(nil); err != nil || r != nil {
		t.Errorf("insert: got %v, %v", r, err)
	}
	if r, err := bt.TransformUpdate(nil); err != nil || r != nil {
		t.Errorf("update: got %v, %v", r, err)
	}
	if r, err := bt.TransformDelete(nil); err != nil || r != nil {
		t.Errorf("delete: got %v, %v", r, err)
	}
}

// --- SelectFunc ---

func TestSelectFuncRewritesOnlySelect(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	var calls int
	f := SelectFunc(func(c *nodes.SelectCore) (*nodes.SelectCore, error) {
		calls++
		c.Wheres = append(c.Wheres, users.Col("tenant_id").Eq(7))
		return c, nil
	})

	core, err := f.TransformSelect(coreFrom(users))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || len(core.Wheres) != 1 {
		t.Errorf("expected one call adding one condition, got calls=%d wheres=%d", calls, len(core.Wheres))
	}

	del := &nodes.DeleteStatement{From: users}
	out, err := f.TransformDelete(del)
	if err != nil || out != del || calls != 1 {
		t.Errorf("expected delete to pass through untouched")
	}
}
