package testutil

import (
	"testing"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
)

// Compiler compiles a node into SQL. *visitors.Visitor satisfies it.
type Compiler interface {
	Compile(n nodes.Node) (collector.CompiledQuery, error)
}

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertSQL compiles node with c and compares the SQL with expected.
func AssertSQL(t *testing.T, c Compiler, node nodes.Node, expected string) {
	t.Helper()
	q, err := c.Compile(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SQL != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, q.SQL)
	}
}

// AssertRender renders node with the base-0 test collector and compares
// the SQL with expected.
func AssertRender(t *testing.T, node nodes.Node, expected string) {
	t.Helper()
	q, err := Render(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.SQL != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, q.SQL)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}
