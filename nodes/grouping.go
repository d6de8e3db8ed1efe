package nodes

import "github.com/bawdo/relal/collector"

// GroupingNode wraps an expression in parentheses. Nested groupings
// render a single pair.
type GroupingNode struct {
	Expression
	Expr Node
}

// NewGrouping creates a GroupingNode.
func NewGrouping(expr Node) *GroupingNode {
	n := &GroupingNode{Expr: expr}
	n.setSelf(n)
	return n
}

func (n *GroupingNode) Kind() Kind { return KindGrouping }

func (n *GroupingNode) Render(c *collector.Collector, visit VisitFunc) error {
	inner := n.Expr
	for {
		g, ok := inner.(*GroupingNode)
		if !ok {
			break
		}
		inner = g.Expr
	}
	return Emit(c, visit, "(", inner, ")")
}

func init() {
	Register(KindGrouping, func(ops ...Node) Node {
		arity(KindGrouping, ops, 1, 1)
		return NewGrouping(ops[0])
	})
}
