package nodes

import "github.com/bawdo/relal/collector"

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// OrderingNode represents an ORDER BY expression with a direction.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
}

// NewOrdering creates an OrderingNode.
func NewOrdering(expr Node, dir OrderDirection) *OrderingNode {
	return &OrderingNode{Expr: expr, Direction: dir}
}

func (n *OrderingNode) Kind() Kind {
	if n.Direction == Desc {
		return KindDescending
	}
	return KindAscending
}

// Reverse flips the direction.
func (n *OrderingNode) Reverse() *OrderingNode {
	if n.Direction == Desc {
		return NewOrdering(n.Expr, Asc)
	}
	return NewOrdering(n.Expr, Desc)
}

// NullsFirst requests NULLS FIRST placement.
func (n *OrderingNode) NullsFirst() *NullsNode { return &NullsNode{Expr: n, First: true} }

// NullsLast requests NULLS LAST placement.
func (n *OrderingNode) NullsLast() *NullsNode { return &NullsNode{Expr: n} }

func (n *OrderingNode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Direction == Desc {
		return Emit(c, visit, n.Expr, " DESC")
	}
	return Emit(c, visit, n.Expr, " ASC")
}

// NullsNode decorates an ordering with NULLS FIRST or NULLS LAST.
//
// Not every backend accepts the clause. By default the clause is dropped
// with a collector warning and only the inner ordering renders; dialects
// that support it override KindNullsFirst and KindNullsLast.
type NullsNode struct {
	Expr  Node
	First bool
}

func (n *NullsNode) Kind() Kind {
	if n.First {
		return KindNullsFirst
	}
	return KindNullsLast
}

// Clause returns "NULLS FIRST" or "NULLS LAST".
func (n *NullsNode) Clause() string {
	if n.First {
		return "NULLS FIRST"
	}
	return "NULLS LAST"
}

func (n *NullsNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Warn(n.Clause()+" is not supported by this dialect; clause dropped", "kind", n.Kind().String())
	return visit(n.Expr)
}

func init() {
	Register(KindAscending, func(ops ...Node) Node {
		arity(KindAscending, ops, 1, 1)
		return NewOrdering(ops[0], Asc)
	})
	Register(KindDescending, func(ops ...Node) Node {
		arity(KindDescending, ops, 1, 1)
		return NewOrdering(ops[0], Desc)
	})
	Register(KindNullsFirst, func(ops ...Node) Node {
		arity(KindNullsFirst, ops, 1, 1)
		return &NullsNode{Expr: ops[0], First: true}
	})
	Register(KindNullsLast, func(ops ...Node) Node {
		arity(KindNullsLast, ops, 1, 1)
		return &NullsNode{Expr: ops[0]}
	})
}
