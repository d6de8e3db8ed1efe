package nodes

import "github.com/bawdo/relal/collector"

// AndNode joins its children with AND. A single child renders alone.
type AndNode struct {
	Expression
	Children []Node
}

// NewAnd creates an AndNode.
func NewAnd(children ...Node) *AndNode {
	n := &AndNode{Children: children}
	n.setSelf(n)
	return n
}

func (n *AndNode) Kind() Kind { return KindAnd }

func (n *AndNode) Render(c *collector.Collector, visit VisitFunc) error {
	return EmitList(c, visit, n.Children, " AND ")
}

// OrNode represents Left OR Right. Build it through Combinable.Or to get
// the surrounding parentheses.
type OrNode struct {
	Expression
	Left  Node
	Right Node
}

// NewOr creates an OrNode.
func NewOr(left, right Node) *OrNode {
	n := &OrNode{Left: left, Right: right}
	n.setSelf(n)
	return n
}

func (n *OrNode) Kind() Kind { return KindOr }

func (n *OrNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, n.Left, " OR ", n.Right)
}

// NotNode negates an expression.
type NotNode struct {
	Expression
	Expr Node
}

// NewNot creates a NotNode.
func NewNot(expr Node) *NotNode {
	n := &NotNode{Expr: expr}
	n.setSelf(n)
	return n
}

func (n *NotNode) Kind() Kind { return KindNot }

func (n *NotNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, "NOT (", n.Expr, ")")
}

func init() {
	Register(KindAnd, func(ops ...Node) Node {
		arity(KindAnd, ops, 1, -1)
		return NewAnd(ops...)
	})
	Register(KindOr, func(ops ...Node) Node {
		arity(KindOr, ops, 2, 2)
		return NewOr(ops[0], ops[1])
	})
	Register(KindNot, func(ops ...Node) Node {
		arity(KindNot, ops, 1, 1)
		return NewNot(ops[0])
	})
}
