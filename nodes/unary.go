package nodes

import "github.com/bawdo/relal/collector"

// UnaryOp represents a unary postfix operator.
type UnaryOp int

const (
	OpIsNull UnaryOp = iota
	OpIsNotNull
)

// UnaryNode represents Expr IS NULL / IS NOT NULL.
type UnaryNode struct {
	Expression
	Expr Node
	Op   UnaryOp
}

// NewUnary creates a UnaryNode.
func NewUnary(expr Node, op UnaryOp) *UnaryNode {
	n := &UnaryNode{Expr: expr, Op: op}
	n.setSelf(n)
	return n
}

func (n *UnaryNode) Kind() Kind {
	if n.Op == OpIsNotNull {
		return KindIsNotNull
	}
	return KindIsNull
}

// Invert swaps IS NULL and IS NOT NULL.
func (n *UnaryNode) Invert() Node {
	if n.Op == OpIsNull {
		return NewUnary(n.Expr, OpIsNotNull)
	}
	return NewUnary(n.Expr, OpIsNull)
}

func (n *UnaryNode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Op == OpIsNotNull {
		return Emit(c, visit, n.Expr, " IS NOT NULL")
	}
	return Emit(c, visit, n.Expr, " IS NULL")
}

func init() {
	Register(KindIsNull, func(ops ...Node) Node {
		arity(KindIsNull, ops, 1, 1)
		return NewUnary(ops[0], OpIsNull)
	})
	Register(KindIsNotNull, func(ops ...Node) Node {
		arity(KindIsNotNull, ops, 1, 1)
		return NewUnary(ops[0], OpIsNotNull)
	})
}
