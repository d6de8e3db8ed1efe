package nodes

import "github.com/bawdo/relal/collector"

// InNode represents Expr IN (Vals...) or Expr NOT IN (Vals...).
type InNode struct {
	Expression
	Expr   Node
	Vals   []Node
	Negate bool
}

// NewIn creates an InNode.
func NewIn(expr Node, vals []Node, negate bool) *InNode {
	n := &InNode{Expr: expr, Vals: vals, Negate: negate}
	n.setSelf(n)
	return n
}

func (n *InNode) Kind() Kind {
	if n.Negate {
		return KindNotIn
	}
	return KindIn
}

// Invert toggles IN and NOT IN.
func (n *InNode) Invert() Node {
	return NewIn(n.Expr, n.Vals, !n.Negate)
}

func (n *InNode) Render(c *collector.Collector, visit VisitFunc) error {
	if len(n.Vals) == 0 || (len(n.Vals) == 1 && IsNullNode(n.Vals[0])) {
		if n.Negate {
			c.Add(" 1=1 ")
		} else {
			c.Add(" 1=0 ")
		}
		return nil
	}
	keyword := " IN ("
	if n.Negate {
		keyword = " NOT IN ("
	}
	if err := Emit(c, visit, n.Expr, keyword); err != nil {
		return err
	}
	if err := EmitList(c, visit, n.Vals, ", "); err != nil {
		return err
	}
	c.Add(")")
	return nil
}

// BetweenNode represents Expr BETWEEN Range. Range is normally an AndNode
// of the two bounds.
type BetweenNode struct {
	Expression
	Expr   Node
	Range  Node
	Negate bool
}

// NewBetween creates a BetweenNode.
func NewBetween(expr, rng Node, negate bool) *BetweenNode {
	n := &BetweenNode{Expr: expr, Range: rng, Negate: negate}
	n.setSelf(n)
	return n
}

func (n *BetweenNode) Kind() Kind {
	if n.Negate {
		return KindNotBetween
	}
	return KindBetween
}

// Invert toggles BETWEEN and NOT BETWEEN.
func (n *BetweenNode) Invert() Node {
	return NewBetween(n.Expr, n.Range, !n.Negate)
}

func (n *BetweenNode) Render(c *collector.Collector, visit VisitFunc) error {
	keyword := " BETWEEN "
	if n.Negate {
		keyword = " NOT BETWEEN "
	}
	return Emit(c, visit, n.Expr, keyword, n.Range)
}

func init() {
	for _, negate := range []bool{false, true} {
		in := KindIn
		between := KindBetween
		if negate {
			in, between = KindNotIn, KindNotBetween
		}
		Register(in, func(ops ...Node) Node {
			arity(in, ops, 1, -1)
			return NewIn(ops[0], ops[1:], negate)
		})
		Register(between, func(ops ...Node) Node {
			arity(between, ops, 2, 3)
			if len(ops) == 3 {
				return NewBetween(ops[0], NewAnd(ops[1], ops[2]), negate)
			}
			return NewBetween(ops[0], ops[1], negate)
		})
	}
}
