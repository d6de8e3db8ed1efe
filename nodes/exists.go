package nodes

import "github.com/bawdo/relal/collector"

// ExistsNode represents EXISTS (subquery) or NOT EXISTS (subquery).
type ExistsNode struct {
	Expression
	Subquery Node
	Negated  bool
	Alias    string
}

// Exists creates an EXISTS(subquery) node.
func Exists(subquery Node) *ExistsNode {
	n := &ExistsNode{Subquery: subquery}
	n.setSelf(n)
	return n
}

// NotExists creates a NOT EXISTS(subquery) node.
func NotExists(subquery Node) *ExistsNode {
	n := Exists(subquery)
	n.Negated = true
	return n
}

func (n *ExistsNode) Kind() Kind { return KindExists }

// As returns a copy rendered with a trailing alias.
func (n *ExistsNode) As(name string) *ExistsNode {
	out := Exists(n.Subquery)
	out.Negated = n.Negated
	out.Alias = name
	return out
}

// Invert toggles EXISTS and NOT EXISTS.
func (n *ExistsNode) Invert() Node {
	out := Exists(n.Subquery)
	out.Negated = !n.Negated
	return out
}

func (n *ExistsNode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Negated {
		c.Add("NOT ")
	}
	if err := Emit(c, visit, "EXISTS (", n.Subquery, ")"); err != nil {
		return err
	}
	if n.Alias != "" {
		c.Add(" AS " + c.QuoteColumnName(n.Alias))
	}
	return nil
}

func init() {
	Register(KindExists, func(ops ...Node) Node {
		arity(KindExists, ops, 1, 1)
		return Exists(ops[0])
	})
}
