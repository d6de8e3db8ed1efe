package nodes

import "github.com/bawdo/relal/collector"

// QuotedNode wraps a raw Go value (string, int, float, bool, etc.).
// Non-nil values are bound; nil renders the NULL keyword.
type QuotedNode struct {
	Expression
	Value any
}

// Quoted wraps val as a QuotedNode.
func Quoted(val any) *QuotedNode {
	n := &QuotedNode{Value: val}
	n.setSelf(n)
	return n
}

func (n *QuotedNode) Kind() Kind { return KindQuoted }

func (n *QuotedNode) Render(c *collector.Collector, _ VisitFunc) error {
	if n.Value == nil {
		c.Add("NULL")
		return nil
	}
	c.Bind(n.Value)
	return nil
}

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Table *Table // nil for unqualified *
}

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}

func (n *StarNode) Kind() Kind { return KindStar }

func (n *StarNode) Render(c *collector.Collector, _ VisitFunc) error {
	if n.Table != nil {
		c.Add(c.QuoteTableName(n.Table.Name) + ".")
	}
	c.Add("*")
	return nil
}

// SqlLiteral represents a raw SQL fragment injected verbatim into the query.
//
// SECURITY: Raw is rendered without escaping or parameterization. Never
// pass user-controlled input as the raw text; use bind parameters instead.
type SqlLiteral struct {
	Expression
	Raw   string
	Binds []any // values for placeholders already written into Raw
}

func NewSqlLiteral(raw string) *SqlLiteral {
	n := &SqlLiteral{Raw: raw}
	n.setSelf(n)
	return n
}

// NewBoundSqlLiteral creates a SqlLiteral whose Raw text already contains
// the placeholders for binds.
//
// SECURITY: Only the binds are parameterized. The raw string must not
// contain user-controlled input.
func NewBoundSqlLiteral(raw string, binds ...any) *SqlLiteral {
	n := NewSqlLiteral(raw)
	n.Binds = binds
	return n
}

func (n *SqlLiteral) Kind() Kind { return KindSqlLiteral }

func (n *SqlLiteral) Render(c *collector.Collector, _ VisitFunc) error {
	c.Add(n.Raw)
	c.Record(n.Binds...)
	return nil
}

func init() {
	Register(KindStar, func(ops ...Node) Node {
		arity(KindStar, ops, 0, 0)
		return Star()
	})
}
