package nodes

import "github.com/bawdo/relal/collector"

// MatchNode represents a LIKE pattern match.
type MatchNode struct {
	Expression
	Left          Node
	Pattern       Node
	Escape        string // empty for no ESCAPE clause
	CaseSensitive bool
	Negate        bool
}

// NewMatch creates a case-sensitive MatchNode.
func NewMatch(left, pattern Node, negate bool) *MatchNode {
	n := &MatchNode{Left: left, Pattern: pattern, Negate: negate, CaseSensitive: true}
	n.setSelf(n)
	return n
}

func (n *MatchNode) Kind() Kind {
	if n.Negate {
		return KindDoesNotMatch
	}
	return KindMatches
}

// WithEscape sets the ESCAPE character.
func (n *MatchNode) WithEscape(escape string) *MatchNode {
	n.Escape = escape
	return n
}

// IgnoringCase marks the match as case-insensitive. Dialects with a
// dedicated operator (ILIKE) use it; others render plain LIKE.
func (n *MatchNode) IgnoringCase() *MatchNode {
	n.CaseSensitive = false
	return n
}

// Invert toggles LIKE and NOT LIKE.
func (n *MatchNode) Invert() Node {
	m := NewMatch(n.Left, n.Pattern, !n.Negate)
	m.Escape = n.Escape
	m.CaseSensitive = n.CaseSensitive
	return m
}

func (n *MatchNode) Render(c *collector.Collector, visit VisitFunc) error {
	op := " LIKE "
	if n.Negate {
		op = " NOT LIKE "
	}
	return n.RenderWith(c, visit, op)
}

// RenderWith renders the match using op as the operator, keeping the
// ESCAPE clause. Dialect overrides use it to swap in ILIKE.
func (n *MatchNode) RenderWith(c *collector.Collector, visit VisitFunc, op string) error {
	if err := Emit(c, visit, n.Left, op, n.Pattern); err != nil {
		return err
	}
	if n.Escape != "" {
		c.Add(" ESCAPE " + c.QuoteValue(n.Escape))
	}
	return nil
}

// RegexNode represents a native regular-expression match. There is no
// portable SQL spelling, so it only renders where a dialect overrides it.
type RegexNode struct {
	Expression
	Left          Node
	Pattern       Node
	CaseSensitive bool
	Negate        bool
}

// NewRegex creates a case-sensitive RegexNode.
func NewRegex(left, pattern Node, negate bool) *RegexNode {
	n := &RegexNode{Left: left, Pattern: pattern, Negate: negate, CaseSensitive: true}
	n.setSelf(n)
	return n
}

func (n *RegexNode) Kind() Kind {
	if n.Negate {
		return KindNotRegex
	}
	return KindRegex
}

// IgnoringCase marks the match as case-insensitive.
func (n *RegexNode) IgnoringCase() *RegexNode {
	n.CaseSensitive = false
	return n
}

// Invert toggles the negation.
func (n *RegexNode) Invert() Node {
	r := NewRegex(n.Left, n.Pattern, !n.Negate)
	r.CaseSensitive = n.CaseSensitive
	return r
}

func (n *RegexNode) Render(c *collector.Collector, _ VisitFunc) error {
	return &FeatureNotAvailableError{Feature: "native regex matching", Dialect: c.Name()}
}

func init() {
	for _, negate := range []bool{false, true} {
		match, regex := KindMatches, KindRegex
		if negate {
			match, regex = KindDoesNotMatch, KindNotRegex
		}
		Register(match, func(ops ...Node) Node {
			arity(match, ops, 2, 2)
			return NewMatch(ops[0], ops[1], negate)
		})
		Register(regex, func(ops ...Node) Node {
			arity(regex, ops, 2, 2)
			return NewRegex(ops[0], ops[1], negate)
		})
	}
}
