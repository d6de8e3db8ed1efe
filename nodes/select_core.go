package nodes

import (
	"strings"

	"github.com/bawdo/relal/collector"
)

// SelectCore holds one SELECT ... FROM ... WHERE ... GROUP BY ... HAVING
// block. The fluent API for building queries lives in the managers package.
type SelectCore struct {
	Projections    []Node
	Source         *JoinSource
	Wheres         []Node
	Groups         []Node // GROUP BY expressions
	Havings        []Node // HAVING conditions
	Windows        []*WindowDefinition
	SetQuantifier  Node // *DistinctNode, *DistinctOnNode, or nil
	OptimizerHints []string
	Comment        string
}

// NewSelectCore creates an empty SelectCore with an empty source.
func NewSelectCore() *SelectCore {
	return &SelectCore{Source: &JoinSource{}}
}

func (n *SelectCore) Kind() Kind { return KindSelectCore }

// Clone returns a copy whose slices can be appended to independently.
func (n *SelectCore) Clone() *SelectCore {
	out := *n
	out.Projections = append([]Node(nil), n.Projections...)
	out.Wheres = append([]Node(nil), n.Wheres...)
	out.Groups = append([]Node(nil), n.Groups...)
	out.Havings = append([]Node(nil), n.Havings...)
	out.Windows = append([]*WindowDefinition(nil), n.Windows...)
	out.OptimizerHints = append([]string(nil), n.OptimizerHints...)
	if n.Source != nil {
		src := *n.Source
		src.Right = append([]*JoinNode(nil), n.Source.Right...)
		out.Source = &src
	}
	return &out
}

func (n *SelectCore) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Comment != "" {
		c.Add("/* " + c.SanitizeComment(n.Comment) + " */ ")
	}
	c.Add("SELECT ")
	if len(n.OptimizerHints) > 0 {
		hints := make([]string, len(n.OptimizerHints))
		for i, h := range n.OptimizerHints {
			hints[i] = c.SanitizeComment(h)
		}
		c.Add("/*+ " + strings.Join(hints, " ") + " */ ")
	}
	if n.SetQuantifier != nil {
		if err := Emit(c, visit, n.SetQuantifier, " "); err != nil {
			return err
		}
	}
	if len(n.Projections) == 0 {
		c.Add("*")
	} else if err := EmitList(c, visit, n.Projections, ", "); err != nil {
		return err
	}
	if !n.Source.Empty() {
		if err := Emit(c, visit, " FROM ", n.Source); err != nil {
			return err
		}
	}
	if err := emitClause(c, visit, " WHERE ", n.Wheres, " AND "); err != nil {
		return err
	}
	if err := emitClause(c, visit, " GROUP BY ", n.Groups, ", "); err != nil {
		return err
	}
	if err := emitClause(c, visit, " HAVING ", n.Havings, " AND "); err != nil {
		return err
	}
	for i, w := range n.Windows {
		if i == 0 {
			c.Add(" WINDOW ")
		} else {
			c.Add(", ")
		}
		if err := Emit(c, visit, c.QuoteColumnName(w.Name)+" AS ", w); err != nil {
			return err
		}
	}
	return nil
}

// emitClause writes keyword followed by items joined with sep; nothing
// when items is empty.
func emitClause(c *collector.Collector, visit VisitFunc, keyword string, items []Node, sep string) error {
	if len(items) == 0 {
		return nil
	}
	c.Add(keyword)
	return EmitList(c, visit, items, sep)
}

// DistinctNode is the DISTINCT set quantifier.
type DistinctNode struct{}

func (n *DistinctNode) Kind() Kind { return KindDistinct }

func (n *DistinctNode) Render(c *collector.Collector, _ VisitFunc) error {
	c.Add("DISTINCT")
	return nil
}

// DistinctOnNode is the DISTINCT ON (...) set quantifier. ANSI rendering
// rejects it; dialects that support it override KindDistinctOn and call
// RenderDistinctOn.
type DistinctOnNode struct {
	Exprs []Node
}

func (n *DistinctOnNode) Kind() Kind { return KindDistinctOn }

func (n *DistinctOnNode) Render(c *collector.Collector, _ VisitFunc) error {
	return &FeatureNotAvailableError{Feature: "DISTINCT ON", Dialect: c.Name()}
}

// RenderDistinctOn writes "DISTINCT ON (a, b)".
func (n *DistinctOnNode) RenderDistinctOn(c *collector.Collector, visit VisitFunc) error {
	c.Add("DISTINCT ON (")
	if err := EmitList(c, visit, n.Exprs, ", "); err != nil {
		return err
	}
	c.Add(")")
	return nil
}

// LimitNode is a LIMIT clause.
type LimitNode struct {
	Expr Node
}

func (n *LimitNode) Kind() Kind { return KindLimit }

func (n *LimitNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, "LIMIT ", n.Expr)
}

// OffsetNode is an OFFSET clause.
type OffsetNode struct {
	Expr Node
}

func (n *OffsetNode) Kind() Kind { return KindOffset }

func (n *OffsetNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, "OFFSET ", n.Expr)
}

// LockMode represents row-level locking for SELECT queries.
type LockMode int

const (
	NoLock         LockMode = iota
	ForUpdate               // FOR UPDATE
	ForShare                // FOR SHARE
	ForNoKeyUpdate          // FOR NO KEY UPDATE
	ForKeyShare             // FOR KEY SHARE
)

var lockModeSQL = [...]string{
	NoLock:         "",
	ForUpdate:      "FOR UPDATE",
	ForShare:       "FOR SHARE",
	ForNoKeyUpdate: "FOR NO KEY UPDATE",
	ForKeyShare:    "FOR KEY SHARE",
}

// String returns the SQL keyword for this lock mode.
func (m LockMode) String() string { return lockModeSQL[m] }

// LockNode is a row-locking clause.
type LockNode struct {
	Mode       LockMode
	SkipLocked bool
}

func (n *LockNode) Kind() Kind { return KindLock }

func (n *LockNode) Render(c *collector.Collector, _ VisitFunc) error {
	if n.Mode == NoLock {
		return nil
	}
	c.Add(n.Mode.String())
	if n.SkipLocked {
		c.Add(" SKIP LOCKED")
	}
	return nil
}

func init() {
	Register(KindDistinct, func(ops ...Node) Node {
		arity(KindDistinct, ops, 0, 0)
		return &DistinctNode{}
	})
	Register(KindDistinctOn, func(ops ...Node) Node {
		arity(KindDistinctOn, ops, 1, -1)
		return &DistinctOnNode{Exprs: ops}
	})
	Register(KindLimit, func(ops ...Node) Node {
		arity(KindLimit, ops, 1, 1)
		return &LimitNode{Expr: ops[0]}
	})
	Register(KindOffset, func(ops ...Node) Node {
		arity(KindOffset, ops, 1, 1)
		return &OffsetNode{Expr: ops[0]}
	})
}
