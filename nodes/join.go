package nodes

import "github.com/bawdo/relal/collector"

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
	StringJoin // raw SQL join fragment
)

var joinTypeSQL = [...]string{
	InnerJoin:      "INNER JOIN",
	LeftOuterJoin:  "LEFT OUTER JOIN",
	RightOuterJoin: "RIGHT OUTER JOIN",
	FullOuterJoin:  "FULL OUTER JOIN",
	CrossJoin:      "CROSS JOIN",
	StringJoin:     "",
}

var joinTypeKinds = [...]Kind{
	InnerJoin:      KindInnerJoin,
	LeftOuterJoin:  KindOuterJoin,
	RightOuterJoin: KindRightOuterJoin,
	FullOuterJoin:  KindFullOuterJoin,
	CrossJoin:      KindCrossJoin,
	StringJoin:     KindStringJoin,
}

// String returns the SQL keyword for this join type.
func (t JoinType) String() string {
	if t == StringJoin {
		return "STRING JOIN"
	}
	return joinTypeSQL[t]
}

// Kind returns the node kind built for this join type.
func (t JoinType) Kind() Kind { return joinTypeKinds[t] }

// JoinNode represents a SQL JOIN clause.
type JoinNode struct {
	Type     JoinType
	Relation Node // table, alias, sub-select, lateral wrapper, or raw SQL for StringJoin
	On       Node // join condition (nil omits ON)
}

// NewJoin creates a JoinNode.
func NewJoin(t JoinType, relation, on Node) *JoinNode {
	return &JoinNode{Type: t, Relation: relation, On: on}
}

func (n *JoinNode) Kind() Kind { return n.Type.Kind() }

func (n *JoinNode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Relation == nil {
		return &MalformedNodeError{Kind: n.Kind(), Reason: "join without relation"}
	}
	if n.Type == StringJoin {
		return visit(n.Relation)
	}
	c.Add(joinTypeSQL[n.Type] + " ")
	var err error
	if isSubquery(n.Relation) {
		err = Emit(c, visit, "(", n.Relation, ")")
	} else {
		err = visit(n.Relation)
	}
	if err != nil {
		return err
	}
	if n.On != nil {
		return Emit(c, visit, " ON ", n.On)
	}
	return nil
}

// LateralNode marks a joined relation as LATERAL. ANSI rendering rejects
// it; dialects that support the keyword override KindLateral and call
// RenderLateral.
type LateralNode struct {
	Expr Node
}

// NewLateral wraps expr in a LATERAL marker.
func NewLateral(expr Node) *LateralNode { return &LateralNode{Expr: expr} }

func (n *LateralNode) Kind() Kind { return KindLateral }

func (n *LateralNode) Render(c *collector.Collector, _ VisitFunc) error {
	return &FeatureNotAvailableError{Feature: "LATERAL", Dialect: c.Name()}
}

// RenderLateral writes "LATERAL (sub)" or "LATERAL rel".
func (n *LateralNode) RenderLateral(c *collector.Collector, visit VisitFunc) error {
	if isSubquery(n.Expr) {
		return Emit(c, visit, "LATERAL (", n.Expr, ")")
	}
	return Emit(c, visit, "LATERAL ", n.Expr)
}

// JoinSource is the FROM clause of a SELECT core: a leading relation and
// the joins applied to it.
type JoinSource struct {
	Left  Node
	Right []*JoinNode
}

func (n *JoinSource) Kind() Kind { return KindJoinSource }

// Empty reports whether the source renders nothing.
func (n *JoinSource) Empty() bool {
	return n == nil || (n.Left == nil && len(n.Right) == 0)
}

func (n *JoinSource) Render(c *collector.Collector, visit VisitFunc) error {
	sep := ""
	if n.Left != nil {
		var err error
		if isSubquery(n.Left) {
			err = Emit(c, visit, "(", n.Left, ")")
		} else {
			err = visit(n.Left)
		}
		if err != nil {
			return err
		}
		sep = " "
	}
	for _, j := range n.Right {
		c.Add(sep)
		if err := visit(j); err != nil {
			return err
		}
		sep = " "
	}
	return nil
}

func init() {
	for t, kind := range joinTypeKinds {
		Register(kind, func(ops ...Node) Node {
			arity(kind, ops, 1, 2)
			return NewJoin(JoinType(t), ops[0], operand(ops, 1))
		})
	}
	Register(KindLateral, func(ops ...Node) Node {
		arity(KindLateral, ops, 1, 1)
		return NewLateral(ops[0])
	})
}
