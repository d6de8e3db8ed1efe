package nodes

import "github.com/bawdo/relal/collector"

// SelectStatement is a complete SELECT: a core followed by the
// statement-level ORDER BY, LIMIT, OFFSET and lock clauses. Cores holds
// exactly one core when rendered; combine queries with a set operation.
type SelectStatement struct {
	Cores  []*SelectCore
	Orders []Node
	Limit  Node // *LimitNode unless the kind is re-registered
	Offset Node
	Lock   *LockNode
	With   []*CTENode
}

// NewSelectStatement creates a statement with a single empty core.
func NewSelectStatement() *SelectStatement {
	return &SelectStatement{Cores: []*SelectCore{NewSelectCore()}}
}

func (n *SelectStatement) Kind() Kind { return KindSelectStatement }

// Clone returns a deep copy of the statement's containers. Leaf nodes are
// shared.
func (n *SelectStatement) Clone() *SelectStatement {
	out := *n
	out.Cores = make([]*SelectCore, len(n.Cores))
	for i, core := range n.Cores {
		out.Cores[i] = core.Clone()
	}
	out.Orders = append([]Node(nil), n.Orders...)
	out.With = append([]*CTENode(nil), n.With...)
	return &out
}

// CheckCores reports a MalformedNodeError unless the statement has exactly
// one core.
func (n *SelectStatement) CheckCores() error {
	switch len(n.Cores) {
	case 1:
		return nil
	case 0:
		return &MalformedNodeError{Kind: KindSelectStatement, Reason: "statement without SELECT core"}
	}
	return &MalformedNodeError{Kind: KindSelectStatement, Reason: "multiple SELECT cores; combine them with a set operation"}
}

func (n *SelectStatement) Render(c *collector.Collector, visit VisitFunc) error {
	if err := n.CheckCores(); err != nil {
		return err
	}
	if err := renderWith(c, visit, n.With); err != nil {
		return err
	}
	if err := visit(n.Cores[0]); err != nil {
		return err
	}
	if err := emitClause(c, visit, " ORDER BY ", n.Orders, ", "); err != nil {
		return err
	}
	if n.Limit != nil {
		if err := Emit(c, visit, " ", n.Limit); err != nil {
			return err
		}
	}
	if n.Offset != nil {
		if err := Emit(c, visit, " ", n.Offset); err != nil {
			return err
		}
	}
	if n.Lock != nil && n.Lock.Mode != NoLock {
		return Emit(c, visit, " ", n.Lock)
	}
	return nil
}
