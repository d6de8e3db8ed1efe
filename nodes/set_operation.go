package nodes

import "github.com/bawdo/relal/collector"

// SetOpType represents the type of set operation.
type SetOpType int

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

var setOpSQL = [...]string{
	Union:        "UNION",
	UnionAll:     "UNION ALL",
	Intersect:    "INTERSECT",
	IntersectAll: "INTERSECT ALL",
	Except:       "EXCEPT",
	ExceptAll:    "EXCEPT ALL",
}

var setOpKinds = [...]Kind{
	Union:        KindUnion,
	UnionAll:     KindUnionAll,
	Intersect:    KindIntersect,
	IntersectAll: KindIntersectAll,
	Except:       KindExcept,
	ExceptAll:    KindExceptAll,
}

// String returns the SQL keyword for this set operation type.
func (t SetOpType) String() string { return setOpSQL[t] }

// SetOperationNode represents a set operation between two queries.
type SetOperationNode struct {
	Type  SetOpType
	Left  Node
	Right Node
}

// NewSetOperation creates a SetOperationNode.
func NewSetOperation(t SetOpType, left, right Node) *SetOperationNode {
	return &SetOperationNode{Type: t, Left: left, Right: right}
}

func (n *SetOperationNode) Kind() Kind { return setOpKinds[n.Type] }

// Legs returns the operands of n, left to right, with nested operations of
// the same type flattened into the list.
func (n *SetOperationNode) Legs() []Node {
	var legs []Node
	for _, op := range [...]Node{n.Left, n.Right} {
		if inner, ok := op.(*SetOperationNode); ok && inner.Type == n.Type {
			legs = append(legs, inner.Legs()...)
			continue
		}
		legs = append(legs, op)
	}
	return legs
}

// Render writes "( a OP b )". Operands that are the same operation are
// chained inside the one pair of parentheses.
func (n *SetOperationNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add("( ")
	for i, leg := range n.Legs() {
		if i > 0 {
			c.Add(" " + setOpSQL[n.Type] + " ")
		}
		if err := Emit(c, visit, leg); err != nil {
			return err
		}
	}
	c.Add(" )")
	return nil
}

func init() {
	for t, kind := range setOpKinds {
		Register(kind, func(ops ...Node) Node {
			arity(kind, ops, 2, 2)
			return NewSetOperation(SetOpType(t), ops[0], ops[1])
		})
	}
}
