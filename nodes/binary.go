package nodes

import "github.com/bawdo/relal/collector"

// ComparisonOp represents a binary comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpDistinctFrom
	OpNotDistinctFrom
	OpCaseSensitiveEq
	OpCaseInsensitiveEq
	OpContains
	OpOverlaps
)

var comparisonKinds = [...]Kind{
	OpEq:                KindEquality,
	OpNotEq:             KindNotEqual,
	OpGt:                KindGreaterThan,
	OpGtEq:              KindGreaterThanOrEqual,
	OpLt:                KindLessThan,
	OpLtEq:              KindLessThanOrEqual,
	OpDistinctFrom:      KindIsDistinctFrom,
	OpNotDistinctFrom:   KindIsNotDistinctFrom,
	OpCaseSensitiveEq:   KindCaseSensitiveEqual,
	OpCaseInsensitiveEq: KindCaseInsensitiveEqual,
	OpContains:          KindContains,
	OpOverlaps:          KindOverlaps,
}

var comparisonSQL = [...]string{
	OpEq:              " = ",
	OpNotEq:           " != ",
	OpGt:              " > ",
	OpGtEq:            " >= ",
	OpLt:              " < ",
	OpLtEq:            " <= ",
	OpCaseSensitiveEq: " = ",
}

// inverse maps each operator to its logical complement.
var inverse = map[ComparisonOp]ComparisonOp{
	OpEq:              OpNotEq,
	OpNotEq:           OpEq,
	OpGt:              OpLtEq,
	OpLtEq:            OpGt,
	OpLt:              OpGtEq,
	OpGtEq:            OpLt,
	OpDistinctFrom:    OpNotDistinctFrom,
	OpNotDistinctFrom: OpDistinctFrom,
}

// ComparisonNode represents a binary comparison: Left Op Right.
type ComparisonNode struct {
	Expression
	Left  Node
	Right Node
	Op    ComparisonOp
}

// NewComparisonNode creates a ComparisonNode.
func NewComparisonNode(left, right Node, op ComparisonOp) *ComparisonNode {
	n := &ComparisonNode{Left: left, Right: right, Op: op}
	n.setSelf(n)
	return n
}

func (n *ComparisonNode) Kind() Kind { return comparisonKinds[n.Op] }

// Invert returns the logical complement: = becomes !=, > becomes <=, and
// so on. Operators without a complement are wrapped in NOT.
func (n *ComparisonNode) Invert() Node {
	if op, ok := inverse[n.Op]; ok {
		return NewComparisonNode(n.Left, n.Right, op)
	}
	return NewNot(n)
}

func (n *ComparisonNode) Render(c *collector.Collector, visit VisitFunc) error {
	switch n.Op {
	case OpEq:
		if IsNullNode(n.Right) {
			return Emit(c, visit, n.Left, " IS NULL")
		}
	case OpNotEq:
		if IsNullNode(n.Right) {
			return Emit(c, visit, n.Left, " IS NOT NULL")
		}
	case OpDistinctFrom, OpNotDistinctFrom:
		return n.renderDistinct(c, visit)
	case OpCaseInsensitiveEq:
		return Emit(c, visit, "LOWER(", n.Left, ") = LOWER(", n.Right, ")")
	case OpContains:
		return &FeatureNotAvailableError{Feature: "containment (@>)", Dialect: c.Name()}
	case OpOverlaps:
		return &FeatureNotAvailableError{Feature: "overlap (&&)", Dialect: c.Name()}
	}
	return Emit(c, visit, n.Left, comparisonSQL[n.Op], n.Right)
}

// renderDistinct spells null-safe comparison with a CASE expression for
// dialects without a native operator.
func (n *ComparisonNode) renderDistinct(c *collector.Collector, visit VisitFunc) error {
	distinct := n.Op == OpDistinctFrom
	if IsNullNode(n.Right) {
		if distinct {
			return Emit(c, visit, n.Left, " IS NOT NULL")
		}
		return Emit(c, visit, n.Left, " IS NULL")
	}
	result := " = 1"
	if !distinct {
		result = " = 0"
	}
	return Emit(c, visit,
		"CASE WHEN ", n.Left, " = ", n.Right,
		" OR (", n.Left, " IS NULL AND ", n.Right, " IS NULL)",
		" THEN 0 ELSE 1 END", result)
}

func init() {
	for op, kind := range comparisonKinds {
		Register(kind, func(ops ...Node) Node {
			arity(kind, ops, 2, 2)
			return NewComparisonNode(ops[0], ops[1], ComparisonOp(op))
		})
	}
}
