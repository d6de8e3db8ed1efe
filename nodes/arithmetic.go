package nodes

import "github.com/bawdo/relal/collector"

// InfixOp identifies the binary math/bitwise/concat operator.
type InfixOp int

const (
	OpPlus InfixOp = iota
	OpMinus
	OpMultiply
	OpDivide
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
	OpConcat
)

var infixOpSQL = [...]string{
	OpPlus:       " + ",
	OpMinus:      " - ",
	OpMultiply:   " * ",
	OpDivide:     " / ",
	OpBitwiseAnd: " & ",
	OpBitwiseOr:  " | ",
	OpBitwiseXor: " ^ ",
	OpShiftLeft:  " << ",
	OpShiftRight: " >> ",
	OpConcat:     " || ",
}

// InfixNode represents a binary math, bitwise, or concat expression.
type InfixNode struct {
	Expression
	Left  Node
	Right Node
	Op    InfixOp
}

// NewInfixNode creates an InfixNode.
func NewInfixNode(left, right Node, op InfixOp) *InfixNode {
	n := &InfixNode{Left: left, Right: right, Op: op}
	n.setSelf(n)
	return n
}

func (n *InfixNode) Kind() Kind { return KindInfixOperation }

// Operator returns the SQL operator, padded with spaces.
func (n *InfixNode) Operator() string { return infixOpSQL[n.Op] }

// precedence ranks the arithmetic operators. Bitwise, shift and concat
// operators bind differently across dialects and rank 0.
func (op InfixOp) precedence() int {
	switch op {
	case OpMultiply, OpDivide:
		return 2
	case OpPlus, OpMinus:
		return 1
	}
	return 0
}

func (n *InfixNode) Render(c *collector.Collector, visit VisitFunc) error {
	if err := n.emitOperand(c, visit, n.Left, false); err != nil {
		return err
	}
	c.Add(infixOpSQL[n.Op])
	return n.emitOperand(c, visit, n.Right, true)
}

// emitOperand parenthesizes a nested operator only when dropping the
// parentheses would regroup it: a * b * c stays flat, a * (b / c) does not.
func (n *InfixNode) emitOperand(c *collector.Collector, visit VisitFunc, operand Node, right bool) error {
	if n.needsParens(operand, right) {
		return Emit(c, visit, "(", operand, ")")
	}
	return Emit(c, visit, operand)
}

func (n *InfixNode) needsParens(operand Node, right bool) bool {
	inner, ok := operand.(*InfixNode)
	if !ok {
		return false
	}
	outer, in := n.Op.precedence(), inner.Op.precedence()
	switch {
	case outer == 0:
		return right || inner.Op != n.Op
	case in > outer:
		return false
	case in == outer:
		return right
	}
	return true
}

// UnaryMathOp identifies the unary math operator.
type UnaryMathOp int

const (
	OpBitwiseNot UnaryMathOp = iota
)

// UnaryMathNode represents a unary math expression (e.g., bitwise NOT).
type UnaryMathNode struct {
	Expression
	Expr Node
	Op   UnaryMathOp
}

// NewUnaryMathNode creates a UnaryMathNode.
func NewUnaryMathNode(expr Node, op UnaryMathOp) *UnaryMathNode {
	n := &UnaryMathNode{Expr: expr, Op: op}
	n.setSelf(n)
	return n
}

func (n *UnaryMathNode) Kind() Kind { return KindUnaryOperation }

func (n *UnaryMathNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add("~")
	switch n.Expr.(type) {
	case *InfixNode, *UnaryMathNode:
		return Emit(c, visit, "(", n.Expr, ")")
	}
	return Emit(c, visit, n.Expr)
}
