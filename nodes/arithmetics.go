package nodes

// Arithmetics provides math and bitwise operators. Additive and bitwise
// results are wrapped in a GroupingNode; multiplicative ones are not.
type Arithmetics struct {
	self Node
}

func (a Arithmetics) infix(op InfixOp, val any) *InfixNode {
	return NewInfixNode(a.self, promote(a.self, val), op)
}

func (a Arithmetics) grouped(op InfixOp, val any) *GroupingNode {
	return NewGrouping(a.infix(op, val))
}

func (a Arithmetics) Plus(val any) *GroupingNode       { return a.grouped(OpPlus, val) }
func (a Arithmetics) Minus(val any) *GroupingNode      { return a.grouped(OpMinus, val) }
func (a Arithmetics) BitwiseAnd(val any) *GroupingNode { return a.grouped(OpBitwiseAnd, val) }
func (a Arithmetics) BitwiseOr(val any) *GroupingNode  { return a.grouped(OpBitwiseOr, val) }
func (a Arithmetics) BitwiseXor(val any) *GroupingNode { return a.grouped(OpBitwiseXor, val) }
func (a Arithmetics) ShiftLeft(val any) *GroupingNode  { return a.grouped(OpShiftLeft, val) }
func (a Arithmetics) ShiftRight(val any) *GroupingNode { return a.grouped(OpShiftRight, val) }

func (a Arithmetics) Multiply(val any) *InfixNode { return a.infix(OpMultiply, val) }
func (a Arithmetics) Divide(val any) *InfixNode   { return a.infix(OpDivide, val) }
func (a Arithmetics) Concat(val any) *InfixNode   { return a.infix(OpConcat, val) }

func (a Arithmetics) BitwiseNot() *UnaryMathNode { return NewUnaryMathNode(a.self, OpBitwiseNot) }
