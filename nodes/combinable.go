package nodes

// Combinable provides logical chaining methods.
type Combinable struct {
	self Node
}

// And creates an AndNode of self followed by others.
func (c Combinable) And(others ...Node) *AndNode {
	return NewAnd(append([]Node{c.self}, others...)...)
}

// Or creates an OrNode wrapped in a GroupingNode for correct precedence.
func (c Combinable) Or(other Node) *GroupingNode {
	return NewGrouping(NewOr(c.self, other))
}

// Not creates a NotNode negating self.
func (c Combinable) Not() *NotNode {
	return NewNot(c.self)
}
