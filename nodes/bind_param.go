package nodes

import "github.com/bawdo/relal/collector"

// BindParamNode is an explicit bind parameter. Unlike QuotedNode a nil
// value is bound rather than rendered as NULL.
type BindParamNode struct {
	Expression
	Value any
}

// NewBindParam creates a BindParamNode.
func NewBindParam(value any) *BindParamNode {
	n := &BindParamNode{Value: value}
	n.setSelf(n)
	return n
}

func (n *BindParamNode) Kind() Kind { return KindBindParam }

func (n *BindParamNode) Render(c *collector.Collector, _ VisitFunc) error {
	c.Bind(n.Value)
	return nil
}
