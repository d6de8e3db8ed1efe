package nodes

import "github.com/bawdo/relal/collector"

// CastedNode is a value compared against an attribute. It remembers the
// attribute so typed columns can render CAST(value AS type).
type CastedNode struct {
	Expression
	Value     any
	Attribute *Attribute
}

// NewCasted creates a CastedNode for val against attr.
func NewCasted(val any, attr *Attribute) *CastedNode {
	n := &CastedNode{Value: val, Attribute: attr}
	n.setSelf(n)
	return n
}

func (n *CastedNode) Kind() Kind { return KindCasted }

// TypeName returns the SQL type of the attribute, if any.
func (n *CastedNode) TypeName() string {
	if n.Attribute == nil {
		return ""
	}
	return n.Attribute.TypeName
}

func (n *CastedNode) Render(c *collector.Collector, _ VisitFunc) error {
	if n.Value == nil {
		c.Add("NULL")
		return nil
	}
	typ := n.TypeName()
	if typ == "" {
		c.Bind(n.Value)
		return nil
	}
	c.Add("CAST(")
	c.Bind(n.Value)
	c.Add(" AS " + typ + ")")
	return nil
}
