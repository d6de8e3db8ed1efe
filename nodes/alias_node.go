package nodes

import "github.com/bawdo/relal/collector"

// AliasNode represents a column or expression alias: expr AS "name".
type AliasNode struct {
	Expression
	Expr Node
	Name string
}

// NewAliasNode creates an AliasNode.
func NewAliasNode(expr Node, name string) *AliasNode {
	n := &AliasNode{Expr: expr, Name: name}
	n.setSelf(n)
	return n
}

func (n *AliasNode) Kind() Kind { return KindAlias }

func (n *AliasNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, n.Expr, " AS "+c.QuoteColumnName(n.Name))
}
