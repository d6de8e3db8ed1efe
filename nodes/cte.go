package nodes

import "github.com/bawdo/relal/collector"

// CTENode represents a Common Table Expression (WITH clause).
type CTENode struct {
	Name      string
	Query     Node
	Recursive bool
	Columns   []string // optional column list
}

func (n *CTENode) Kind() Kind { return KindCTE }

// Render writes `"name" ("a", "b") AS (query)`. WITH and RECURSIVE are
// written by the enclosing statement.
func (n *CTENode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Query == nil {
		return &MalformedNodeError{Kind: KindCTE, Reason: "CTE without query"}
	}
	c.Add(c.QuoteTableName(n.Name))
	for i, col := range n.Columns {
		if i == 0 {
			c.Add(" (")
		} else {
			c.Add(", ")
		}
		c.Add(c.QuoteColumnName(col))
		if i == len(n.Columns)-1 {
			c.Add(")")
		}
	}
	return Emit(c, visit, " AS (", n.Query, ")")
}

// renderWith writes the WITH prefix for ctes, followed by a space.
func renderWith(c *collector.Collector, visit VisitFunc, ctes []*CTENode) error {
	if len(ctes) == 0 {
		return nil
	}
	c.Add("WITH ")
	for _, cte := range ctes {
		if cte.Recursive {
			c.Add("RECURSIVE ")
			break
		}
	}
	for i, cte := range ctes {
		if i > 0 {
			c.Add(", ")
		}
		if err := visit(cte); err != nil {
			return err
		}
	}
	c.Add(" ")
	return nil
}
