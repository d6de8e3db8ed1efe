package nodes

import "github.com/bawdo/relal/collector"

// GroupingSetType identifies the type of advanced grouping.
type GroupingSetType int

const (
	Cube GroupingSetType = iota
	Rollup
	GroupingSets
)

var groupingSetSQL = [...]string{
	Cube:         "CUBE",
	Rollup:       "ROLLUP",
	GroupingSets: "GROUPING SETS",
}

var groupingSetKinds = [...]Kind{
	Cube:         KindCube,
	Rollup:       KindRollup,
	GroupingSets: KindGroupingSets,
}

// GroupingSetNode represents CUBE(...), ROLLUP(...), or GROUPING SETS((...), ...).
type GroupingSetNode struct {
	Type    GroupingSetType
	Columns []Node   // used by CUBE/ROLLUP (flat column list)
	Sets    [][]Node // used by GROUPING SETS (list of column groups)
}

// NewCube creates a CUBE(cols...) grouping set.
func NewCube(cols ...Node) *GroupingSetNode {
	return &GroupingSetNode{Type: Cube, Columns: cols}
}

// NewRollup creates a ROLLUP(cols...) grouping set.
func NewRollup(cols ...Node) *GroupingSetNode {
	return &GroupingSetNode{Type: Rollup, Columns: cols}
}

// NewGroupingSets creates a GROUPING SETS(sets...) grouping set. An empty
// set renders as the grand-total group ().
func NewGroupingSets(sets ...[]Node) *GroupingSetNode {
	return &GroupingSetNode{Type: GroupingSets, Sets: sets}
}

func (n *GroupingSetNode) Kind() Kind { return groupingSetKinds[n.Type] }

func (n *GroupingSetNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add(groupingSetSQL[n.Type] + "(")
	if n.Type != GroupingSets {
		if err := EmitList(c, visit, n.Columns, ", "); err != nil {
			return err
		}
		c.Add(")")
		return nil
	}
	for i, set := range n.Sets {
		if i > 0 {
			c.Add(", ")
		}
		c.Add("(")
		if err := EmitList(c, visit, set, ", "); err != nil {
			return err
		}
		c.Add(")")
	}
	c.Add(")")
	return nil
}

func init() {
	Register(KindCube, func(ops ...Node) Node {
		arity(KindCube, ops, 1, -1)
		return NewCube(ops...)
	})
	Register(KindRollup, func(ops ...Node) Node {
		arity(KindRollup, ops, 1, -1)
		return NewRollup(ops...)
	})
}
