package nodes

import "github.com/bawdo/relal/collector"

// OnConflictAction specifies the action for ON CONFLICT clauses.
type OnConflictAction int

const (
	DoNothing OnConflictAction = iota
	DoUpdate
)

// AssignmentNode represents a column = value pair in SET clauses.
type AssignmentNode struct {
	Left  Node // column (Attribute)
	Right Node // value
}

// NewAssignment creates an AssignmentNode. Scalars compared against an
// attribute column are cast through it.
func NewAssignment(col Node, val any) *AssignmentNode {
	return &AssignmentNode{Left: col, Right: promote(col, val)}
}

func (n *AssignmentNode) Kind() Kind { return KindAssignment }

func (n *AssignmentNode) Render(c *collector.Collector, visit VisitFunc) error {
	if err := emitColumnName(c, visit, n.Left); err != nil {
		return err
	}
	return Emit(c, visit, " = ", n.Right)
}

// emitColumnName writes an attribute without its table qualifier, as
// required by column lists and SET targets.
func emitColumnName(c *collector.Collector, visit VisitFunc, col Node) error {
	if a, ok := col.(*Attribute); ok {
		c.Add(c.QuoteColumnName(a.Name))
		return nil
	}
	return Emit(c, visit, col)
}

func emitColumnList(c *collector.Collector, visit VisitFunc, cols []Node) error {
	c.Add(" (")
	for i, col := range cols {
		if i > 0 {
			c.Add(", ")
		}
		if err := emitColumnName(c, visit, col); err != nil {
			return err
		}
	}
	c.Add(")")
	return nil
}

func emitAssignments(c *collector.Collector, visit VisitFunc, as []*AssignmentNode) error {
	for i, a := range as {
		if i > 0 {
			c.Add(", ")
		}
		if err := visit(a); err != nil {
			return err
		}
	}
	return nil
}

// InsertStatement represents INSERT INTO ... VALUES / SELECT.
type InsertStatement struct {
	Into       Node            // *Table
	Columns    []Node          // column list
	Values     [][]Node        // rows of values (multi-row)
	Select     Node            // for INSERT FROM SELECT (mutually exclusive with Values)
	Returning  []Node          // RETURNING columns
	OnConflict *OnConflictNode // ON CONFLICT clause
}

func (n *InsertStatement) Kind() Kind { return KindInsertStatement }

func (n *InsertStatement) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Into == nil {
		return &MalformedNodeError{Kind: KindInsertStatement, Reason: "INSERT without target table"}
	}
	if err := Emit(c, visit, "INSERT INTO ", n.Into); err != nil {
		return err
	}
	if len(n.Columns) > 0 {
		if err := emitColumnList(c, visit, n.Columns); err != nil {
			return err
		}
	}
	switch {
	case n.Select != nil:
		if err := Emit(c, visit, " ", n.Select); err != nil {
			return err
		}
	case len(n.Values) > 0:
		c.Add(" VALUES ")
		for i, row := range n.Values {
			if i > 0 {
				c.Add(", ")
			}
			c.Add("(")
			if err := EmitList(c, visit, row, ", "); err != nil {
				return err
			}
			c.Add(")")
		}
	default:
		c.Add(" DEFAULT VALUES")
	}
	if n.OnConflict != nil {
		if err := Emit(c, visit, " ", n.OnConflict); err != nil {
			return err
		}
	}
	return emitClause(c, visit, " RETURNING ", n.Returning, ", ")
}

// UpdateStatement represents UPDATE ... SET ... WHERE.
type UpdateStatement struct {
	Table       Node
	Assignments []*AssignmentNode
	Wheres      []Node
	Returning   []Node
}

func (n *UpdateStatement) Kind() Kind { return KindUpdateStatement }

func (n *UpdateStatement) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Table == nil {
		return &MalformedNodeError{Kind: KindUpdateStatement, Reason: "UPDATE without table"}
	}
	if len(n.Assignments) == 0 {
		return &MalformedNodeError{Kind: KindUpdateStatement, Reason: "UPDATE without SET"}
	}
	if err := Emit(c, visit, "UPDATE ", n.Table, " SET "); err != nil {
		return err
	}
	if err := emitAssignments(c, visit, n.Assignments); err != nil {
		return err
	}
	if err := emitClause(c, visit, " WHERE ", n.Wheres, " AND "); err != nil {
		return err
	}
	return emitClause(c, visit, " RETURNING ", n.Returning, ", ")
}

// DeleteStatement represents DELETE FROM ... WHERE.
type DeleteStatement struct {
	From      Node
	Wheres    []Node
	Returning []Node
}

func (n *DeleteStatement) Kind() Kind { return KindDeleteStatement }

func (n *DeleteStatement) Render(c *collector.Collector, visit VisitFunc) error {
	if n.From == nil {
		return &MalformedNodeError{Kind: KindDeleteStatement, Reason: "DELETE without table"}
	}
	if err := Emit(c, visit, "DELETE FROM ", n.From); err != nil {
		return err
	}
	if err := emitClause(c, visit, " WHERE ", n.Wheres, " AND "); err != nil {
		return err
	}
	return emitClause(c, visit, " RETURNING ", n.Returning, ", ")
}

// OnConflictNode represents ON CONFLICT (...) DO NOTHING / DO UPDATE SET ...
type OnConflictNode struct {
	Columns     []Node            // conflict target columns
	Action      OnConflictAction  // DoNothing or DoUpdate
	Assignments []*AssignmentNode // SET for DO UPDATE
	Wheres      []Node            // WHERE for DO UPDATE
}

func (n *OnConflictNode) Kind() Kind { return KindOnConflict }

func (n *OnConflictNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add("ON CONFLICT")
	if len(n.Columns) > 0 {
		if err := emitColumnList(c, visit, n.Columns); err != nil {
			return err
		}
	}
	if n.Action == DoNothing {
		c.Add(" DO NOTHING")
		return nil
	}
	if len(n.Assignments) == 0 {
		return &MalformedNodeError{Kind: KindOnConflict, Reason: "DO UPDATE without SET"}
	}
	c.Add(" DO UPDATE SET ")
	if err := emitAssignments(c, visit, n.Assignments); err != nil {
		return err
	}
	return emitClause(c, visit, " WHERE ", n.Wheres, " AND ")
}

func init() {
	Register(KindAssignment, func(ops ...Node) Node {
		arity(KindAssignment, ops, 2, 2)
		return &AssignmentNode{Left: ops[0], Right: ops[1]}
	})
}
