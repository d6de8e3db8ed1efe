package visitors

import (
	"strings"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
)

// WithFormatting renders statements as human-readable multi-line SQL: each
// major clause starts a new line and lists use leading-comma continuation.
// Expressions inside clauses render exactly as without formatting.
func WithFormatting() Option {
	return func(v *Visitor) {
		v.Override(nodes.KindSelectCore, typed(formatSelectCore))
		v.Override(nodes.KindSelectStatement, formatSelectStatement)
		for _, k := range []nodes.Kind{
			nodes.KindUnion, nodes.KindUnionAll,
			nodes.KindIntersect, nodes.KindIntersectAll,
			nodes.KindExcept, nodes.KindExceptAll,
		} {
			v.Override(k, typed(formatSetOperation))
		}
		v.Override(nodes.KindInsertStatement, formatInsert)
		v.Override(nodes.KindUpdateStatement, formatUpdate)
		v.Override(nodes.KindDeleteStatement, formatDelete)
	}
}

// formatList writes keyword, the first item, then "sep item" for the rest.
func formatList(c *collector.Collector, visit nodes.VisitFunc, keyword string, items []nodes.Node, sep string) error {
	if len(items) == 0 {
		return nil
	}
	c.Add(keyword)
	for i, item := range items {
		if i > 0 {
			c.Add(sep)
		}
		if err := nodes.Emit(c, visit, item); err != nil {
			return err
		}
	}
	return nil
}

func formatSelectCore(core *nodes.SelectCore, c *collector.Collector, visit nodes.VisitFunc) error {
	if core.Comment != "" {
		c.Add("/* " + c.SanitizeComment(core.Comment) + " */\n")
	}
	c.Add("SELECT")
	if len(core.OptimizerHints) > 0 {
		hints := make([]string, len(core.OptimizerHints))
		for i, h := range core.OptimizerHints {
			hints[i] = c.SanitizeComment(h)
		}
		c.Add(" /*+ " + strings.Join(hints, " ") + " */")
	}
	if core.SetQuantifier != nil {
		if err := nodes.Emit(c, visit, " ", core.SetQuantifier); err != nil {
			return err
		}
	}
	if len(core.Projections) == 0 {
		c.Add(" *")
	} else if err := formatList(c, visit, " ", core.Projections, "\n\t,"); err != nil {
		return err
	}
	if src := core.Source; !src.Empty() {
		if src.Left != nil {
			c.Add("\nFROM ")
			left := src.Left
			if left.Kind() == nodes.KindSelectCore || left.Kind() == nodes.KindSelectStatement {
				if err := nodes.Emit(c, visit, "(", left, ")"); err != nil {
					return err
				}
			} else if err := visit(left); err != nil {
				return err
			}
		}
		for _, j := range src.Right {
			if err := nodes.Emit(c, visit, "\n", j); err != nil {
				return err
			}
		}
	}
	if err := formatList(c, visit, "\nWHERE ", core.Wheres, "\n\tAND "); err != nil {
		return err
	}
	if err := formatList(c, visit, "\nGROUP BY ", core.Groups, "\n\t,"); err != nil {
		return err
	}
	if err := formatList(c, visit, "\nHAVING ", core.Havings, "\n\tAND "); err != nil {
		return err
	}
	for i, w := range core.Windows {
		if i == 0 {
			c.Add("\nWINDOW ")
		} else {
			c.Add(", ")
		}
		if err := nodes.Emit(c, visit, c.QuoteColumnName(w.Name)+" AS ", w); err != nil {
			return err
		}
	}
	return nil
}

func formatSelectStatement(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error {
	stmt, ok := n.(*nodes.SelectStatement)
	if !ok {
		// a re-registered statement type renders itself
		return n.Render(c, visit)
	}
	if err := stmt.CheckCores(); err != nil {
		return err
	}
	if len(stmt.With) > 0 {
		c.Add("WITH ")
		for _, cte := range stmt.With {
			if cte.Recursive {
				c.Add("RECURSIVE ")
				break
			}
		}
		for i, cte := range stmt.With {
			if i > 0 {
				c.Add(",\n")
			}
			if err := visit(cte); err != nil {
				return err
			}
		}
		c.Add("\n")
	}
	if err := visit(stmt.Cores[0]); err != nil {
		return err
	}
	if err := formatList(c, visit, "\nORDER BY ", stmt.Orders, "\n\t,"); err != nil {
		return err
	}
	if stmt.Limit != nil {
		if err := nodes.Emit(c, visit, "\n", stmt.Limit); err != nil {
			return err
		}
	}
	if stmt.Offset != nil {
		if err := nodes.Emit(c, visit, "\n", stmt.Offset); err != nil {
			return err
		}
	}
	if stmt.Lock != nil && stmt.Lock.Mode != nodes.NoLock {
		return nodes.Emit(c, visit, "\n", stmt.Lock)
	}
	return nil
}

// formatSetOperation renders each leg in parentheses with the operator on
// its own line between them. A chain of the same operation stays flat.
func formatSetOperation(op *nodes.SetOperationNode, c *collector.Collector, visit nodes.VisitFunc) error {
	for i, leg := range op.Legs() {
		if i > 0 {
			c.Add("\n" + op.Type.String() + "\n")
		}
		if err := nodes.Emit(c, visit, "(\n", leg, "\n)"); err != nil {
			return err
		}
	}
	return nil
}

func formatInsert(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error {
	stmt, ok := n.(*nodes.InsertStatement)
	if !ok {
		return n.Render(c, visit)
	}
	if stmt.Into == nil {
		return &nodes.MalformedNodeError{Kind: nodes.KindInsertStatement, Reason: "INSERT without target table"}
	}
	if err := nodes.Emit(c, visit, "INSERT INTO ", stmt.Into); err != nil {
		return err
	}
	if len(stmt.Columns) > 0 {
		names := make([]string, len(stmt.Columns))
		for i, col := range stmt.Columns {
			if a, ok := col.(*nodes.Attribute); ok {
				names[i] = c.QuoteColumnName(a.Name)
			}
		}
		c.Add(" (" + strings.Join(names, ", ") + ")")
	}
	switch {
	case stmt.Select != nil:
		if err := nodes.Emit(c, visit, "\n", stmt.Select); err != nil {
			return err
		}
	case len(stmt.Values) > 0:
		c.Add("\nVALUES ")
		for i, row := range stmt.Values {
			if i > 0 {
				c.Add("\n\t,")
			}
			c.Add("(")
			if err := nodes.EmitList(c, visit, row, ", "); err != nil {
				return err
			}
			c.Add(")")
		}
	default:
		c.Add("\nDEFAULT VALUES")
	}
	if stmt.OnConflict != nil {
		if err := nodes.Emit(c, visit, "\n", stmt.OnConflict); err != nil {
			return err
		}
	}
	return formatList(c, visit, "\nRETURNING ", stmt.Returning, "\n\t,")
}

func formatUpdate(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error {
	stmt, ok := n.(*nodes.UpdateStatement)
	if !ok {
		return n.Render(c, visit)
	}
	if stmt.Table == nil || len(stmt.Assignments) == 0 {
		return &nodes.MalformedNodeError{Kind: nodes.KindUpdateStatement, Reason: "UPDATE without table or SET"}
	}
	if err := nodes.Emit(c, visit, "UPDATE ", stmt.Table); err != nil {
		return err
	}
	assignments := make([]nodes.Node, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		assignments[i] = a
	}
	if err := formatList(c, visit, "\nSET ", assignments, "\n\t,"); err != nil {
		return err
	}
	if err := formatList(c, visit, "\nWHERE ", stmt.Wheres, "\n\tAND "); err != nil {
		return err
	}
	return formatList(c, visit, "\nRETURNING ", stmt.Returning, "\n\t,")
}

func formatDelete(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error {
	stmt, ok := n.(*nodes.DeleteStatement)
	if !ok {
		return n.Render(c, visit)
	}
	if stmt.From == nil {
		return &nodes.MalformedNodeError{Kind: nodes.KindDeleteStatement, Reason: "DELETE without table"}
	}
	if err := nodes.Emit(c, visit, "DELETE FROM ", stmt.From); err != nil {
		return err
	}
	if err := formatList(c, visit, "\nWHERE ", stmt.Wheres, "\n\tAND "); err != nil {
		return err
	}
	return formatList(c, visit, "\nRETURNING ", stmt.Returning, "\n\t,")
}
