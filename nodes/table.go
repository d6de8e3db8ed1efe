package nodes

import "github.com/bawdo/relal/collector"

// Table represents a SQL table reference.
type Table struct {
	Name string
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Kind() Kind { return KindTable }

func (t *Table) Render(c *collector.Collector, _ VisitFunc) error {
	c.Add(c.QuoteTableName(t.Name))
	return nil
}

// Col creates an Attribute (column reference) bound to this table.
func (t *Table) Col(name string) *Attribute {
	return NewAttribute(t, name)
}

// Alias creates an aliased reference to this table.
func (t *Table) Alias(name string) *TableAlias {
	return &TableAlias{Relation: t, AliasName: name}
}

// Star creates a qualified star (table.*) for this table.
func (t *Table) Star() *StarNode {
	return &StarNode{Table: t}
}

// TableAlias exposes a table or a sub-select under another name.
type TableAlias struct {
	Relation  Node // *Table, a SELECT, or any relation node
	AliasName string
}

// NewTableAlias wraps relation under name.
func NewTableAlias(relation Node, name string) *TableAlias {
	return &TableAlias{Relation: relation, AliasName: name}
}

func (ta *TableAlias) Kind() Kind { return KindTableAlias }

func (ta *TableAlias) Render(c *collector.Collector, visit VisitFunc) error {
	if _, ok := ta.Relation.(*Table); ok {
		return Emit(c, visit, ta.Relation, " AS "+c.QuoteTableName(ta.AliasName))
	}
	return Emit(c, visit, "(", ta.Relation, ") AS "+c.QuoteTableName(ta.AliasName))
}

// Col creates an Attribute (column reference) bound to this table alias.
func (ta *TableAlias) Col(name string) *Attribute {
	return NewAttribute(ta, name)
}

// RelationName returns the name used to qualify columns of a relation:
// the table name for a Table, the alias for a TableAlias.
func RelationName(n Node) string {
	switch r := n.(type) {
	case *Table:
		return r.Name
	case *TableAlias:
		return r.AliasName
	default:
		return ""
	}
}

// TableSourceName returns the underlying table name of a relation,
// looking through aliases of plain tables.
func TableSourceName(n Node) string {
	switch r := n.(type) {
	case *Table:
		return r.Name
	case *TableAlias:
		if tbl, ok := r.Relation.(*Table); ok {
			return tbl.Name
		}
		return r.AliasName
	default:
		return ""
	}
}
