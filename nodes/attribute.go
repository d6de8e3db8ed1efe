package nodes

import (
	"fmt"

	"github.com/bawdo/relal/collector"
)

// Attribute represents a column reference bound to a table or table alias.
// Visitors route attributes through their attribute hook, never through
// the per-kind override table.
type Attribute struct {
	Expression
	Name     string
	Relation Node   // *Table or *TableAlias; nil renders the bare column
	TypeName string // SQL type used when casting compared values
}

// NewAttribute creates an Attribute of relation.
func NewAttribute(relation Node, name string) *Attribute {
	a := &Attribute{Name: name, Relation: relation}
	a.setSelf(a)
	return a
}

func (a *Attribute) Kind() Kind { return KindAttribute }

func (a *Attribute) Render(c *collector.Collector, _ VisitFunc) error {
	if rel := RelationName(a.Relation); rel != "" {
		c.Add(c.QuoteTableName(rel) + ".")
	}
	c.Add(c.QuoteColumnName(a.Name))
	return nil
}

// Typed returns a copy of the Attribute with TypeName set. Values compared
// against the copy render as CAST(value AS typeName).
func (a *Attribute) Typed(typeName string) *Attribute {
	validateSQLTypeName(typeName)
	c := NewAttribute(a.Relation, a.Name)
	c.TypeName = typeName
	return c
}

// Coerce wraps val the way capability methods on a do.
func (a *Attribute) Coerce(val any) Node {
	return promote(a, val)
}

// validateSQLTypeName panics if the type name contains characters outside
// letters, digits, spaces, underscores, parentheses and commas.
func validateSQLTypeName(name string) {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != ' ' && c != '(' &&
			c != ')' && c != ',' && c != '_' {
			panic(fmt.Sprintf("relal: invalid SQL type name character %q in %q", string(c), name))
		}
	}
}
