package visitors

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/nodes"
)

// NewSQLiteVisitor creates a visitor for SQLite. Identifiers are quoted
// with double quotes and every placeholder is ?.
//
// REGEXP requires the application to register a regexp() function on the
// connection; SQLite ships none.
func NewSQLiteVisitor(opts ...Option) *Visitor {
	return New(dialect.SQLite, append(sqliteOptions(), opts...)...)
}

func sqliteOptions() []Option {
	return []Option{
		WithOverride(nodes.KindRegex, regexOperators(" REGEXP ", " NOT REGEXP ", "", "")),
		WithOverride(nodes.KindNotRegex, regexOperators(" REGEXP ", " NOT REGEXP ", "", "")),
		WithOverride(nodes.KindCaseSensitiveEqual, collate("BINARY")),
		WithOverride(nodes.KindCaseInsensitiveEqual, collate("NOCASE")),
		WithOverride(nodes.KindIsDistinctFrom, infix(" IS NOT ")),
		WithOverride(nodes.KindIsNotDistinctFrom, infix(" IS ")),
		WithOverride(nodes.KindNullsFirst, renderNulls),
		WithOverride(nodes.KindNullsLast, renderNulls),
		WithOverride(nodes.KindLock, func(n nodes.Node, c *collector.Collector, _ nodes.VisitFunc) error {
			if l, ok := n.(*nodes.LockNode); ok {
				return featureError(c, "row locking ("+l.Mode.String()+")")
			}
			return featureError(c, "row locking")
		}),
	}
}

func collate(name string) RenderFunc {
	return typed(func(cmp *nodes.ComparisonNode, c *collector.Collector, visit nodes.VisitFunc) error {
		return nodes.Emit(c, visit, cmp.Left, " = ", cmp.Right, " COLLATE "+name)
	})
}
