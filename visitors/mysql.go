package visitors

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/nodes"
)

// NewMySQLVisitor creates a visitor for MySQL. Identifiers are quoted
// with backticks and every placeholder is ?.
func NewMySQLVisitor(opts ...Option) *Visitor {
	return New(dialect.MySQL, append(mysqlOptions(), opts...)...)
}

func mysqlOptions() []Option {
	return []Option{
		WithOverride(nodes.KindRegex, regexOperators(" REGEXP ", " NOT REGEXP ", "", "")),
		WithOverride(nodes.KindNotRegex, regexOperators(" REGEXP ", " NOT REGEXP ", "", "")),
		WithOverride(nodes.KindCaseSensitiveEqual, infix(" = BINARY ")),
		WithOverride(nodes.KindCaseInsensitiveEqual, infix(" = ")),
		WithOverride(nodes.KindIsDistinctFrom, typed(func(cmp *nodes.ComparisonNode, c *collector.Collector, visit nodes.VisitFunc) error {
			return nodes.Emit(c, visit, "NOT (", cmp.Left, " <=> ", cmp.Right, ")")
		})),
		WithOverride(nodes.KindIsNotDistinctFrom, infix(" <=> ")),
		WithOverride(nodes.KindLateral, renderLateral),
		WithOverride(nodes.KindLock, typed(mysqlLock)),
	}
}

// mysqlLock rejects the PostgreSQL-only key lock strengths.
func mysqlLock(l *nodes.LockNode, c *collector.Collector, visit nodes.VisitFunc) error {
	switch l.Mode {
	case nodes.ForNoKeyUpdate, nodes.ForKeyShare:
		return featureError(c, l.Mode.String())
	}
	return l.Render(c, visit)
}
