package visitors

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/nodes"
)

// NewPostgresVisitor creates a visitor for PostgreSQL. Identifiers are
// quoted with double quotes and placeholders are $1, $2, ...
func NewPostgresVisitor(opts ...Option) *Visitor {
	return New(dialect.Postgres, append(postgresOptions(), opts...)...)
}

func postgresOptions() []Option {
	return []Option{
		WithOverride(nodes.KindRegex, regexOperators(" ~ ", " !~ ", " ~* ", " !~* ")),
		WithOverride(nodes.KindNotRegex, regexOperators(" ~ ", " !~ ", " ~* ", " !~* ")),
		WithOverride(nodes.KindMatches, typed(postgresMatch)),
		WithOverride(nodes.KindDoesNotMatch, typed(postgresMatch)),
		WithOverride(nodes.KindIsDistinctFrom, infix(" IS DISTINCT FROM ")),
		WithOverride(nodes.KindIsNotDistinctFrom, infix(" IS NOT DISTINCT FROM ")),
		WithOverride(nodes.KindContains, infix(" @> ")),
		WithOverride(nodes.KindOverlaps, infix(" && ")),
		WithOverride(nodes.KindDistinctOn, typed((*nodes.DistinctOnNode).RenderDistinctOn)),
		WithOverride(nodes.KindLateral, renderLateral),
		WithOverride(nodes.KindNullsFirst, renderNulls),
		WithOverride(nodes.KindNullsLast, renderNulls),
	}
}

// postgresMatch renders case-insensitive LIKE as ILIKE.
func postgresMatch(m *nodes.MatchNode, c *collector.Collector, visit nodes.VisitFunc) error {
	if m.CaseSensitive {
		return m.Render(c, visit)
	}
	if m.Negate {
		return m.RenderWith(c, visit, " NOT ILIKE ")
	}
	return m.RenderWith(c, visit, " ILIKE ")
}
