package managers

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// SelectManager provides a fluent API for building SELECT queries.
// It wraps a SelectStatement and applies transformer plugins before SQL
// generation. A SelectManager is itself a node, so it can be used as a
// subquery anywhere a node is accepted.
type SelectManager struct {
	treeManager
	Ast  *nodes.SelectStatement
	Core *nodes.SelectCore // the core clauses are added to
}

// NewSelectManager creates a new SelectManager with the given table as FROM.
// If from is nil, the FROM clause is left unset.
func NewSelectManager(from nodes.Node) *SelectManager {
	stmt := nodes.NewSelectStatement()
	core := stmt.Cores[0]
	core.Source.Left = from
	return &SelectManager{Ast: stmt, Core: core}
}

// Kind reports KindSelectStatement. A SelectManager is a nodes.Builder:
// visitors render the *nodes.SelectStatement returned by Built.
func (m *SelectManager) Kind() nodes.Kind { return nodes.KindSelectStatement }

// Render writes the transformed statement.
func (m *SelectManager) Render(_ *collector.Collector, visit nodes.VisitFunc) error {
	stmt, err := m.statement()
	if err != nil {
		return err
	}
	return visit(stmt)
}

// Built returns a copy of the statement with the transformers applied.
func (m *SelectManager) Built() (nodes.Node, error) {
	stmt, err := m.statement()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// Select sets the projection list, replacing any existing projections.
func (m *SelectManager) Select(projections ...nodes.Node) *SelectManager {
	m.Core.Projections = projections
	return m
}

// Project is an alias for Select.
func (m *SelectManager) Project(projections ...nodes.Node) *SelectManager {
	return m.Select(projections...)
}

// From sets or changes the FROM source.
func (m *SelectManager) From(table nodes.Node) *SelectManager {
	m.Core.Source.Left = table
	return m
}

// Distinct enables or disables the DISTINCT quantifier.
func (m *SelectManager) Distinct(on ...bool) *SelectManager {
	if len(on) == 0 || on[0] {
		m.Core.SetQuantifier = nodes.Build(nodes.KindDistinct)
	} else {
		m.Core.SetQuantifier = nil
	}
	return m
}

// DistinctOn sets the DISTINCT ON columns. No columns clears the quantifier.
func (m *SelectManager) DistinctOn(cols ...nodes.Node) *SelectManager {
	if len(cols) == 0 {
		m.Core.SetQuantifier = nil
		return m
	}
	m.Core.SetQuantifier = nodes.Build(nodes.KindDistinctOn, cols...)
	return m
}

// Where appends one or more conditions to the WHERE clause. Conditions
// are combined with AND.
func (m *SelectManager) Where(conditions ...nodes.Node) *SelectManager {
	m.Core.Wheres = append(m.Core.Wheres, conditions...)
	return m
}

func (m *SelectManager) addJoin(kind nodes.Kind, relation nodes.Node) *JoinContext {
	j := build[*nodes.JoinNode](kind, relation)
	m.Core.Source.Right = append(m.Core.Source.Right, j)
	return &JoinContext{manager: m, core: m.Core, index: len(m.Core.Source.Right) - 1}
}

// Join adds a join to the query and returns a JoinContext for specifying
// the ON condition. The default join type is InnerJoin.
func (m *SelectManager) Join(table nodes.Node, joinTypes ...nodes.JoinType) *JoinContext {
	jt := nodes.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	return m.addJoin(jt.Kind(), table)
}

// OuterJoin is a convenience for Join with LeftOuterJoin type.
func (m *SelectManager) OuterJoin(table nodes.Node) *JoinContext {
	return m.Join(table, nodes.LeftOuterJoin)
}

func (m *SelectManager) RightOuterJoin(table nodes.Node) *JoinContext {
	return m.Join(table, nodes.RightOuterJoin)
}

func (m *SelectManager) FullOuterJoin(table nodes.Node) *JoinContext {
	return m.Join(table, nodes.FullOuterJoin)
}

// LateralJoin joins a LATERAL relation. Default join type is InnerJoin.
func (m *SelectManager) LateralJoin(table nodes.Node, joinTypes ...nodes.JoinType) *JoinContext {
	return m.Join(nodes.Build(nodes.KindLateral, table), joinTypes...)
}

// CrossJoin adds a cross join (no ON clause).
func (m *SelectManager) CrossJoin(table nodes.Node) *SelectManager {
	m.addJoin(nodes.KindCrossJoin, table)
	return m
}

// StringJoin adds a raw SQL join fragment.
//
// SECURITY: The raw string is injected verbatim into SQL output.
// Never pass user-controlled input to this method.
func (m *SelectManager) StringJoin(raw string) *SelectManager {
	m.addJoin(nodes.KindStringJoin, nodes.NewSqlLiteral(raw))
	return m
}

// Group appends one or more expressions to the GROUP BY clause.
func (m *SelectManager) Group(columns ...nodes.Node) *SelectManager {
	m.Core.Groups = append(m.Core.Groups, columns...)
	return m
}

// Having appends one or more conditions to the HAVING clause.
func (m *SelectManager) Having(conditions ...nodes.Node) *SelectManager {
	m.Core.Havings = append(m.Core.Havings, conditions...)
	return m
}

// Window appends one or more named window definitions to the WINDOW clause.
func (m *SelectManager) Window(defs ...*nodes.WindowDefinition) *SelectManager {
	m.Core.Windows = append(m.Core.Windows, defs...)
	return m
}

// Order appends to the ORDER BY clause.
func (m *SelectManager) Order(orderings ...nodes.Node) *SelectManager {
	m.Ast.Orders = append(m.Ast.Orders, orderings...)
	return m
}

// Limit sets the LIMIT value. The value is bound like any other literal.
func (m *SelectManager) Limit(n int) *SelectManager {
	m.Ast.Limit = nodes.Build(nodes.KindLimit, nodes.Literal(n))
	return m
}

// Take is an alias for Limit.
func (m *SelectManager) Take(n int) *SelectManager { return m.Limit(n) }

// Offset sets the OFFSET value.
func (m *SelectManager) Offset(n int) *SelectManager {
	m.Ast.Offset = nodes.Build(nodes.KindOffset, nodes.Literal(n))
	return m
}

// Skip is an alias for Offset.
func (m *SelectManager) Skip(n int) *SelectManager { return m.Offset(n) }

func (m *SelectManager) lock(mode nodes.LockMode) *SelectManager {
	if m.Ast.Lock == nil {
		m.Ast.Lock = &nodes.LockNode{}
	}
	m.Ast.Lock.Mode = mode
	return m
}

func (m *SelectManager) ForUpdate() *SelectManager      { return m.lock(nodes.ForUpdate) }
func (m *SelectManager) ForShare() *SelectManager       { return m.lock(nodes.ForShare) }
func (m *SelectManager) ForNoKeyUpdate() *SelectManager { return m.lock(nodes.ForNoKeyUpdate) }
func (m *SelectManager) ForKeyShare() *SelectManager    { return m.lock(nodes.ForKeyShare) }

// SkipLocked adds SKIP LOCKED to the lock clause. It has no effect until a
// lock mode is set.
func (m *SelectManager) SkipLocked() *SelectManager {
	if m.Ast.Lock == nil {
		m.Ast.Lock = &nodes.LockNode{}
	}
	m.Ast.Lock.SkipLocked = true
	return m
}

// Comment sets a query comment (rendered as /* ... */).
// Any occurrence of */ in the text is sanitized to prevent comment breakout.
func (m *SelectManager) Comment(text string) *SelectManager {
	m.Core.Comment = text
	return m
}

// Hint adds an optimizer hint (rendered as /*+ ... */ after SELECT).
func (m *SelectManager) Hint(hint string) *SelectManager {
	m.Core.OptimizerHints = append(m.Core.OptimizerHints, hint)
	return m
}

// With adds a Common Table Expression.
func (m *SelectManager) With(name string, query nodes.Node, columns ...string) *SelectManager {
	m.Ast.With = append(m.Ast.With, &nodes.CTENode{Name: name, Query: query, Columns: columns})
	return m
}

// WithRecursive adds a recursive Common Table Expression.
func (m *SelectManager) WithRecursive(name string, query nodes.Node, columns ...string) *SelectManager {
	m.Ast.With = append(m.Ast.With, &nodes.CTENode{Name: name, Query: query, Columns: columns, Recursive: true})
	return m
}

// The set operations combine this query with other. Both managers are
// rendered, transformers included, when the result is compiled.

func (m *SelectManager) Union(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindUnion, m, other)
}

func (m *SelectManager) UnionAll(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindUnionAll, m, other)
}

func (m *SelectManager) Intersect(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindIntersect, m, other)
}

func (m *SelectManager) IntersectAll(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindIntersectAll, m, other)
}

func (m *SelectManager) Except(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindExcept, m, other)
}

func (m *SelectManager) ExceptAll(other nodes.Node) nodes.Node {
	return nodes.Build(nodes.KindExceptAll, m, other)
}

// Exists wraps the query in EXISTS (...).
func (m *SelectManager) Exists() nodes.Node {
	return nodes.Build(nodes.KindExists, m)
}

// As exposes the query as a named subquery for FROM or JOIN clauses.
func (m *SelectManager) As(name string) *nodes.TableAlias {
	return nodes.NewTableAlias(m, name)
}

// Use registers a transformer plugin to be applied before SQL generation.
func (m *SelectManager) Use(t plugins.Transformer) *SelectManager {
	m.addTransformer(t)
	return m
}

// CloneStatement returns a copy of the statement that can be changed
// without affecting the manager.
func (m *SelectManager) CloneStatement() *nodes.SelectStatement {
	return m.Ast.Clone()
}

// statement applies the transformers to every core of a cloned statement.
func (m *SelectManager) statement() (*nodes.SelectStatement, error) {
	stmt := m.CloneStatement()
	for i, core := range stmt.Cores {
		out, err := transform("select", core, m.transformers, plugins.Transformer.TransformSelect)
		if err != nil {
			return nil, err
		}
		stmt.Cores[i] = out
	}
	return stmt, nil
}

// Compile applies transformers and compiles the statement with c.
func (m *SelectManager) Compile(c Compiler) (collector.CompiledQuery, error) {
	return c.Compile(m)
}

// ToSQL applies transformers and returns the SQL and its bind values.
func (m *SelectManager) ToSQL(c Compiler) (string, []any, error) {
	return toSQL(c, m)
}
