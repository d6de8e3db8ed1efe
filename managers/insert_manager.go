package managers

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// InsertManager provides a fluent API for building INSERT statements.
type InsertManager struct {
	treeManager
	Statement *nodes.InsertStatement
}

// NewInsertManager creates a new InsertManager targeting the given table.
func NewInsertManager(into nodes.Node) *InsertManager {
	return &InsertManager{
		Statement: &nodes.InsertStatement{Into: into},
	}
}

func (m *InsertManager) Kind() nodes.Kind { return nodes.KindInsertStatement }

func (m *InsertManager) Render(_ *collector.Collector, visit nodes.VisitFunc) error {
	stmt, err := m.Built()
	if err != nil {
		return err
	}
	return visit(stmt)
}

// Built returns a copy of the statement with the transformers applied.
func (m *InsertManager) Built() (nodes.Node, error) {
	return transform("insert", m.cloneStatement(), m.transformers, plugins.Transformer.TransformInsert)
}

// Columns sets the column list for the INSERT statement.
func (m *InsertManager) Columns(cols ...nodes.Node) *InsertManager {
	m.Statement.Columns = cols
	return m
}

// Values appends a row of values. Each call adds one row; raw Go values
// are wrapped with nodes.Literal.
func (m *InsertManager) Values(vals ...any) *InsertManager {
	row := make([]nodes.Node, len(vals))
	for i, v := range vals {
		row[i] = nodes.Literal(v)
	}
	m.Statement.Values = append(m.Statement.Values, row)
	return m
}

// FromSelect sets a query as the source of rows. When set, Values are
// ignored.
func (m *InsertManager) FromSelect(sel nodes.Node) *InsertManager {
	m.Statement.Select = sel
	return m
}

// Returning sets the RETURNING clause columns.
func (m *InsertManager) Returning(cols ...nodes.Node) *InsertManager {
	m.Statement.Returning = cols
	return m
}

// OnConflict begins an ON CONFLICT clause targeting the given columns.
func (m *InsertManager) OnConflict(cols ...nodes.Node) *OnConflictContext {
	oc := &nodes.OnConflictNode{Columns: cols}
	m.Statement.OnConflict = oc
	return &OnConflictContext{manager: m, node: oc}
}

// Use registers a transformer plugin.
func (m *InsertManager) Use(t plugins.Transformer) *InsertManager {
	m.addTransformer(t)
	return m
}

func (m *InsertManager) Compile(c Compiler) (collector.CompiledQuery, error) {
	return c.Compile(m)
}

// ToSQL applies transformers and returns the SQL and its bind values.
func (m *InsertManager) ToSQL(c Compiler) (string, []any, error) {
	return toSQL(c, m)
}

func (m *InsertManager) cloneStatement() *nodes.InsertStatement {
	out := *m.Statement
	out.Columns = append([]nodes.Node(nil), m.Statement.Columns...)
	out.Values = make([][]nodes.Node, len(m.Statement.Values))
	for i, row := range m.Statement.Values {
		out.Values[i] = append([]nodes.Node(nil), row...)
	}
	out.Returning = append([]nodes.Node(nil), m.Statement.Returning...)
	return &out
}

// OnConflictContext guides ON CONFLICT clause construction.
type OnConflictContext struct {
	manager *InsertManager
	node    *nodes.OnConflictNode
}

// DoNothing sets the action to DO NOTHING and returns the InsertManager.
func (c *OnConflictContext) DoNothing() *InsertManager {
	c.node.Action = nodes.DoNothing
	return c.manager
}

// DoUpdate sets the action to DO UPDATE with the given assignments.
func (c *OnConflictContext) DoUpdate(assignments ...*nodes.AssignmentNode) *OnConflictUpdateContext {
	c.node.Action = nodes.DoUpdate
	c.node.Assignments = assignments
	return &OnConflictUpdateContext{manager: c.manager, node: c.node}
}

// OnConflictUpdateContext allows adding a WHERE to DO UPDATE.
type OnConflictUpdateContext struct {
	manager *InsertManager
	node    *nodes.OnConflictNode
}

// Where adds conditions to the DO UPDATE clause.
func (c *OnConflictUpdateContext) Where(conditions ...nodes.Node) *InsertManager {
	c.node.Wheres = conditions
	return c.manager
}

// Done returns the InsertManager without a DO UPDATE condition.
func (c *OnConflictUpdateContext) Done() *InsertManager { return c.manager }
