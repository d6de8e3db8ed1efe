package managers

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// UpdateManager provides a fluent API for building UPDATE statements.
type UpdateManager struct {
	treeManager
	Statement *nodes.UpdateStatement
}

// NewUpdateManager creates a new UpdateManager targeting the given table.
func NewUpdateManager(table nodes.Node) *UpdateManager {
	return &UpdateManager{
		Statement: &nodes.UpdateStatement{Table: table},
	}
}

func (m *UpdateManager) Kind() nodes.Kind { return nodes.KindUpdateStatement }

func (m *UpdateManager) Render(_ *collector.Collector, visit nodes.VisitFunc) error {
	stmt, err := m.Built()
	if err != nil {
		return err
	}
	return visit(stmt)
}

// Built returns a copy of the statement with the transformers applied.
func (m *UpdateManager) Built() (nodes.Node, error) {
	return transform("update", m.cloneStatement(), m.transformers, plugins.Transformer.TransformUpdate)
}

// Set adds a column assignment to the SET clause. val can be a raw Go
// value or a Node; raw values compared against a typed column are cast.
func (m *UpdateManager) Set(col nodes.Node, val any) *UpdateManager {
	m.Statement.Assignments = append(m.Statement.Assignments, nodes.NewAssignment(col, val))
	return m
}

// Where appends conditions to the WHERE clause.
func (m *UpdateManager) Where(conditions ...nodes.Node) *UpdateManager {
	m.Statement.Wheres = append(m.Statement.Wheres, conditions...)
	return m
}

// Returning sets the RETURNING clause columns.
func (m *UpdateManager) Returning(cols ...nodes.Node) *UpdateManager {
	m.Statement.Returning = cols
	return m
}

// Use registers a transformer plugin.
func (m *UpdateManager) Use(t plugins.Transformer) *UpdateManager {
	m.addTransformer(t)
	return m
}

func (m *UpdateManager) Compile(c Compiler) (collector.CompiledQuery, error) {
	return c.Compile(m)
}

// ToSQL applies transformers and returns the SQL and its bind values.
func (m *UpdateManager) ToSQL(c Compiler) (string, []any, error) {
	return toSQL(c, m)
}

func (m *UpdateManager) cloneStatement() *nodes.UpdateStatement {
	out := *m.Statement
	out.Assignments = append([]*nodes.AssignmentNode(nil), m.Statement.Assignments...)
	out.Wheres = append([]nodes.Node(nil), m.Statement.Wheres...)
	out.Returning = append([]nodes.Node(nil), m.Statement.Returning...)
	return &out
}
