package managers

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// DeleteManager provides a fluent API for building DELETE statements.
type DeleteManager struct {
	treeManager
	Statement *nodes.DeleteStatement
}

// NewDeleteManager creates a new DeleteManager targeting the given table.
func NewDeleteManager(from nodes.Node) *DeleteManager {
	return &DeleteManager{
		Statement: &nodes.DeleteStatement{From: from},
	}
}

func (m *DeleteManager) Kind() nodes.Kind { return nodes.KindDeleteStatement }

func (m *DeleteManager) Render(_ *collector.Collector, visit nodes.VisitFunc) error {
	stmt, err := m.Built()
	if err != nil {
		return err
	}
	return visit(stmt)
}

// Built returns a copy of the statement with the transformers applied.
func (m *DeleteManager) Built() (nodes.Node, error) {
	return transform("delete", m.cloneStatement(), m.transformers, plugins.Transformer.TransformDelete)
}

// Where appends conditions to the WHERE clause.
func (m *DeleteManager) Where(conditions ...nodes.Node) *DeleteManager {
	m.Statement.Wheres = append(m.Statement.Wheres, conditions...)
	return m
}

// Returning sets the RETURNING clause columns.
func (m *DeleteManager) Returning(cols ...nodes.Node) *DeleteManager {
	m.Statement.Returning = cols
	return m
}

// Use registers a transformer plugin.
func (m *DeleteManager) Use(t plugins.Transformer) *DeleteManager {
	m.addTransformer(t)
	return m
}

func (m *DeleteManager) Compile(c Compiler) (collector.CompiledQuery, error) {
	return c.Compile(m)
}

func (m *DeleteManager) ToSQL(c Compiler) (string, []any, error) {
	return toSQL(c, m)
}

func (m *DeleteManager) cloneStatement() *nodes.DeleteStatement {
	out := *m.Statement
	out.Wheres = append([]nodes.Node(nil), m.Statement.Wheres...)
	out.Returning = append([]nodes.Node(nil), m.Statement.Returning...)
	return &out
}
