// Package managers provides the fluent builders that assemble statement
// trees: SelectManager, InsertManager, UpdateManager and DeleteManager.
package managers

import (
	"fmt"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// Compiler turns a node tree into SQL. *visitors.Visitor implements it.
type Compiler interface {
	Compile(n nodes.Node) (collector.CompiledQuery, error)
}

// treeManager is the shared base for all manager types. It holds the
// transformer pipeline common to Select, Insert, Update, and Delete managers.
type treeManager struct {
	transformers []plugins.Transformer
}

func (tm *treeManager) addTransformer(t plugins.Transformer) {
	tm.transformers = append(tm.transformers, t)
}

// Transformers returns the registered transformer pipeline.
func (tm *treeManager) Transformers() []plugins.Transformer {
	return tm.transformers
}

// toSQL compiles n and splits the result into SQL and bind values.
func toSQL(c Compiler, n nodes.Node) (string, []any, error) {
	q, err := c.Compile(n)
	if err != nil {
		return "", nil, err
	}
	return q.SQL, q.Binds, nil
}

// transform runs each transformer over stmt in registration order.
func transform[T any](name string, stmt T, steps []plugins.Transformer, apply func(plugins.Transformer, T) (T, error)) (T, error) {
	for _, t := range steps {
		var err error
		stmt, err = apply(t, stmt)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("transform %s: %w", name, err)
		}
	}
	return stmt, nil
}

// build constructs a node through the registry and checks its type.
func build[T nodes.Node](kind nodes.Kind, ops ...nodes.Node) T {
	n := nodes.Build(kind, ops...)
	out, ok := n.(T)
	if !ok {
		panic(fmt.Sprintf("relal: %s factory returned %T", kind, n))
	}
	return out
}
