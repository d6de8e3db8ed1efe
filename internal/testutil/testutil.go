// Package testutil provides shared test helpers for the relal project.
package testutil

import (
	"strconv"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/internal/quoting"
	"github.com/bawdo/relal/nodes"
)

// Adapter is a minimal dialect used by node-level tests: double-quoted
// identifiers and $n placeholders. Values are quoted the ANSI way.
type Adapter struct{}

var _ dialect.Adapter = Adapter{}

func (Adapter) Name() string                      { return "test" }
func (Adapter) QuoteTableName(name string) string { return quoting.DoubleQuote(name) }
func (Adapter) QuoteColumnName(name string) string {
	return quoting.DoubleQuote(name)
}
func (Adapter) QuoteValue(v any) string         { return dialect.ANSI.QuoteValue(v) }
func (Adapter) SanitizeComment(s string) string { return quoting.SanitizeComment(s) }
func (Adapter) Placeholder(i int) string        { return "$" + strconv.Itoa(i) }

// NewCollector returns a collector over Adapter whose bind index starts
// at 0, so the first placeholder is $0.
func NewCollector(opts ...collector.Option) *collector.Collector {
	return collector.New(Adapter{}, append([]collector.Option{collector.WithBase(0)}, opts...)...)
}

// Render compiles n with a base-0 test collector and no overrides: every
// node renders itself.
func Render(n nodes.Node, opts ...collector.Option) (collector.CompiledQuery, error) {
	c := NewCollector(opts...)
	var visit nodes.VisitFunc
	visit = func(child nodes.Node) error {
		return child.Render(c, visit)
	}
	if err := visit(n); err != nil {
		return collector.CompiledQuery{}, err
	}
	return c.Export(), nil
}

// MustRender is Render for nodes that are expected to compile.
func MustRender(n nodes.Node) string {
	q, err := Render(n)
	if err != nil {
		panic(err)
	}
	return q.SQL
}
