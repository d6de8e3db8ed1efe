// Package visitors compiles node trees into SQL for a dialect.
//
// A Visitor walks the tree by asking each node to render itself. Before a
// node renders, the visitor consults its override table, keyed by node
// kind, so a dialect can replace the rendering of any kind without the
// node knowing about dialects.
package visitors

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/nodes"
)

// RenderFunc renders n into c, visiting children through visit.
type RenderFunc func(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error

// AttributeRenderFunc renders column references. It takes precedence over
// the kind table for every *nodes.Attribute.
type AttributeRenderFunc func(a *nodes.Attribute, c *collector.Collector, visit nodes.VisitFunc) error

// Visitor compiles nodes for one dialect adapter. Once built it is
// read-only and safe to share between goroutines; each Compile uses its
// own collector.
type Visitor struct {
	adapter      dialect.Adapter
	overrides    map[nodes.Kind]RenderFunc
	attribute    AttributeRenderFunc
	parameterize bool
	logger       *slog.Logger
}

// Option configures a visitor at construction time.
type Option func(*Visitor)

// WithParams enables parameterized query mode. Values are replaced with
// bind placeholders and returned in CompiledQuery.Binds. This is the
// default.
func WithParams() Option {
	return func(v *Visitor) { v.parameterize = true }
}

// WithoutParams renders values inline as quoted literals.
//
// WARNING: this disables SQL injection protection. Use it for debugging
// output only, never with untrusted values.
func WithoutParams() Option {
	return func(v *Visitor) { v.parameterize = false }
}

// WithLogger sets the logger that receives render-time warnings.
func WithLogger(l *slog.Logger) Option {
	return func(v *Visitor) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithOverride installs fn as the renderer for kind.
func WithOverride(kind nodes.Kind, fn RenderFunc) Option {
	return func(v *Visitor) { v.Override(kind, fn) }
}

// WithAttributeOverride installs fn as the column-reference renderer.
func WithAttributeOverride(fn AttributeRenderFunc) Option {
	return func(v *Visitor) { v.attribute = fn }
}

// New creates a Visitor for adapter with no dialect overrides. Options are
// applied in order, so later overrides replace earlier ones.
func New(adapter dialect.Adapter, opts ...Option) *Visitor {
	if adapter == nil {
		panic("relal: visitor requires a non-nil dialect adapter")
	}
	v := &Visitor{
		adapter:      adapter,
		overrides:    make(map[nodes.Kind]RenderFunc),
		parameterize: true,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Adapter returns the dialect adapter the visitor renders for.
func (v *Visitor) Adapter() dialect.Adapter { return v.adapter }

// Override installs fn as the renderer for kind. A nil fn restores the
// node's own rendering. Override must not be called concurrently with
// Compile.
func (v *Visitor) Override(kind nodes.Kind, fn RenderFunc) {
	if fn == nil {
		delete(v.overrides, kind)
		return
	}
	v.overrides[kind] = fn
}

// OverrideAttribute installs fn as the column-reference renderer.
func (v *Visitor) OverrideAttribute(fn AttributeRenderFunc) { v.attribute = fn }

// With returns a copy of the visitor with extra options applied. The
// receiver is not modified.
func (v *Visitor) With(opts ...Option) *Visitor {
	out := *v
	out.overrides = maps.Clone(v.overrides)
	for _, o := range opts {
		o(&out)
	}
	return &out
}

// NewCollector returns a collector configured for this visitor.
func (v *Visitor) NewCollector() *collector.Collector {
	opts := []collector.Option{collector.WithLogger(v.logger)}
	if !v.parameterize {
		opts = append(opts, collector.Inline())
	}
	return collector.New(v.adapter, opts...)
}

// Visit renders n into c.
func (v *Visitor) Visit(n nodes.Node, c *collector.Collector) error {
	var visit nodes.VisitFunc
	visit = func(child nodes.Node) error {
		if child == nil {
			return &nodes.MalformedNodeError{Reason: "nil node"}
		}
		if a, ok := child.(*nodes.Attribute); ok && v.attribute != nil {
			return v.attribute(a, c, visit)
		}
		if b, ok := child.(nodes.Builder); ok {
			built, err := b.Built()
			if err != nil {
				return err
			}
			return visit(built)
		}
		if fn, ok := v.overrides[child.Kind()]; ok {
			return fn(child, c, visit)
		}
		return child.Render(c, visit)
	}
	return visit(n)
}

// Compile renders n with a fresh collector.
func (v *Visitor) Compile(n nodes.Node) (collector.CompiledQuery, error) {
	if n == nil {
		return collector.CompiledQuery{}, fmt.Errorf("compile: %w", &nodes.MalformedNodeError{Reason: "nil root"})
	}
	c := v.NewCollector()
	if err := v.Visit(n, c); err != nil {
		return collector.CompiledQuery{}, fmt.Errorf("compile %s for %s: %w", n.Kind(), v.adapter.Name(), err)
	}
	return c.Export(), nil
}

// NewANSIVisitor creates a visitor for standard SQL with no dialect
// extensions.
func NewANSIVisitor(opts ...Option) *Visitor {
	return New(dialect.ANSI, opts...)
}

// ForAdapter creates a visitor carrying the dialect overrides that match
// adapter.Name(). Unknown names get a plain visitor.
func ForAdapter(adapter dialect.Adapter, opts ...Option) *Visitor {
	var base []Option
	switch adapter.Name() {
	case dialect.Postgres.Name():
		base = postgresOptions()
	case dialect.MySQL.Name():
		base = mysqlOptions()
	case dialect.SQLite.Name():
		base = sqliteOptions()
	}
	return New(adapter, append(base, opts...)...)
}

// Compile renders n for adapter using the matching dialect visitor.
func Compile(n nodes.Node, adapter dialect.Adapter, opts ...Option) (collector.CompiledQuery, error) {
	return ForAdapter(adapter, opts...).Compile(n)
}

// featureError builds the FeatureNotAvailable error for the collector's dialect.
func featureError(c *collector.Collector, feature string) error {
	return &nodes.FeatureNotAvailableError{Feature: feature, Dialect: c.Name()}
}

// typed adapts a renderer written for one node type. A node of any other
// type under the same kind, such as a re-registered replacement, renders
// itself.
func typed[T nodes.Node](fn func(n T, c *collector.Collector, visit nodes.VisitFunc) error) RenderFunc {
	return func(n nodes.Node, c *collector.Collector, visit nodes.VisitFunc) error {
		t, ok := n.(T)
		if !ok {
			return n.Render(c, visit)
		}
		return fn(t, c, visit)
	}
}

// infix returns a renderer for binary comparisons written as l op r.
func infix(op string) RenderFunc {
	return typed(func(cmp *nodes.ComparisonNode, c *collector.Collector, visit nodes.VisitFunc) error {
		return nodes.Emit(c, visit, cmp.Left, op, cmp.Right)
	})
}

// regexOperators renders regex matches with the given operators. The
// insensitive forms are used for IgnoringCase matches when non-empty.
func regexOperators(match, notMatch, matchCI, notMatchCI string) RenderFunc {
	return typed(func(r *nodes.RegexNode, c *collector.Collector, visit nodes.VisitFunc) error {
		op := match
		switch {
		case r.Negate && !r.CaseSensitive && notMatchCI != "":
			op = notMatchCI
		case r.Negate:
			op = notMatch
		case !r.CaseSensitive && matchCI != "":
			op = matchCI
		}
		return nodes.Emit(c, visit, r.Left, op, r.Pattern)
	})
}

// renderNulls writes the ordering followed by NULLS FIRST/LAST.
var renderNulls = typed(func(nn *nodes.NullsNode, c *collector.Collector, visit nodes.VisitFunc) error {
	return nodes.Emit(c, visit, nn.Expr, " "+nn.Clause())
})

var renderLateral = typed((*nodes.LateralNode).RenderLateral)
