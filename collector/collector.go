// Package collector accumulates the SQL text and bound values produced
// while a visitor walks one AST.
//
// A Collector belongs to exactly one compilation and must not be shared
// between goroutines.
package collector

import (
	"log/slog"
	"strings"

	"github.com/bawdo/relal/dialect"
)

// DefaultBase is the first bind index used by New. Placeholders for
// PostgreSQL-style dialects therefore start at $1.
const DefaultBase = 1

// CompiledQuery is the result of one compilation.
type CompiledQuery struct {
	SQL      string
	Binds    []any
	Warnings []string
}

// Collector is the per-compilation accumulator. The dialect adapter is
// embedded so renderers can call c.QuoteTableName and friends directly.
type Collector struct {
	dialect.Adapter

	sb       strings.Builder
	binds    []any
	base     int
	inline   bool
	logger   *slog.Logger
	warnings []string
}

// Option configures a Collector.
type Option func(*Collector)

// WithBase sets the index of the first placeholder.
func WithBase(base int) Option {
	return func(c *Collector) { c.base = base }
}

// Inline renders values as quoted literals instead of placeholders.
//
// Inline output is meant for debugging. Never execute it with untrusted input.
func Inline() Option {
	return func(c *Collector) { c.inline = true }
}

// WithLogger sets the logger used for render-time warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Collector for the given adapter.
func New(adapter dialect.Adapter, opts ...Option) *Collector {
	c := &Collector{
		Adapter: adapter,
		base:    DefaultBase,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Add appends raw SQL. Nothing is escaped.
func (c *Collector) Add(text string) *Collector {
	c.sb.WriteString(text)
	return c
}

// Bind records v and emits its placeholder. In inline mode the quoted
// value is emitted instead and nothing is recorded. The emitted text is
// returned.
func (c *Collector) Bind(v any) string {
	var token string
	if c.inline {
		token = c.QuoteValue(v)
	} else {
		token = c.Placeholder(c.base + len(c.binds))
		c.binds = append(c.binds, v)
	}
	c.sb.WriteString(token)
	return token
}

// Record appends values whose placeholders were already written as raw
// SQL. Inline collectors ignore them.
func (c *Collector) Record(vals ...any) {
	if c.inline {
		return
	}
	c.binds = append(c.binds, vals...)
}

// Inline reports whether values are rendered inline.
func (c *Collector) Inline() bool { return c.inline }

// Len returns the number of bytes emitted so far.
func (c *Collector) Len() int { return c.sb.Len() }

// Warn logs a non-fatal rendering problem and keeps it for Export.
func (c *Collector) Warn(msg string, args ...any) {
	c.warnings = append(c.warnings, msg)
	c.logger.Warn(msg, append([]any{"dialect", c.Name()}, args...)...)
}

// Warnings returns the warnings recorded so far.
func (c *Collector) Warnings() []string { return c.warnings }

// Export returns the accumulated SQL and bound values.
func (c *Collector) Export() CompiledQuery {
	return CompiledQuery{
		SQL:      c.sb.String(),
		Binds:    c.binds,
		Warnings: c.warnings,
	}
}
