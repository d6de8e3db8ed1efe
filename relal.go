// Package relal builds SQL from a relational-algebra node tree.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/relal/managers (query builders)
//   - github.com/bawdo/relal/nodes (AST nodes and the node registry)
//   - github.com/bawdo/relal/visitors (SQL generation per dialect)
//   - github.com/bawdo/relal/dialect (quoting and placeholder adapters)
//   - github.com/bawdo/relal/plugins (query transformers)
package relal

import (
	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/managers"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/visitors"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT queries.
type InsertManager = managers.InsertManager

// UpdateManager provides a fluent API for building UPDATE queries.
type UpdateManager = managers.UpdateManager

// DeleteManager provides a fluent API for building DELETE queries.
type DeleteManager = managers.DeleteManager

// --- Manager Constructors ---

// From starts a SELECT over table. It is the builder entry point for a
// Table or TableAlias; the nodes package cannot reach the managers.
func From(table nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(table)
}

// NewSelect creates a new SelectManager with the given table as FROM.
func NewSelect(from nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager for inserting into the given table.
func NewInsert(into nodes.Node) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// NewUpdate creates a new UpdateManager for updating the given table.
func NewUpdate(table nodes.Node) *managers.UpdateManager {
	return managers.NewUpdateManager(table)
}

// NewDelete creates a new DeleteManager for deleting from the given table.
func NewDelete(from nodes.Node) *managers.DeleteManager {
	return managers.NewDeleteManager(from)
}

// --- Core Node Types ---

// Table represents a SQL table reference.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// Node is the base interface all AST nodes implement.
type Node = nodes.Node

// Kind identifies a node variant for the registry and visitor overrides.
type Kind = nodes.Kind

// --- Common Node Constructors ---

// NewTable creates a new table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal wraps a Go value as a bound literal. Nodes pass through.
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// BindParam creates a parameterised placeholder (e.g., $1, ?).
func BindParam(value any) *nodes.BindParamNode {
	return nodes.NewBindParam(value)
}

// SQL embeds raw SQL. Nothing is escaped.
func SQL(raw string) *nodes.SqlLiteral {
	return nodes.NewSqlLiteral(raw)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.StarNode {
	return nodes.Star()
}

// Build constructs a node of kind through the node registry.
func Build(kind nodes.Kind, operands ...nodes.Node) nodes.Node {
	return nodes.Build(kind, operands...)
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate.
func Count(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Count(expr)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Max(expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr nodes.Node) *nodes.AggregateNode {
	return nodes.CountDistinct(expr)
}

// --- Visitors ---

// Visitor compiles node trees for one dialect.
type Visitor = visitors.Visitor

// CompiledQuery is the SQL text, bind values and warnings of one compilation.
type CompiledQuery = collector.CompiledQuery

// NewSQLiteVisitor creates a new SQLite visitor.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.Visitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// NewPostgresVisitor creates a new PostgreSQL visitor.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.Visitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a new MySQL visitor.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.Visitor {
	return visitors.NewMySQLVisitor(opts...)
}

// NewANSIVisitor creates a visitor for standard SQL.
func NewANSIVisitor(opts ...visitors.Option) *visitors.Visitor {
	return visitors.NewANSIVisitor(opts...)
}

// Compile renders root for the named dialect ("postgres", "mysql",
// "sqlite" or "ansi").
func Compile(root nodes.Node, dialectName string, opts ...visitors.Option) (CompiledQuery, error) {
	adapter, err := dialect.Lookup(dialectName)
	if err != nil {
		return CompiledQuery{}, err
	}
	return visitors.Compile(root, adapter, opts...)
}

// --- Visitor Options ---

// WithParams enables parameterised query mode. This is the default.
func WithParams() visitors.Option {
	return visitors.WithParams()
}

// WithoutParams renders values inline.
//
// WARNING: disables SQL injection protection. Only use for debugging.
func WithoutParams() visitors.Option {
	return visitors.WithoutParams()
}

// WithFormatting renders one clause per line.
func WithFormatting() visitors.Option {
	return visitors.WithFormatting()
}
