// Package nodes defines the AST used to describe SQL statements.
//
// Every node renders itself into a collector.Collector. Children are never
// rendered directly: a node hands them to the VisitFunc it was given so a
// visitor can substitute its own rendering for any node kind.
package nodes

import (
	"fmt"
	"reflect"

	"github.com/bawdo/relal/collector"
)

// Node is the interface that all AST nodes implement.
type Node interface {
	Kind() Kind
	Render(c *collector.Collector, visit VisitFunc) error
}

// Builder is a node that assembles the tree it stands for when rendered,
// as the statement managers do. Kind reports the kind of the built tree;
// visitors render the result of Built, so overrides for that kind receive
// the built node and never the builder.
type Builder interface {
	Node
	Built() (Node, error)
}

// VisitFunc renders a child node through the active visitor.
type VisitFunc func(Node) error

// Emit writes strings verbatim and visits nodes, in order.
func Emit(c *collector.Collector, visit VisitFunc, parts ...any) error {
	for _, p := range parts {
		switch p := p.(type) {
		case string:
			c.Add(p)
		case Node:
			if err := visit(p); err != nil {
				return err
			}
		case nil:
			return &MalformedNodeError{Reason: "missing operand"}
		default:
			panic(fmt.Sprintf("relal: cannot emit %T", p))
		}
	}
	return nil
}

// EmitList visits items separated by sep.
func EmitList(c *collector.Collector, visit VisitFunc, items []Node, sep string) error {
	for i, item := range items {
		if i > 0 {
			c.Add(sep)
		}
		if item == nil {
			return &MalformedNodeError{Reason: "missing list element"}
		}
		if err := visit(item); err != nil {
			return err
		}
	}
	return nil
}

// Literal wraps a raw Go value into a QuotedNode. Nodes are returned as-is.
func Literal(val any) Node {
	if n, ok := val.(Node); ok && n != nil {
		return n
	}
	return Quoted(val)
}

// promote turns a capability argument into a node. Scalars compared
// against an attribute keep a reference to it for type-aware rendering.
func promote(self Node, v any) Node {
	if n, ok := v.(Node); ok && n != nil {
		return n
	}
	if a, ok := self.(*Attribute); ok {
		return NewCasted(v, a)
	}
	return Quoted(v)
}

// IsNullNode reports whether n is the null literal.
func IsNullNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *QuotedNode:
		return v.Value == nil
	case *CastedNode:
		return v.Value == nil
	}
	return false
}

// flatten expands slice arguments so In(1, 2) and In([]int{1, 2}) build
// the same list. Byte slices are values, not lists. A nil element stays in
// the list as NULL.
func flatten(vals []any) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		switch s := v.(type) {
		case nil:
			out = append(out, nil)
			continue
		case []any:
			out = append(out, flatten(s)...)
			continue
		case []Node:
			for _, n := range s {
				out = append(out, n)
			}
			continue
		case []byte:
			out = append(out, s)
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := range rv.Len() {
				out = append(out, rv.Index(i).Interface())
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

// isSubquery reports whether n renders a complete SELECT that needs
// parentheses when used as a relation or operand.
func isSubquery(n Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindSelectStatement, KindSelectCore:
		return true
	}
	return false
}
