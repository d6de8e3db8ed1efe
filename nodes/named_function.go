package nodes

import (
	"fmt"

	"github.com/bawdo/relal/collector"
)

// NamedFunctionNode represents a named SQL function call like COALESCE, LOWER, CAST, etc.
type NamedFunctionNode struct {
	Expression
	Name     string
	Args     []Node
	Distinct bool
}

// NewNamedFunction creates a NamedFunctionNode. The name must consist of
// letters, digits and underscores; anything else panics.
func NewNamedFunction(name string, args ...Node) *NamedFunctionNode {
	validateSQLFunctionName(name)
	n := &NamedFunctionNode{Name: name, Args: args}
	n.setSelf(n)
	return n
}

func (n *NamedFunctionNode) Kind() Kind { return KindNamedFunction }

func (n *NamedFunctionNode) Render(c *collector.Collector, visit VisitFunc) error {
	if n.Name == "CAST" && len(n.Args) == 2 {
		return Emit(c, visit, "CAST(", n.Args[0], " AS ", n.Args[1], ")")
	}
	c.Add(n.Name + "(")
	if n.Distinct {
		c.Add("DISTINCT ")
	}
	if err := EmitList(c, visit, n.Args, ", "); err != nil {
		return err
	}
	c.Add(")")
	return nil
}

// Coalesce creates a COALESCE(args...) function call.
func Coalesce(args ...Node) *NamedFunctionNode {
	return NewNamedFunction("COALESCE", args...)
}

func Lower(expr Node) *NamedFunctionNode { return NewNamedFunction("LOWER", expr) }
func Upper(expr Node) *NamedFunctionNode { return NewNamedFunction("UPPER", expr) }

// Substring creates a SUBSTRING(expr, start, len) function call.
func Substring(expr, start, length Node) *NamedFunctionNode {
	return NewNamedFunction("SUBSTRING", expr, start, length)
}

// Cast creates a CAST(expr AS typeName) expression.
func Cast(expr Node, typeName string) *NamedFunctionNode {
	validateSQLTypeName(typeName)
	return NewNamedFunction("CAST", expr, NewSqlLiteral(typeName))
}

// Over wraps the named function with an inline window definition.
func (n *NamedFunctionNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the named function with a named window reference.
func (n *NamedFunctionNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}

func validateSQLFunctionName(name string) {
	if name == "" {
		panic("relal: empty SQL function name")
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			panic(fmt.Sprintf("relal: invalid SQL function name character %q in %q", string(c), name))
		}
	}
}
