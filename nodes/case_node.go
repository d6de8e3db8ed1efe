package nodes

import "github.com/bawdo/relal/collector"

// CaseWhen is one WHEN ... THEN ... pair. Result is nil until Then is called.
type CaseWhen struct {
	Condition Node
	Result    Node
}

// CaseNode represents a SQL CASE expression:
//
//	CASE [operand] WHEN cond THEN result ... [ELSE val] END
//
// If Operand is nil, it is a "searched CASE" (CASE WHEN cond THEN ...).
type CaseNode struct {
	Expression
	Operand Node
	Whens   []CaseWhen
	ElseVal Node
}

// NewCase creates a CaseNode. Pass an operand for simple CASE, or nothing
// for searched CASE.
func NewCase(operand ...Node) *CaseNode {
	n := &CaseNode{}
	if len(operand) > 0 {
		n.Operand = operand[0]
	}
	n.setSelf(n)
	return n
}

func (n *CaseNode) Kind() Kind { return KindCase }

func (n *CaseNode) wrap(v any) Node {
	if n.Operand != nil {
		return promote(n.Operand, v)
	}
	return Literal(v)
}

// When opens a WHEN branch. It must be followed by Then.
func (n *CaseNode) When(cond any) *CaseNode {
	n.Whens = append(n.Whens, CaseWhen{Condition: n.wrap(cond)})
	return n
}

// Then completes the most recent WHEN branch. Calling it without an open
// WHEN is a programmer error and panics.
func (n *CaseNode) Then(result any) *CaseNode {
	if len(n.Whens) == 0 || n.Whens[len(n.Whens)-1].Result != nil {
		panic("relal: Case.Then called without a preceding When")
	}
	n.Whens[len(n.Whens)-1].Result = Literal(result)
	return n
}

// Else sets the ELSE value.
func (n *CaseNode) Else(result any) *CaseNode {
	n.ElseVal = Literal(result)
	return n
}

// Render writes nothing for a CASE without branches or default; adding at
// least one WHEN is the caller's responsibility.
func (n *CaseNode) Render(c *collector.Collector, visit VisitFunc) error {
	if len(n.Whens) == 0 && n.ElseVal == nil {
		return nil
	}
	c.Add("CASE")
	if n.Operand != nil {
		if err := Emit(c, visit, " ", n.Operand); err != nil {
			return err
		}
	}
	for _, w := range n.Whens {
		if w.Result == nil {
			return &MalformedNodeError{Kind: KindCase, Reason: "WHEN without THEN"}
		}
		if err := Emit(c, visit, " WHEN ", w.Condition, " THEN ", w.Result); err != nil {
			return err
		}
	}
	if n.ElseVal != nil {
		if err := Emit(c, visit, " ELSE ", n.ElseVal); err != nil {
			return err
		}
	}
	c.Add(" END")
	return nil
}
