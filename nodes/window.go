package nodes

import "github.com/bawdo/relal/collector"

// WindowFunc identifies the window function.
type WindowFunc int

const (
	WinRowNumber WindowFunc = iota
	WinRank
	WinDenseRank
	WinNtile
	WinLag
	WinLead
	WinFirstValue
	WinLastValue
	WinNthValue
	WinCumeDist
	WinPercentRank
)

var windowFuncSQL = [...]string{
	WinRowNumber:   "ROW_NUMBER",
	WinRank:        "RANK",
	WinDenseRank:   "DENSE_RANK",
	WinNtile:       "NTILE",
	WinLag:         "LAG",
	WinLead:        "LEAD",
	WinFirstValue:  "FIRST_VALUE",
	WinLastValue:   "LAST_VALUE",
	WinNthValue:    "NTH_VALUE",
	WinCumeDist:    "CUME_DIST",
	WinPercentRank: "PERCENT_RANK",
}

func (f WindowFunc) String() string { return windowFuncSQL[f] }

// FrameType specifies ROWS or RANGE for a window frame.
type FrameType int

const (
	FrameRows FrameType = iota
	FrameRange
)

// BoundType specifies a window frame boundary.
type BoundType int

const (
	BoundUnboundedPreceding BoundType = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// WindowFuncNode represents a window function call (e.g. ROW_NUMBER(), RANK()).
// It is normally wrapped by OverNode for the OVER clause.
type WindowFuncNode struct {
	Func WindowFunc
	Args []Node
}

func (n *WindowFuncNode) Kind() Kind { return KindWindowFunction }

func (n *WindowFuncNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add(n.Func.String() + "(")
	if err := EmitList(c, visit, n.Args, ", "); err != nil {
		return err
	}
	c.Add(")")
	return nil
}

// Over wraps the window function with an inline window definition.
func (n *WindowFuncNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the window function with a named window reference.
func (n *WindowFuncNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}

// OverNode wraps an expression (window function or aggregate) with an OVER clause.
type OverNode struct {
	Expression
	Expr       Node              // WindowFuncNode or AggregateNode
	Window     *WindowDefinition // inline window definition (nil if using WindowName)
	WindowName string            // named window reference (empty if using Window)
}

// NewOverNode creates an OverNode.
func NewOverNode(expr Node) *OverNode {
	o := &OverNode{Expr: expr}
	o.setSelf(o)
	return o
}

func (n *OverNode) Kind() Kind { return KindOver }

func (n *OverNode) Render(c *collector.Collector, visit VisitFunc) error {
	if err := Emit(c, visit, n.Expr, " OVER "); err != nil {
		return err
	}
	switch {
	case n.WindowName != "":
		c.Add(c.QuoteColumnName(n.WindowName))
	case n.Window != nil:
		return n.Window.renderSpec(c, visit)
	default:
		c.Add("()")
	}
	return nil
}

// WindowDefinition describes a window specification: name, partitioning,
// ordering, and frame. As a node it renders the parenthesized specification.
type WindowDefinition struct {
	Name        string
	PartitionBy []Node
	OrderBy     []Node
	Frame       *WindowFrame
}

// WindowFrame describes the frame clause (ROWS/RANGE BETWEEN ... AND ...).
type WindowFrame struct {
	Type  FrameType
	Start FrameBound
	End   *FrameBound // nil means no BETWEEN (just the Start bound)
}

// FrameBound describes a single frame boundary.
type FrameBound struct {
	Type   BoundType
	Offset Node // only for BoundPreceding / BoundFollowing
}

// NewWindowDef creates a new WindowDefinition with an optional name.
func NewWindowDef(name ...string) *WindowDefinition {
	w := &WindowDefinition{}
	if len(name) > 0 {
		w.Name = name[0]
	}
	return w
}

func (w *WindowDefinition) Kind() Kind { return KindWindow }

// Render writes "(PARTITION BY ... ORDER BY ... frame)".
func (w *WindowDefinition) Render(c *collector.Collector, visit VisitFunc) error {
	return w.renderSpec(c, visit)
}

func (w *WindowDefinition) renderSpec(c *collector.Collector, visit VisitFunc) error {
	c.Add("(")
	sep := ""
	if len(w.PartitionBy) > 0 {
		c.Add("PARTITION BY ")
		if err := EmitList(c, visit, w.PartitionBy, ", "); err != nil {
			return err
		}
		sep = " "
	}
	if len(w.OrderBy) > 0 {
		c.Add(sep + "ORDER BY ")
		if err := EmitList(c, visit, w.OrderBy, ", "); err != nil {
			return err
		}
		sep = " "
	}
	if w.Frame != nil {
		c.Add(sep)
		if err := w.Frame.render(c, visit); err != nil {
			return err
		}
	}
	c.Add(")")
	return nil
}

// Partition sets the PARTITION BY columns.
func (w *WindowDefinition) Partition(cols ...Node) *WindowDefinition {
	w.PartitionBy = cols
	return w
}

// Order sets the ORDER BY expressions.
func (w *WindowDefinition) Order(orderings ...Node) *WindowDefinition {
	w.OrderBy = orderings
	return w
}

// Rows sets a ROWS frame with start and optional end bound.
func (w *WindowDefinition) Rows(start FrameBound, end ...FrameBound) *WindowDefinition {
	w.Frame = newFrame(FrameRows, start, end)
	return w
}

// Range sets a RANGE frame with start and optional end bound.
func (w *WindowDefinition) Range(start FrameBound, end ...FrameBound) *WindowDefinition {
	w.Frame = newFrame(FrameRange, start, end)
	return w
}

func newFrame(t FrameType, start FrameBound, end []FrameBound) *WindowFrame {
	f := &WindowFrame{Type: t, Start: start}
	if len(end) > 0 {
		e := end[0]
		f.End = &e
	}
	return f
}

func (f *WindowFrame) render(c *collector.Collector, visit VisitFunc) error {
	if f.Type == FrameRange {
		c.Add("RANGE ")
	} else {
		c.Add("ROWS ")
	}
	if f.End == nil {
		return f.Start.render(c, visit)
	}
	c.Add("BETWEEN ")
	if err := f.Start.render(c, visit); err != nil {
		return err
	}
	c.Add(" AND ")
	return f.End.render(c, visit)
}

func (fb FrameBound) render(c *collector.Collector, visit VisitFunc) error {
	switch fb.Type {
	case BoundUnboundedPreceding:
		c.Add("UNBOUNDED PRECEDING")
	case BoundPreceding:
		return Emit(c, visit, fb.Offset, " PRECEDING")
	case BoundCurrentRow:
		c.Add("CURRENT ROW")
	case BoundFollowing:
		return Emit(c, visit, fb.Offset, " FOLLOWING")
	case BoundUnboundedFollowing:
		c.Add("UNBOUNDED FOLLOWING")
	}
	return nil
}

// UnboundedPreceding returns an UNBOUNDED PRECEDING frame bound.
func UnboundedPreceding() FrameBound {
	return FrameBound{Type: BoundUnboundedPreceding}
}

// Preceding returns a N PRECEDING frame bound.
func Preceding(n Node) FrameBound {
	return FrameBound{Type: BoundPreceding, Offset: n}
}

// CurrentRow returns a CURRENT ROW frame bound.
func CurrentRow() FrameBound {
	return FrameBound{Type: BoundCurrentRow}
}

// Following returns a N FOLLOWING frame bound.
func Following(n Node) FrameBound {
	return FrameBound{Type: BoundFollowing, Offset: n}
}

// UnboundedFollowing returns an UNBOUNDED FOLLOWING frame bound.
func UnboundedFollowing() FrameBound {
	return FrameBound{Type: BoundUnboundedFollowing}
}

func RowNumber() *WindowFuncNode   { return &WindowFuncNode{Func: WinRowNumber} }
func Rank() *WindowFuncNode        { return &WindowFuncNode{Func: WinRank} }
func DenseRank() *WindowFuncNode   { return &WindowFuncNode{Func: WinDenseRank} }
func CumeDist() *WindowFuncNode    { return &WindowFuncNode{Func: WinCumeDist} }
func PercentRank() *WindowFuncNode { return &WindowFuncNode{Func: WinPercentRank} }

// Ntile creates an NTILE(n) window function node.
func Ntile(n Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinNtile, Args: []Node{n}}
}

func FirstValue(expr Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinFirstValue, Args: []Node{expr}}
}

func LastValue(expr Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinLastValue, Args: []Node{expr}}
}

// Lag creates a LAG(expr [, offset [, default]]) window function node.
func Lag(args ...Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinLag, Args: args}
}

// Lead creates a LEAD(expr [, offset [, default]]) window function node.
func Lead(args ...Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinLead, Args: args}
}

// NthValue creates an NTH_VALUE(expr, n) window function node.
func NthValue(args ...Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinNthValue, Args: args}
}

func init() {
	Register(KindOver, func(ops ...Node) Node {
		arity(KindOver, ops, 1, 2)
		o := NewOverNode(ops[0])
		if w, ok := operand(ops, 1).(*WindowDefinition); ok {
			o.Window = w
		}
		return o
	})
}
