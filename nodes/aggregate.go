package nodes

import (
	"strings"

	"github.com/bawdo/relal/collector"
)

// AggregateFunc identifies the aggregate function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

var aggregateNames = [...]string{
	AggCount: "COUNT",
	AggSum:   "SUM",
	AggAvg:   "AVG",
	AggMin:   "MIN",
	AggMax:   "MAX",
}

var aggregateKinds = [...]Kind{
	AggCount: KindCount,
	AggSum:   KindSum,
	AggAvg:   KindAvg,
	AggMin:   KindMin,
	AggMax:   KindMax,
}

// AggregateNode represents COUNT, SUM, AVG, MIN or MAX.
type AggregateNode struct {
	Expression
	Func     AggregateFunc
	Expr     Node   // argument; nil renders *
	Distinct bool   // NAME(DISTINCT ...)
	Filter   Node   // FILTER (WHERE ...), nil if not used
	Alias    string // rendered as a trailing AS "alias"
}

// NewAggregateNode creates an AggregateNode.
func NewAggregateNode(fn AggregateFunc, expr Node) *AggregateNode {
	n := &AggregateNode{Func: fn, Expr: expr}
	n.setSelf(n)
	return n
}

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(expr Node) *AggregateNode { return NewAggregateNode(AggCount, expr) }

func Sum(expr Node) *AggregateNode { return NewAggregateNode(AggSum, expr) }
func Avg(expr Node) *AggregateNode { return NewAggregateNode(AggAvg, expr) }
func Min(expr Node) *AggregateNode { return NewAggregateNode(AggMin, expr) }
func Max(expr Node) *AggregateNode { return NewAggregateNode(AggMax, expr) }

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr Node) *AggregateNode {
	n := Count(expr)
	n.Distinct = true
	return n
}

func (n *AggregateNode) Kind() Kind { return aggregateKinds[n.Func] }

func (n *AggregateNode) clone() *AggregateNode {
	out := NewAggregateNode(n.Func, n.Expr)
	out.Distinct = n.Distinct
	out.Filter = n.Filter
	out.Alias = n.Alias
	return out
}

// As returns a copy of the aggregate rendered with a trailing alias.
func (n *AggregateNode) As(name string) *AggregateNode {
	out := n.clone()
	out.Alias = name
	return out
}

// WithFilter returns a copy of the aggregate with a FILTER (WHERE ...) clause.
func (n *AggregateNode) WithFilter(condition Node) *AggregateNode {
	out := n.clone()
	out.Filter = condition
	return out
}

// Over wraps the aggregate with an inline window definition.
func (n *AggregateNode) Over(def *WindowDefinition) *OverNode {
	o := NewOverNode(n)
	o.Window = def
	return o
}

// OverName wraps the aggregate with a named window reference.
func (n *AggregateNode) OverName(name string) *OverNode {
	o := NewOverNode(n)
	o.WindowName = name
	return o
}

func (n *AggregateNode) Render(c *collector.Collector, visit VisitFunc) error {
	c.Add(aggregateNames[n.Func] + "(")
	if n.Distinct {
		c.Add("DISTINCT ")
	}
	if n.Expr == nil {
		c.Add("*")
	} else if err := visit(n.Expr); err != nil {
		return err
	}
	c.Add(")")
	if n.Filter != nil {
		if err := Emit(c, visit, " FILTER (WHERE ", n.Filter, ")"); err != nil {
			return err
		}
	}
	if n.Alias != "" {
		c.Add(" AS " + c.QuoteColumnName(n.Alias))
	}
	return nil
}

// ExtractField identifies the date/time field for EXTRACT.
type ExtractField int

const (
	ExtractYear ExtractField = iota
	ExtractMonth
	ExtractDay
	ExtractHour
	ExtractMinute
	ExtractSecond
	ExtractDow // day of week
	ExtractDoy // day of year
	ExtractEpoch
	ExtractQuarter
	ExtractWeek
)

var extractFieldSQL = [...]string{
	ExtractYear:    "YEAR",
	ExtractMonth:   "MONTH",
	ExtractDay:     "DAY",
	ExtractHour:    "HOUR",
	ExtractMinute:  "MINUTE",
	ExtractSecond:  "SECOND",
	ExtractDow:     "DOW",
	ExtractDoy:     "DOY",
	ExtractEpoch:   "EPOCH",
	ExtractQuarter: "QUARTER",
	ExtractWeek:    "WEEK",
}

func (f ExtractField) String() string { return extractFieldSQL[f] }

// ParseExtractField resolves a field name such as "year" or "DOW".
func ParseExtractField(name string) (ExtractField, bool) {
	for f, s := range extractFieldSQL {
		if strings.EqualFold(s, name) {
			return ExtractField(f), true
		}
	}
	return 0, false
}

// ExtractNode represents EXTRACT(field FROM expr).
type ExtractNode struct {
	Expression
	Field ExtractField
	Expr  Node
}

// NewExtractNode creates an ExtractNode.
func NewExtractNode(field ExtractField, expr Node) *ExtractNode {
	n := &ExtractNode{Field: field, Expr: expr}
	n.setSelf(n)
	return n
}

// Extract creates an EXTRACT(field FROM expr) node.
func Extract(field ExtractField, expr Node) *ExtractNode {
	return NewExtractNode(field, expr)
}

func (n *ExtractNode) Kind() Kind { return KindExtract }

func (n *ExtractNode) Render(c *collector.Collector, visit VisitFunc) error {
	return Emit(c, visit, "EXTRACT("+n.Field.String()+" FROM ", n.Expr, ")")
}

func init() {
	for fn, kind := range aggregateKinds {
		Register(kind, func(ops ...Node) Node {
			arity(kind, ops, 0, 1)
			return NewAggregateNode(AggregateFunc(fn), operand(ops, 0))
		})
	}
}
