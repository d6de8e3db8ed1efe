package nodes

// Aggregations wraps self in aggregate, EXTRACT and CASE expressions.
type Aggregations struct {
	self Node
}

// Count creates COUNT(self), or COUNT(DISTINCT self) when distinct is true.
func (a Aggregations) Count(distinct ...bool) *AggregateNode {
	n := NewAggregateNode(AggCount, a.self)
	n.Distinct = len(distinct) > 0 && distinct[0]
	return n
}

func (a Aggregations) Sum() *AggregateNode     { return NewAggregateNode(AggSum, a.self) }
func (a Aggregations) Minimum() *AggregateNode { return NewAggregateNode(AggMin, a.self) }
func (a Aggregations) Maximum() *AggregateNode { return NewAggregateNode(AggMax, a.self) }
func (a Aggregations) Average() *AggregateNode { return NewAggregateNode(AggAvg, a.self) }

// Extract creates EXTRACT(field FROM self).
func (a Aggregations) Extract(field ExtractField) *ExtractNode {
	return NewExtractNode(field, a.self)
}

// SwitchCase starts CASE self WHEN ... END. An optional default becomes
// the ELSE branch.
func (a Aggregations) SwitchCase(defaultValue ...any) *CaseNode {
	n := NewCase(a.self)
	if len(defaultValue) > 0 {
		n.Else(promote(a.self, defaultValue[0]))
	}
	return n
}
