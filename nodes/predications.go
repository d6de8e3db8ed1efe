package nodes

// Predications provides comparison, matching, ordering and aliasing
// methods. Scalar arguments are promoted to nodes; see promote.
type Predications struct {
	self Node
}

func (p Predications) compare(op ComparisonOp, val any) *ComparisonNode {
	return NewComparisonNode(p.self, promote(p.self, val), op)
}

// Eq creates an equality comparison: self = val. A nil val renders IS NULL.
func (p Predications) Eq(val any) *ComparisonNode { return p.compare(OpEq, val) }

// NotEq creates an inequality comparison: self != val. A nil val renders IS NOT NULL.
func (p Predications) NotEq(val any) *ComparisonNode { return p.compare(OpNotEq, val) }

func (p Predications) Gt(val any) *ComparisonNode   { return p.compare(OpGt, val) }
func (p Predications) GtEq(val any) *ComparisonNode { return p.compare(OpGtEq, val) }
func (p Predications) Lt(val any) *ComparisonNode   { return p.compare(OpLt, val) }
func (p Predications) LtEq(val any) *ComparisonNode { return p.compare(OpLtEq, val) }

// IsDistinctFrom creates a null-safe inequality.
func (p Predications) IsDistinctFrom(val any) *ComparisonNode {
	return p.compare(OpDistinctFrom, val)
}

// IsNotDistinctFrom creates a null-safe equality.
func (p Predications) IsNotDistinctFrom(val any) *ComparisonNode {
	return p.compare(OpNotDistinctFrom, val)
}

// CaseSensitiveEq creates an equality that ignores the column collation.
func (p Predications) CaseSensitiveEq(val any) *ComparisonNode {
	return p.compare(OpCaseSensitiveEq, val)
}

// CaseInsensitiveEq creates an equality that folds case on both sides.
func (p Predications) CaseInsensitiveEq(val any) *ComparisonNode {
	return p.compare(OpCaseInsensitiveEq, val)
}

// Contains creates an array/JSONB containment: self @> val.
func (p Predications) Contains(val any) *ComparisonNode { return p.compare(OpContains, val) }

// Overlaps creates an array overlap: self && val.
func (p Predications) Overlaps(val any) *ComparisonNode { return p.compare(OpOverlaps, val) }

// In creates self IN (vals...). Slices are flattened; a single node (for
// example a sub-select) is used as the whole list. No values, or a lone
// nil, renders a predicate that never matches; nil among other values is
// NULL.
func (p Predications) In(vals ...any) *InNode {
	return NewIn(p.self, p.list(vals), false)
}

// NotIn creates self NOT IN (vals...). No values renders a predicate that
// always matches.
func (p Predications) NotIn(vals ...any) *InNode {
	return NewIn(p.self, p.list(vals), true)
}

func (p Predications) list(vals []any) []Node {
	if len(vals) == 1 && vals[0] == nil {
		return nil
	}
	flat := flatten(vals)
	out := make([]Node, len(flat))
	for i, v := range flat {
		out[i] = promote(p.self, v)
	}
	return out
}

// Between creates self BETWEEN low AND high.
func (p Predications) Between(low, high any) *BetweenNode {
	return NewBetween(p.self, NewAnd(promote(p.self, low), promote(p.self, high)), false)
}

// NotBetween creates self NOT BETWEEN low AND high.
func (p Predications) NotBetween(low, high any) *BetweenNode {
	return NewBetween(p.self, NewAnd(promote(p.self, low), promote(p.self, high)), true)
}

// Matches creates self LIKE pattern.
func (p Predications) Matches(pattern any) *MatchNode {
	return NewMatch(p.self, promote(p.self, pattern), false)
}

// DoesNotMatch creates self NOT LIKE pattern.
func (p Predications) DoesNotMatch(pattern any) *MatchNode {
	return NewMatch(p.self, promote(p.self, pattern), true)
}

// MatchesRegexp creates a native regular-expression match. Dialects
// without a regex operator fail to render it.
func (p Predications) MatchesRegexp(pattern any) *RegexNode {
	return NewRegex(p.self, promote(p.self, pattern), false)
}

// DoesNotMatchRegexp creates a negated regular-expression match.
func (p Predications) DoesNotMatchRegexp(pattern any) *RegexNode {
	return NewRegex(p.self, promote(p.self, pattern), true)
}

func (p Predications) IsNull() *UnaryNode    { return NewUnary(p.self, OpIsNull) }
func (p Predications) IsNotNull() *UnaryNode { return NewUnary(p.self, OpIsNotNull) }

// --- Plural forms: Any folds into a grouped OR chain, All into a grouped AND list ---

func (p Predications) EqAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.eqNode) }
func (p Predications) EqAll(vals ...any) *GroupingNode { return p.allOf(vals, p.eqNode) }

func (p Predications) NotEqAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.notEqNode) }
func (p Predications) NotEqAll(vals ...any) *GroupingNode { return p.allOf(vals, p.notEqNode) }

func (p Predications) GtAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.opNode(OpGt)) }
func (p Predications) GtAll(vals ...any) *GroupingNode { return p.allOf(vals, p.opNode(OpGt)) }

func (p Predications) GtEqAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.opNode(OpGtEq)) }
func (p Predications) GtEqAll(vals ...any) *GroupingNode { return p.allOf(vals, p.opNode(OpGtEq)) }

func (p Predications) LtAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.opNode(OpLt)) }
func (p Predications) LtAll(vals ...any) *GroupingNode { return p.allOf(vals, p.opNode(OpLt)) }

func (p Predications) LtEqAny(vals ...any) *GroupingNode { return p.anyOf(vals, p.opNode(OpLtEq)) }
func (p Predications) LtEqAll(vals ...any) *GroupingNode { return p.allOf(vals, p.opNode(OpLtEq)) }

func (p Predications) MatchesAny(patterns ...any) *GroupingNode {
	return p.anyOf(patterns, func(v any) Node { return p.Matches(v) })
}

func (p Predications) MatchesAll(patterns ...any) *GroupingNode {
	return p.allOf(patterns, func(v any) Node { return p.Matches(v) })
}

func (p Predications) DoesNotMatchAny(patterns ...any) *GroupingNode {
	return p.anyOf(patterns, func(v any) Node { return p.DoesNotMatch(v) })
}

func (p Predications) DoesNotMatchAll(patterns ...any) *GroupingNode {
	return p.allOf(patterns, func(v any) Node { return p.DoesNotMatch(v) })
}

// InAny returns (self IN (set1) OR self IN (set2) ...).
func (p Predications) InAny(sets ...[]any) *GroupingNode {
	return p.anyOf(setsToAny(sets), func(v any) Node { return p.In(v) })
}

// InAll returns (self IN (set1) AND self IN (set2) ...).
func (p Predications) InAll(sets ...[]any) *GroupingNode {
	return p.allOf(setsToAny(sets), func(v any) Node { return p.In(v) })
}

func (p Predications) NotInAny(sets ...[]any) *GroupingNode {
	return p.anyOf(setsToAny(sets), func(v any) Node { return p.NotIn(v) })
}

func (p Predications) NotInAll(sets ...[]any) *GroupingNode {
	return p.allOf(setsToAny(sets), func(v any) Node { return p.NotIn(v) })
}

func setsToAny(sets [][]any) []any {
	out := make([]any, len(sets))
	for i, s := range sets {
		out[i] = s
	}
	return out
}

func (p Predications) eqNode(v any) Node    { return p.Eq(v) }
func (p Predications) notEqNode(v any) Node { return p.NotEq(v) }

func (p Predications) opNode(op ComparisonOp) func(any) Node {
	return func(v any) Node { return p.compare(op, v) }
}

// anyOf ORs build(v) for each value. An empty list never matches.
func (p Predications) anyOf(vals []any, build func(any) Node) *GroupingNode {
	if len(vals) == 0 {
		return NewGrouping(NewSqlLiteral("1=0"))
	}
	var result Node = build(vals[0])
	for _, v := range vals[1:] {
		result = NewOr(result, build(v))
	}
	return NewGrouping(result)
}

// allOf ANDs build(v) for each value. An empty list always matches.
func (p Predications) allOf(vals []any, build func(any) Node) *GroupingNode {
	if len(vals) == 0 {
		return NewGrouping(NewSqlLiteral("1=1"))
	}
	children := make([]Node, len(vals))
	for i, v := range vals {
		children[i] = build(v)
	}
	return NewGrouping(NewAnd(children...))
}

// As creates an AliasNode: self AS "name".
func (p Predications) As(name string) *AliasNode { return NewAliasNode(p.self, name) }

func (p Predications) Asc() *OrderingNode  { return NewOrdering(p.self, Asc) }
func (p Predications) Desc() *OrderingNode { return NewOrdering(p.self, Desc) }
