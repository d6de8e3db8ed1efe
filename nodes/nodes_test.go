package nodes

import "testing"

// --- Table / Attribute creation ---

func TestTableCreatesAttributes(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	col := users.Col("id")

	if col.Name != "id" {
		t.Errorf("expected col name %q, got %q", "id", col.Name)
	}
	if col.Relation != users {
		t.Error("expected attribute relation to be the users table")
	}
}

func TestTableAliasCreatesAttributes(t *testing.T) {
	t.Parallel()
	users := NewTable("users")
	u := users.Alias("u")
	col := u.Col("name")

	if u.Relation != users {
		t.Error("expected alias to reference the original table")
	}
	if col.Relation != u {
		t.Error("expected attribute relation to be the table alias")
	}
	if RelationName(u) != "u" || TableSourceName(u) != "users" {
		t.Errorf("unexpected names %q / %q", RelationName(u), TableSourceName(u))
	}
}

// --- Promotion ---

func TestLiteralPassesThroughNodes(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x")
	if Literal(col) != Node(col) {
		t.Error("expected Literal to return the node unchanged")
	}
	q, ok := Literal(42).(*QuotedNode)
	if !ok || q.Value != 42 {
		t.Errorf("expected QuotedNode(42), got %#v", Literal(42))
	}
}

func TestPromoteKeepsAttributeForCasting(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("x").Typed("INTEGER")
	cmp := col.Eq(5)
	casted, ok := cmp.Right.(*CastedNode)
	if !ok {
		t.Fatalf("expected *CastedNode, got %T", cmp.Right)
	}
	if casted.Attribute != col || casted.TypeName() != "INTEGER" {
		t.Errorf("expected casted value to reference the typed attribute")
	}

	lit := NewSqlLiteral("x")
	if _, ok := lit.Eq(5).Right.(*QuotedNode); !ok {
		t.Errorf("expected non-attribute receivers to promote to QuotedNode")
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()
	got := flatten([]any{1, []int{2, 3}, nil, []any{"a", []string{"b"}}, []byte("raw")})
	if len(got) != 7 {
		t.Fatalf("expected 7 values, got %d: %v", len(got), got)
	}
	if got[3] != nil {
		t.Errorf("expected nil to stay in place, got %v", got[3])
	}
	if _, ok := got[6].([]byte); !ok {
		t.Errorf("expected byte slice to stay whole, got %T", got[6])
	}
}

// --- Capability results ---

func TestCapabilitiesReturnExpectedShapes(t *testing.T) {
	t.Parallel()
	col := NewTable("t").Col("n")
	tests := []struct {
		name string
		node Node
		kind Kind
	}{
		{"eq", col.Eq(1), KindEquality},
		{"not eq", col.NotEq(1), KindNotEqual},
		{"distinct", col.IsDistinctFrom(1), KindIsDistinctFrom},
		{"in", col.In(1), KindIn},
		{"not in", col.NotIn(1), KindNotIn},
		{"between", col.Between(1, 2), KindBetween},
		{"matches", col.Matches("a"), KindMatches},
		{"regex", col.MatchesRegexp("a"), KindRegex},
		{"not regex", col.DoesNotMatchRegexp("a"), KindNotRegex},
		{"plus", col.Plus(1), KindGrouping},
		{"multiply", col.Multiply(1), KindInfixOperation},
		{"bitwise not", col.BitwiseNot(), KindUnaryOperation},
		{"count", col.Count(), KindCount},
		{"sum", col.Sum(), KindSum},
		{"extract", col.Extract(ExtractDow), KindExtract},
		{"case", col.SwitchCase(), KindCase},
		{"as", col.As("a"), KindAlias},
		{"asc", col.Asc(), KindAscending},
		{"desc", col.Desc(), KindDescending},
		{"nulls first", col.Asc().NullsFirst(), KindNullsFirst},
		{"and", col.Eq(1).And(col.Eq(2)), KindAnd},
		{"or", col.Eq(1).Or(col.Eq(2)), KindGrouping},
		{"not", col.Eq(1).Not(), KindNot},
		{"eq any", col.EqAny(1, 2), KindGrouping},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.node.Kind(); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestPlusWrapsInfixInGrouping(t *testing.T) {
	t.Parallel()
	g := NewTable("t").Col("n").Plus(1)
	infix, ok := g.Expr.(*InfixNode)
	if !ok {
		t.Fatalf("expected grouped *InfixNode, got %T", g.Expr)
	}
	if infix.Operator() != " + " {
		t.Errorf("expected + operator, got %q", infix.Operator())
	}
}

func TestMatchOptions(t *testing.T) {
	t.Parallel()
	m := NewTable("t").Col("n").Matches("a%").WithEscape("\\").IgnoringCase()
	if m.Escape != "\\" || m.CaseSensitive {
		t.Errorf("unexpected match options: %+v", m)
	}
	inv := m.Invert().(*MatchNode)
	if !inv.Negate || inv.Escape != "\\" || inv.CaseSensitive {
		t.Errorf("expected Invert to keep options and negate: %+v", inv)
	}
}

func TestAggregateAsDoesNotMutate(t *testing.T) {
	t.Parallel()
	sum := NewTable("t").Col("n").Sum()
	aliased := sum.As("total")
	if sum.Alias != "" || aliased.Alias != "total" {
		t.Errorf("expected As to copy: original %q, copy %q", sum.Alias, aliased.Alias)
	}
}

func TestExtractFieldParsing(t *testing.T) {
	t.Parallel()
	f, ok := ParseExtractField("quarter")
	if !ok || f != ExtractQuarter {
		t.Errorf("expected QUARTER, got %v %v", f, ok)
	}
	if _, ok := ParseExtractField("fortnight"); ok {
		t.Error("expected unknown field to fail")
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()
	if KindEquality.String() != "Equality" {
		t.Errorf("unexpected name %q", KindEquality.String())
	}
	if Kind(9999).String() != "Kind(9999)" {
		t.Errorf("unexpected fallback %q", Kind(9999).String())
	}
	for k := KindUnknown; k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestJoinTypeKinds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ  JoinType
		kind Kind
	}{
		{InnerJoin, KindInnerJoin},
		{LeftOuterJoin, KindOuterJoin},
		{RightOuterJoin, KindRightOuterJoin},
		{FullOuterJoin, KindFullOuterJoin},
		{CrossJoin, KindCrossJoin},
		{StringJoin, KindStringJoin},
	}
	for _, tt := range tests {
		if got := NewJoin(tt.typ, NewTable("t"), nil).Kind(); got != tt.kind {
			t.Errorf("%s: expected %s, got %s", tt.typ, tt.kind, got)
		}
	}
}
