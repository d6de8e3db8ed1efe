package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/relal/nodes"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Longest operators first so "!~*" wins over "!~".
var operators = []string{
	"!~*", "~*", "!~", "!=", "<>", "<=", ">=", "<<", ">>", "||", "@>", "&&",
	"=", "<", ">", "+", "-", "*", "/", "%", "&", "|", "^", "~",
}

// tokenize splits a REPL argument into tokens. Quoted strings keep their
// quotes, and a doubled quote inside a string escapes it.
func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++

		case ch == '\'':
			start := i
			i++
			for {
				if i >= len(input) {
					return nil, fmt.Errorf("unterminated string starting at %d", start)
				}
				if input[i] == '\'' {
					if i+1 < len(input) && input[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			toks = append(toks, token{kind: tokString, text: input[start:i], pos: start})

		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case ch == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++

		case isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])):
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: input[start:i], pos: start})

		case isIdentStart(ch):
			start := i
			for i < len(input) && (isIdentStart(input[i]) || isDigit(input[i]) || input[i] == '.') {
				if input[i] == '.' && i+1 < len(input) && input[i+1] == '*' {
					i += 2
					break
				}
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: input[start:i], pos: start})

		default:
			op := matchOperator(input[i:])
			if op == "" {
				return nil, fmt.Errorf("unexpected character %q at %d", ch, i)
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(input)}), nil
}

func matchOperator(s string) string {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// parseValue converts a literal token to a Go value.
func parseValue(text string) (any, error) {
	switch strings.ToLower(text) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return strings.ReplaceAll(text[1:len(text)-1], "''", "'"), nil
	}
	if i, err := strconv.Atoi(text); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value: %s", text)
}

var comparisonKinds = map[string]nodes.Kind{
	"=":  nodes.KindEquality,
	"!=": nodes.KindNotEqual,
	"<>": nodes.KindNotEqual,
	">":  nodes.KindGreaterThan,
	">=": nodes.KindGreaterThanOrEqual,
	"<":  nodes.KindLessThan,
	"<=": nodes.KindLessThanOrEqual,
	"@>": nodes.KindContains,
	"&&": nodes.KindOverlaps,
}

var additiveOps = map[string]nodes.InfixOp{
	"+":  nodes.OpPlus,
	"-":  nodes.OpMinus,
	"||": nodes.OpConcat,
	"&":  nodes.OpBitwiseAnd,
	"|":  nodes.OpBitwiseOr,
	"^":  nodes.OpBitwiseXor,
	"<<": nodes.OpShiftLeft,
	">>": nodes.OpShiftRight,
}

var multiplicativeOps = map[string]nodes.InfixOp{
	"*": nodes.OpMultiply,
	"/": nodes.OpDivide,
}

var aggregateKinds = map[string]nodes.Kind{
	"count": nodes.KindCount,
	"sum":   nodes.KindSum,
	"avg":   nodes.KindAvg,
	"min":   nodes.KindMin,
	"max":   nodes.KindMax,
}

var windowFuncs = map[string]func() *nodes.WindowFuncNode{
	"row_number":   nodes.RowNumber,
	"rank":         nodes.Rank,
	"dense_rank":   nodes.DenseRank,
	"cume_dist":    nodes.CumeDist,
	"percent_rank": nodes.PercentRank,
}

// windowed is implemented by function nodes that accept an OVER clause.
type windowed interface {
	Over(def *nodes.WindowDefinition) *nodes.OverNode
	OverName(name string) *nodes.OverNode
}

// parser is a recursive-descent parser over one command's tokens.
type parser struct {
	s    *Session
	toks []token
	pos  int
}

func (s *Session) newParser(input string) (*parser, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	return &parser{s: s, toks: toks}, nil
}

// guard turns construction panics from the node layer into errors.
func guard(err *error) {
	if r := recover(); r != nil {
		switch v := r.(type) {
		case error:
			*err = v
		default:
			*err = fmt.Errorf("%v", v)
		}
	}
}

// parseCondition parses a full boolean expression.
func (s *Session) parseCondition(input string) (n nodes.Node, err error) {
	defer guard(&err)
	p, err := s.newParser(input)
	if err != nil {
		return nil, err
	}
	if p.at(tokEOF) {
		return nil, errors.New("empty expression")
	}
	n, err = p.expression()
	if err != nil {
		return nil, err
	}
	return n, p.expectEnd()
}

// parseList parses comma-separated items with item.
func (s *Session) parseList(input string, item func(*parser) (nodes.Node, error)) (out []nodes.Node, err error) {
	defer guard(&err)
	p, err := s.newParser(input)
	if err != nil {
		return nil, err
	}
	if p.at(tokEOF) {
		return nil, errors.New("empty list")
	}
	for {
		n, err := item(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		if !p.accept(tokComma) {
			break
		}
	}
	return out, p.expectEnd()
}

func (s *Session) parseExpressions(input string) ([]nodes.Node, error) {
	return s.parseList(input, (*parser).expression)
}

func (s *Session) parseProjections(input string) ([]nodes.Node, error) {
	return s.parseList(input, (*parser).projection)
}

func (s *Session) parseOrderings(input string) ([]nodes.Node, error) {
	return s.parseList(input, (*parser).ordering)
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) at(kind tokenKind) bool { return p.peek().kind == kind }

func (p *parser) accept(kind tokenKind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *parser) atOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

func (p *parser) atKeyword(words ...string) bool {
	for i, w := range words {
		if p.pos+i >= len(p.toks) {
			return false
		}
		t := p.toks[p.pos+i]
		if t.kind != tokIdent || !strings.EqualFold(t.text, w) {
			return false
		}
	}
	return true
}

func (p *parser) acceptKeyword(words ...string) bool {
	if p.atKeyword(words...) {
		p.pos += len(words)
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) error {
	if !p.accept(kind) {
		return p.unexpected(what)
	}
	return nil
}

func (p *parser) expectEnd() error {
	if !p.at(tokEOF) {
		return p.unexpected("end of input")
	}
	return nil
}

func (p *parser) unexpected(want string) error {
	t := p.peek()
	if t.kind == tokEOF {
		return fmt.Errorf("expected %s at end of input", want)
	}
	return fmt.Errorf("expected %s, got %q at %d", want, t.text, t.pos)
}

func (p *parser) expression() (nodes.Node, error) { return p.or() }

func (p *parser) or() (nodes.Node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.acceptKeyword("or") {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = nodes.Build(nodes.KindOr, left, right)
	}
	return left, nil
}

func (p *parser) and() (nodes.Node, error) {
	left, err := p.not()
	if err != nil {
		return nil, err
	}
	operands := []nodes.Node{left}
	for p.acceptKeyword("and") {
		right, err := p.not()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return left, nil
	}
	return nodes.Build(nodes.KindAnd, operands...), nil
}

func (p *parser) not() (nodes.Node, error) {
	if p.atKeyword("not") && !p.atKeyword("not", "exists") {
		p.next()
		expr, err := p.not()
		if err != nil {
			return nil, err
		}
		return nodes.Build(nodes.KindNot, expr), nil
	}
	return p.predicate()
}

func (p *parser) predicate() (nodes.Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	if t.kind == tokOp {
		if kind, ok := comparisonKinds[t.text]; ok {
			p.next()
			right, err := p.additive()
			if err != nil {
				return nil, err
			}
			return nodes.Build(kind, left, right), nil
		}
		switch t.text {
		case "~", "!~", "~*", "!~*":
			p.next()
			right, err := p.additive()
			if err != nil {
				return nil, err
			}
			kind := nodes.KindRegex
			if strings.HasPrefix(t.text, "!") {
				kind = nodes.KindNotRegex
			}
			re := nodes.Build(kind, left, right).(*nodes.RegexNode)
			if strings.HasSuffix(t.text, "*") {
				re = re.IgnoringCase()
			}
			return re, nil
		}
	}

	switch {
	case p.acceptKeyword("is", "not", "null"):
		return nodes.Build(nodes.KindIsNotNull, left), nil
	case p.acceptKeyword("is", "null"):
		return nodes.Build(nodes.KindIsNull, left), nil
	case p.acceptKeyword("is", "not", "distinct", "from"):
		return p.binary(nodes.KindIsNotDistinctFrom, left)
	case p.acceptKeyword("is", "distinct", "from"):
		return p.binary(nodes.KindIsDistinctFrom, left)
	}

	negate := false
	if p.atKeyword("not", "like") || p.atKeyword("not", "ilike") ||
		p.atKeyword("not", "in") || p.atKeyword("not", "between") {
		p.next()
		negate = true
	}
	switch {
	case p.atKeyword("like") || p.atKeyword("ilike"):
		return p.match(left, negate)
	case p.acceptKeyword("in"):
		return p.in(left, negate)
	case p.acceptKeyword("between"):
		low, err := p.additive()
		if err != nil {
			return nil, err
		}
		if !p.acceptKeyword("and") {
			return nil, p.unexpected("AND in BETWEEN")
		}
		high, err := p.additive()
		if err != nil {
			return nil, err
		}
		kind := nodes.KindBetween
		if negate {
			kind = nodes.KindNotBetween
		}
		return nodes.Build(kind, left, low, high), nil
	}
	return left, nil
}

func (p *parser) binary(kind nodes.Kind, left nodes.Node) (nodes.Node, error) {
	right, err := p.additive()
	if err != nil {
		return nil, err
	}
	return nodes.Build(kind, left, right), nil
}

func (p *parser) match(left nodes.Node, negate bool) (nodes.Node, error) {
	ilike := p.atKeyword("ilike")
	p.next()
	pattern, err := p.additive()
	if err != nil {
		return nil, err
	}
	kind := nodes.KindMatches
	if negate {
		kind = nodes.KindDoesNotMatch
	}
	m := nodes.Build(kind, left, pattern).(*nodes.MatchNode)
	if ilike {
		m = m.IgnoringCase()
	}
	if p.acceptKeyword("escape") {
		t := p.next()
		if t.kind != tokString {
			return nil, fmt.Errorf("ESCAPE needs a quoted character, got %q", t.text)
		}
		esc, _ := parseValue(t.text)
		m = m.WithEscape(esc.(string))
	}
	return m, nil
}

func (p *parser) in(left nodes.Node, negate bool) (nodes.Node, error) {
	if err := p.expect(tokLParen, "( after IN"); err != nil {
		return nil, err
	}
	operands := []nodes.Node{left}
	if !p.at(tokRParen) {
		for {
			v, err := p.additive()
			if err != nil {
				return nil, err
			}
			operands = append(operands, v)
			if !p.accept(tokComma) {
				break
			}
		}
	}
	if err := p.expect(tokRParen, ") after IN list"); err != nil {
		return nil, err
	}
	kind := nodes.KindIn
	if negate {
		kind = nodes.KindNotIn
	}
	return nodes.Build(kind, operands...), nil
}

func (p *parser) additive() (nodes.Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, ok := additiveOps[t.text]
		if t.kind != tokOp || !ok {
			return left, nil
		}
		p.next()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = nodes.NewInfixNode(left, right, op)
	}
}

func (p *parser) multiplicative() (nodes.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		op, ok := multiplicativeOps[t.text]
		if t.kind != tokOp || !ok {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = nodes.NewInfixNode(left, right, op)
	}
}

func (p *parser) unary() (nodes.Node, error) {
	switch {
	case p.atOp("-"):
		p.next()
		t := p.next()
		if t.kind != tokNumber {
			return nil, fmt.Errorf("unary minus applies to numbers only, got %q", t.text)
		}
		v, err := parseValue("-" + t.text)
		if err != nil {
			return nil, err
		}
		return nodes.Literal(v), nil
	case p.atOp("~"):
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return nodes.NewUnaryMathNode(operand, nodes.OpBitwiseNot), nil
	}
	return p.primary()
}

func (p *parser) primary() (nodes.Node, error) {
	t := p.peek()
	switch t.kind {
	case tokLParen:
		p.next()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return nodes.Build(nodes.KindGrouping, inner), nil

	case tokString, tokNumber:
		p.next()
		v, err := parseValue(t.text)
		if err != nil {
			return nil, err
		}
		return nodes.Literal(v), nil

	case tokOp:
		if t.text == "*" {
			p.next()
			return nodes.Build(nodes.KindStar), nil
		}

	case tokIdent:
		lower := strings.ToLower(t.text)
		switch lower {
		case "true", "false", "null":
			p.next()
			v, _ := parseValue(t.text)
			return nodes.Literal(v), nil
		case "case":
			p.next()
			return p.caseExpr()
		case "exists":
			return nil, errors.New("EXISTS needs a subquery; build it with 'with' and join instead")
		}
		if isReserved(lower) {
			return nil, p.unexpected("expression")
		}
		p.next()
		if p.at(tokLParen) {
			return p.call(t.text)
		}
		return p.s.resolveColRef(t.text)
	}
	return nil, p.unexpected("expression")
}

func (p *parser) caseExpr() (nodes.Node, error) {
	var c *nodes.CaseNode
	if p.atKeyword("when") {
		c = nodes.NewCase()
	} else {
		operand, err := p.additive()
		if err != nil {
			return nil, err
		}
		c = nodes.NewCase(operand)
	}
	for p.acceptKeyword("when") {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		if !p.acceptKeyword("then") {
			return nil, p.unexpected("THEN")
		}
		result, err := p.expression()
		if err != nil {
			return nil, err
		}
		c.When(cond).Then(result)
	}
	if len(c.Whens) == 0 {
		return nil, p.unexpected("WHEN")
	}
	if p.acceptKeyword("else") {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		c.Else(v)
	}
	if !p.acceptKeyword("end") {
		return nil, p.unexpected("END")
	}
	return c, nil
}

func (p *parser) call(name string) (nodes.Node, error) {
	p.next() // (
	lower := strings.ToLower(name)

	var fn nodes.Node
	var err error
	switch {
	case aggregateKinds[lower] != 0:
		fn, err = p.aggregate(aggregateKinds[lower])
	case windowFuncs[lower] != nil:
		err = p.expect(tokRParen, ") after "+strings.ToUpper(name))
		fn = windowFuncs[lower]()
	case lower == "cast":
		fn, err = p.cast()
	case lower == "extract":
		fn, err = p.extract()
	default:
		var args []nodes.Node
		args, err = p.arguments()
		if err == nil {
			fn = nodes.NewNamedFunction(strings.ToUpper(name), args...)
		}
	}
	if err != nil {
		return nil, err
	}
	if p.acceptKeyword("over") {
		return p.over(fn)
	}
	return fn, nil
}

func (p *parser) arguments() ([]nodes.Node, error) {
	var args []nodes.Node
	if p.accept(tokRParen) {
		return nil, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(tokComma) {
			break
		}
	}
	return args, p.expect(tokRParen, ") after arguments")
}

func (p *parser) aggregate(kind nodes.Kind) (nodes.Node, error) {
	if p.atOp("*") {
		p.next()
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		if kind != nodes.KindCount {
			return nil, fmt.Errorf("%s(*) is not valid", kind)
		}
		return nodes.Build(kind), nil
	}
	distinct := p.acceptKeyword("distinct")
	arg, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	agg := nodes.Build(kind, arg).(*nodes.AggregateNode)
	agg.Distinct = distinct
	return agg, nil
}

func (p *parser) cast() (nodes.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword("as") {
		return nil, p.unexpected("AS in CAST")
	}
	typ := p.next()
	if typ.kind != tokIdent {
		return nil, fmt.Errorf("expected type name in CAST, got %q", typ.text)
	}
	typeName := strings.ToUpper(typ.text)
	if p.accept(tokLParen) {
		var size []string
		for !p.at(tokRParen) {
			t := p.next()
			if t.kind != tokNumber {
				return nil, fmt.Errorf("expected type size, got %q", t.text)
			}
			size = append(size, t.text)
			if !p.accept(tokComma) {
				break
			}
		}
		if err := p.expect(tokRParen, ") after type size"); err != nil {
			return nil, err
		}
		typeName += "(" + strings.Join(size, ",") + ")"
	}
	if err := p.expect(tokRParen, ") after CAST"); err != nil {
		return nil, err
	}
	return nodes.Cast(expr, typeName), nil
}

func (p *parser) extract() (nodes.Node, error) {
	t := p.next()
	field, ok := nodes.ParseExtractField(t.text)
	if !ok {
		return nil, fmt.Errorf("unknown EXTRACT field %q", t.text)
	}
	if !p.acceptKeyword("from") {
		return nil, p.unexpected("FROM in EXTRACT")
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, ") after EXTRACT"); err != nil {
		return nil, err
	}
	return nodes.Extract(field, expr), nil
}

func (p *parser) over(fn nodes.Node) (nodes.Node, error) {
	w, ok := fn.(windowed)
	if !ok {
		return nil, fmt.Errorf("%s does not accept OVER", fn.Kind())
	}
	if t := p.peek(); t.kind == tokIdent {
		p.next()
		return w.OverName(t.text), nil
	}
	if err := p.expect(tokLParen, "( or window name after OVER"); err != nil {
		return nil, err
	}
	def := nodes.NewWindowDef()
	if err := p.windowBody(def); err != nil {
		return nil, err
	}
	if err := p.expect(tokRParen, ") after window"); err != nil {
		return nil, err
	}
	return w.Over(def), nil
}

// windowBody parses "[PARTITION BY exprs] [ORDER BY orderings]" into def.
func (p *parser) windowBody(def *nodes.WindowDefinition) error {
	if p.acceptKeyword("partition", "by") {
		cols, err := p.listUntil(p.expression, "order")
		if err != nil {
			return err
		}
		def.Partition(cols...)
	}
	if p.acceptKeyword("order", "by") {
		orders, err := p.listUntil(p.ordering)
		if err != nil {
			return err
		}
		def.Order(orders...)
	}
	return nil
}

// parseWindowSpec parses the body of a named window definition.
func (s *Session) parseWindowSpec(input, name string) (def *nodes.WindowDefinition, err error) {
	defer guard(&err)
	p, err := s.newParser(input)
	if err != nil {
		return nil, err
	}
	def = nodes.NewWindowDef(name)
	if err := p.windowBody(def); err != nil {
		return nil, err
	}
	return def, p.expectEnd()
}

// listUntil parses comma-separated items until a closing paren or one of
// the stop keywords.
func (p *parser) listUntil(item func() (nodes.Node, error), stop ...string) ([]nodes.Node, error) {
	var out []nodes.Node
	for {
		n, err := item()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		if !p.accept(tokComma) {
			return out, nil
		}
		for _, kw := range stop {
			if p.atKeyword(kw) {
				return out, nil
			}
		}
	}
}

// projection parses "expr [AS alias]".
func (p *parser) projection() (nodes.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword("as") {
		return expr, nil
	}
	t := p.next()
	if t.kind != tokIdent {
		return nil, fmt.Errorf("expected alias name after AS, got %q", t.text)
	}
	if agg, ok := expr.(*nodes.AggregateNode); ok {
		return agg.As(t.text), nil
	}
	return nodes.NewAliasNode(expr, t.text), nil
}

// ordering parses "expr [ASC|DESC] [NULLS FIRST|LAST]".
func (p *parser) ordering() (nodes.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	kind := nodes.KindAscending
	switch {
	case p.acceptKeyword("desc"):
		kind = nodes.KindDescending
	case p.acceptKeyword("asc"):
	}
	ordered := nodes.Build(kind, expr)
	switch {
	case p.acceptKeyword("nulls", "first"):
		return nodes.Build(nodes.KindNullsFirst, ordered), nil
	case p.acceptKeyword("nulls", "last"):
		return nodes.Build(nodes.KindNullsLast, ordered), nil
	}
	return ordered, nil
}

var reserved = map[string]bool{
	"and": true, "or": true, "not": true, "is": true, "in": true,
	"between": true, "like": true, "ilike": true, "when": true,
	"then": true, "else": true, "end": true, "as": true, "asc": true,
	"desc": true, "nulls": true, "escape": true, "over": true,
}

func isReserved(word string) bool { return reserved[word] }

// resolveColRef turns "table.column", "alias.column", "table.*" or a bare
// column into a node. Bare columns belong to the current target relation.
func (s *Session) resolveColRef(ref string) (nodes.Node, error) {
	dot := strings.LastIndexByte(ref, '.')
	if dot < 0 {
		if rel := s.defaultRelation(); rel != nil {
			return nodes.NewAttribute(rel, ref), nil
		}
		return nodes.NewAttribute(nil, ref), nil
	}
	tableName, col := ref[:dot], ref[dot+1:]
	if tableName == "" || col == "" {
		return nil, fmt.Errorf("invalid column reference %q", ref)
	}
	if alias, ok := s.aliases[tableName]; ok {
		if col == "*" {
			return &nodes.StarNode{Table: nodes.NewTable(tableName)}, nil
		}
		return alias.Col(col), nil
	}
	if table, ok := s.tables[tableName]; ok {
		if col == "*" {
			return table.Star(), nil
		}
		return table.Col(col), nil
	}
	return nil, fmt.Errorf("unknown table or alias %q (register with 'table %s' first)", tableName, tableName)
}
