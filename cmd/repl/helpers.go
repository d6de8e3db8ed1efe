package main

import (
	"fmt"
	"strings"

	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/visitors"
)

// setMode switches the statement kind and drops every builder.
func (s *Session) setMode(mode dmlMode) {
	s.mode = mode
	s.query = nil
	s.insertQuery = nil
	s.updateQuery = nil
	s.deleteQuery = nil
}

// cmdAST prints a clause-by-clause summary of the statement being built.
// Plugins are not applied, so the summary shows what was typed.
func (s *Session) cmdAST() error {
	switch s.mode {
	case modeInsert:
		if s.insertQuery == nil {
			return errNoQuery
		}
		s.printInsertAST(s.insertQuery.Statement)
	case modeUpdate:
		if s.updateQuery == nil {
			return errNoQuery
		}
		st := s.updateQuery.Statement
		s.astLine("UPDATE", s.summary(st.Table))
		s.astList("SET", assignmentNodes(st.Assignments))
		s.astCount("WHERE", len(st.Wheres))
		s.astList("RETURNING", st.Returning)
	case modeDelete:
		if s.deleteQuery == nil {
			return errNoQuery
		}
		st := s.deleteQuery.Statement
		s.astLine("DELETE FROM", s.summary(st.From))
		s.astCount("WHERE", len(st.Wheres))
		s.astList("RETURNING", st.Returning)
	default:
		if s.query == nil {
			return errNoQuery
		}
		s.printSelectAST()
	}
	s.printASTFooter()
	return nil
}

func (s *Session) printSelectAST() {
	ast, core := s.query.Ast, s.query.Core

	for _, cte := range s.ctes {
		kind := "WITH"
		if cte.recursive {
			kind = "WITH RECURSIVE"
		}
		label := cte.name
		if len(cte.columns) > 0 {
			label += " (" + strings.Join(cte.columns, ", ") + ")"
		}
		s.astLine(kind, label)
	}
	for i, entry := range s.setOps {
		from := "(none)"
		if left := entry.query.Core.Source.Left; left != nil {
			from = s.summary(left)
		}
		_, _ = fmt.Fprintf(s.out, "  QUERY[%d]: FROM %s %s\n", i, from, entry.opType)
	}

	if core.Source.Left != nil {
		s.astLine("FROM", s.summary(core.Source.Left))
	}
	switch q := core.SetQuantifier.(type) {
	case nil:
	case *nodes.DistinctOnNode:
		s.astList("DISTINCT ON", q.Exprs)
	default:
		s.astLine("DISTINCT", "true")
	}
	if len(core.Projections) == 0 {
		s.astLine("SELECT", "*")
	} else {
		s.astList("SELECT", core.Projections)
	}
	for i, j := range core.Source.Right {
		_, _ = fmt.Fprintf(s.out, "  JOIN[%d]: %s %s\n", i, j.Type, s.summary(j.Relation))
	}
	s.astCount("WHERE", len(core.Wheres))
	s.astList("GROUP", core.Groups)
	s.astCount("HAVING", len(core.Havings))
	if len(core.Windows) > 0 {
		names := make([]string, len(core.Windows))
		for i, w := range core.Windows {
			names[i] = w.Name
		}
		s.astLine("WINDOW", strings.Join(names, ", "))
	}
	s.astList("ORDER", ast.Orders)
	if l, ok := ast.Limit.(*nodes.LimitNode); ok {
		s.astLine("LIMIT", s.summary(l.Expr))
	}
	if o, ok := ast.Offset.(*nodes.OffsetNode); ok {
		s.astLine("OFFSET", s.summary(o.Expr))
	}
	if lock := ast.Lock; lock != nil && lock.Mode != nodes.NoLock {
		label := lock.Mode.String()
		if lock.SkipLocked {
			label += " SKIP LOCKED"
		}
		s.astLine("LOCK", label)
	}
	if core.Comment != "" {
		s.astLine("COMMENT", core.Comment)
	}
	if len(core.OptimizerHints) > 0 {
		s.astLine("HINTS", strings.Join(core.OptimizerHints, ", "))
	}
}

func (s *Session) printInsertAST(st *nodes.InsertStatement) {
	s.astLine("INSERT INTO", s.summary(st.Into))
	s.astList("COLUMNS", st.Columns)
	for i, row := range st.Values {
		s.astList(fmt.Sprintf("VALUES[%d]", i), row)
	}
	if oc := st.OnConflict; oc != nil {
		action := "DO NOTHING"
		if oc.Action == nodes.DoUpdate {
			action = fmt.Sprintf("DO UPDATE (%d assignments)", len(oc.Assignments))
		}
		s.astLine("ON CONFLICT", "("+s.joinSummaries(oc.Columns)+") "+action)
	}
	s.astList("RETURNING", st.Returning)
}

func (s *Session) printASTFooter() {
	for _, entry := range s.plugins.entries {
		_, _ = fmt.Fprintf(s.out, "  Plugin: %s (%s)\n", entry.name, entry.status())
	}
	_, _ = fmt.Fprintf(s.out, "  Engine: %s\n", s.engine)
	if s.parameterize {
		_, _ = fmt.Fprintln(s.out, "  Parameterize: on")
	}
	if s.conn != nil {
		_, _ = fmt.Fprintf(s.out, "  Connected: %s (%s)\n", sanitizeDSN(s.conn.dsn), s.conn.engine)
	}
}

func (s *Session) astLine(label, value string) {
	_, _ = fmt.Fprintf(s.out, "  %s: %s\n", label, value)
}

func (s *Session) astList(label string, ns []nodes.Node) {
	if len(ns) > 0 {
		s.astLine(label, s.joinSummaries(ns))
	}
}

func (s *Session) astCount(label string, n int) {
	if n > 0 {
		s.astLine(label, fmt.Sprintf("%d condition(s)", n))
	}
}

func (s *Session) joinSummaries(ns []nodes.Node) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = s.summary(n)
	}
	return strings.Join(parts, ", ")
}

// summary renders n inline in the current dialect, falling back to its
// Go type when the node cannot be compiled on its own.
func (s *Session) summary(n nodes.Node) string {
	if n == nil {
		return "(none)"
	}
	q, err := s.visitor.With(visitors.WithoutParams()).Compile(n)
	if err != nil {
		return fmt.Sprintf("%T", n)
	}
	return strings.Join(strings.Fields(q.SQL), " ")
}

func assignmentNodes(as []*nodes.AssignmentNode) []nodes.Node {
	out := make([]nodes.Node, len(as))
	for i, a := range as {
		out[i] = a
	}
	return out
}
