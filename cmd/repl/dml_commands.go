package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bawdo/relal/managers"
	"github.com/bawdo/relal/nodes"
)

func (s *Session) cmdInsertInto(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: insert into <table>")
	}
	s.setMode(modeInsert)
	s.insertQuery = managers.NewInsertManager(s.ensureTable(name))
	_, _ = fmt.Fprintf(s.out, "  INSERT INTO %q\n", name)
	return nil
}

func (s *Session) requireInsert(cmd string) error {
	if s.mode != modeInsert || s.insertQuery == nil {
		return fmt.Errorf("%s requires an active INSERT (use 'insert into <table>' first)", cmd)
	}
	return nil
}

func (s *Session) cmdColumns(args string) error {
	if err := s.requireInsert("columns"); err != nil {
		return err
	}
	cols, err := s.parseExpressions(args)
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	s.insertQuery.Columns(cols...)
	_, _ = fmt.Fprintf(s.out, "  Columns set (%d)\n", len(cols))
	return nil
}

func (s *Session) cmdValues(args string) error {
	if err := s.requireInsert("values"); err != nil {
		return err
	}
	exprs, err := s.parseExpressions(args)
	if err != nil {
		return fmt.Errorf("values: %w", err)
	}
	if n := len(s.insertQuery.Statement.Columns); n > 0 && n != len(exprs) {
		return fmt.Errorf("values: got %d values for %d columns", len(exprs), n)
	}
	vals := make([]any, len(exprs))
	for i, e := range exprs {
		vals[i] = e
	}
	s.insertQuery.Values(vals...)
	_, _ = fmt.Fprintf(s.out, "  Values row added (%d values)\n", len(vals))
	return nil
}

const onConflictUsage = "usage: on conflict (<cols>) do nothing | on conflict (<cols>) do update set <col> = <val>[, ...] [where <cond>]"

func (s *Session) cmdOnConflict(args string) error {
	if err := s.requireInsert("on conflict"); err != nil {
		return err
	}
	args = strings.TrimSpace(args)
	closeParen := strings.IndexByte(args, ')')
	if !strings.HasPrefix(args, "(") || closeParen < 0 {
		return errors.New(onConflictUsage)
	}
	cols, err := s.parseExpressions(args[1:closeParen])
	if err != nil {
		return fmt.Errorf("on conflict: %w", err)
	}
	rest := strings.TrimSpace(args[closeParen+1:])
	lower := strings.ToLower(rest)

	switch {
	case lower == "do nothing":
		s.insertQuery.OnConflict(cols...).DoNothing()
		_, _ = fmt.Fprintln(s.out, "  ON CONFLICT DO NOTHING set")
		return nil

	case strings.HasPrefix(lower, "do update set "):
		body := rest[len("do update set "):]
		var where string
		if idx := strings.Index(strings.ToLower(body), " where "); idx >= 0 {
			body, where = body[:idx], body[idx+len(" where "):]
		}
		assignments, err := s.parseAssignments(body)
		if err != nil {
			return fmt.Errorf("on conflict: %w", err)
		}
		update := s.insertQuery.OnConflict(cols...).DoUpdate(assignments...)
		if where != "" {
			cond, err := s.parseCondition(where)
			if err != nil {
				return fmt.Errorf("on conflict where: %w", err)
			}
			update.Where(cond)
		}
		_, _ = fmt.Fprintf(s.out, "  ON CONFLICT DO UPDATE set (%d assignments)\n", len(assignments))
		return nil
	}
	return errors.New(onConflictUsage)
}

// parseAssignments parses "col = expr, col = expr".
func (s *Session) parseAssignments(input string) ([]*nodes.AssignmentNode, error) {
	items, err := s.parseList(input, func(p *parser) (nodes.Node, error) {
		col, err := p.primary()
		if err != nil {
			return nil, err
		}
		if _, ok := col.(*nodes.Attribute); !ok {
			return nil, fmt.Errorf("assignment target must be a column, got %s", col.Kind())
		}
		if !p.atOp("=") {
			return nil, p.unexpected("= in assignment")
		}
		p.next()
		val, err := p.additive()
		if err != nil {
			return nil, err
		}
		return nodes.Build(nodes.KindAssignment, col, val), nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]*nodes.AssignmentNode, len(items))
	for i, it := range items {
		out[i] = it.(*nodes.AssignmentNode)
	}
	return out, nil
}

func (s *Session) cmdUpdate(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: update <table>")
	}
	s.setMode(modeUpdate)
	s.updateQuery = managers.NewUpdateManager(s.ensureTable(name))
	_, _ = fmt.Fprintf(s.out, "  UPDATE %q\n", name)
	return nil
}

func (s *Session) cmdSet(args string) error {
	if s.mode != modeUpdate || s.updateQuery == nil {
		return errors.New("set requires an active UPDATE (use 'update <table>' first)")
	}
	assignments, err := s.parseAssignments(args)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	for _, a := range assignments {
		s.updateQuery.Set(a.Left, a.Right)
	}
	_, _ = fmt.Fprintf(s.out, "  SET added (%d assignments)\n", len(assignments))
	return nil
}

func (s *Session) cmdDeleteFrom(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: delete from <table>")
	}
	s.setMode(modeDelete)
	s.deleteQuery = managers.NewDeleteManager(s.ensureTable(name))
	_, _ = fmt.Fprintf(s.out, "  DELETE FROM %q\n", name)
	return nil
}

func (s *Session) cmdReturning(args string) error {
	cols, err := s.parseProjections(args)
	if err != nil {
		return fmt.Errorf("returning: %w", err)
	}
	switch {
	case s.mode == modeInsert && s.insertQuery != nil:
		s.insertQuery.Returning(cols...)
	case s.mode == modeUpdate && s.updateQuery != nil:
		s.updateQuery.Returning(cols...)
	case s.mode == modeDelete && s.deleteQuery != nil:
		s.deleteQuery.Returning(cols...)
	default:
		return errors.New("returning requires an INSERT, UPDATE or DELETE")
	}
	_, _ = fmt.Fprintf(s.out, "  RETURNING set (%d columns)\n", len(cols))
	return nil
}
