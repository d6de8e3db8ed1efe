package main

import (
	"errors"
	"sort"
	"strings"

	"github.com/bawdo/relal/managers"
	"github.com/bawdo/relal/nodes"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
// Prefixes ending in a space take arguments; the others match exactly.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

func noArgs(fn func() error) func(string) error {
	return func(string) error { return fn() }
}

// initCommands builds the command registry sorted by prefix length, longest
// first, so "left join " wins over "join ".
func (s *Session) initCommands() {
	lock := func(apply func(*managers.SelectManager) *managers.SelectManager, label string) func(string) error {
		return func(string) error { return s.cmdLock(apply, label) }
	}

	s.commands = []commandEntry{
		// display
		{prefix: "sql", handler: noArgs(s.cmdSQL)},
		{prefix: "tosql", handler: noArgs(s.cmdSQL), hidden: true},
		{prefix: "ast", handler: noArgs(s.cmdAST)},
		{prefix: "expr ", handler: s.cmdExpr, completer: completeColumnArgs},
		{prefix: "reset", handler: noArgs(s.cmdReset)},
		{prefix: "tables", handler: noArgs(s.cmdTables)},
		{prefix: "help", handler: func(string) error { s.cmdHelp(); return nil }},

		// distinct and locking
		{prefix: "distinct on ", handler: s.cmdDistinctOn, completer: completeColumnArgs},
		{prefix: "distinct", handler: noArgs(s.cmdDistinct)},
		{prefix: "for no key update", handler: lock((*managers.SelectManager).ForNoKeyUpdate, "FOR NO KEY UPDATE")},
		{prefix: "for key share", handler: lock((*managers.SelectManager).ForKeyShare, "FOR KEY SHARE")},
		{prefix: "for update", handler: lock((*managers.SelectManager).ForUpdate, "FOR UPDATE")},
		{prefix: "for share", handler: lock((*managers.SelectManager).ForShare, "FOR SHARE")},
		{prefix: "skip locked", handler: lock((*managers.SelectManager).SkipLocked, "SKIP LOCKED")},

		{prefix: "comment ", handler: s.cmdComment},
		{prefix: "hint ", handler: s.cmdHint},

		// tables
		{prefix: "table ", handler: s.cmdTable},
		{prefix: "t ", handler: s.cmdTable, hidden: true},
		{prefix: "alias ", handler: s.cmdAlias, completer: completeAliasArgs},

		// query building
		{prefix: "from ", handler: s.cmdFrom, completer: completeTableArgs},
		{prefix: "select ", handler: s.cmdSelect, completer: completeColumnArgs},
		{prefix: "project ", handler: s.cmdSelect, completer: completeColumnArgs},
		{prefix: "group ", handler: s.cmdGroup, completer: completeColumnArgs},
		{prefix: "having ", handler: s.cmdHaving, completer: completeColumnArgs},
		{prefix: "order ", handler: s.cmdOrder, completer: completeOrderArgs},
		{prefix: "limit ", handler: s.cmdLimit},
		{prefix: "take ", handler: s.cmdLimit},
		{prefix: "offset ", handler: s.cmdOffset},
		{prefix: "skip ", handler: s.cmdOffset},
		{prefix: "where ", handler: s.cmdWhere, completer: completeColumnArgs},
		{prefix: "window ", handler: s.cmdWindow, completer: completeWindowArgs},

		// joins
		{prefix: "lateral left join ", handler: func(a string) error { return s.cmdLateralJoin(a, nodes.LeftOuterJoin) }, completer: completeJoinArgs},
		{prefix: "lateral join ", handler: func(a string) error { return s.cmdLateralJoin(a, nodes.InnerJoin) }, completer: completeJoinArgs},
		{prefix: "outer join ", handler: func(a string) error { return s.cmdJoin(a, nodes.LeftOuterJoin) }, completer: completeJoinArgs, hidden: true},
		{prefix: "left join ", handler: func(a string) error { return s.cmdJoin(a, nodes.LeftOuterJoin) }, completer: completeJoinArgs},
		{prefix: "right join ", handler: func(a string) error { return s.cmdJoin(a, nodes.RightOuterJoin) }, completer: completeJoinArgs},
		{prefix: "full join ", handler: func(a string) error { return s.cmdJoin(a, nodes.FullOuterJoin) }, completer: completeJoinArgs},
		{prefix: "cross join ", handler: s.cmdCrossJoin, completer: completeJoinArgs},
		{prefix: "raw join ", handler: s.cmdRawJoin},
		{prefix: "join ", handler: func(a string) error { return s.cmdJoin(a, nodes.InnerJoin) }, completer: completeJoinArgs},

		// set operations
		{prefix: "union all", handler: func(string) error { return s.cmdSetOp(nodes.UnionAll) }},
		{prefix: "intersect all", handler: func(string) error { return s.cmdSetOp(nodes.IntersectAll) }},
		{prefix: "except all", handler: func(string) error { return s.cmdSetOp(nodes.ExceptAll) }},
		{prefix: "union", handler: func(string) error { return s.cmdSetOp(nodes.Union) }},
		{prefix: "intersect", handler: func(string) error { return s.cmdSetOp(nodes.Intersect) }},
		{prefix: "except", handler: func(string) error { return s.cmdSetOp(nodes.Except) }},

		// CTEs
		{prefix: "with recursive ", handler: func(a string) error { return s.cmdWith(a, true) }},
		{prefix: "with ", handler: func(a string) error { return s.cmdWith(a, false) }},

		// DML
		{prefix: "insert into ", handler: s.cmdInsertInto, completer: completeTableArgs},
		{prefix: "delete from ", handler: s.cmdDeleteFrom, completer: completeTableArgs},
		{prefix: "on conflict ", handler: s.cmdOnConflict},
		{prefix: "returning ", handler: s.cmdReturning, completer: completeColumnArgs},
		{prefix: "columns ", handler: s.cmdColumns, completer: completeColumnArgs},
		{prefix: "values ", handler: s.cmdValues},
		{prefix: "update ", handler: s.cmdUpdate, completer: completeTableArgs},
		{prefix: "set ", handler: s.cmdSet, completer: completeColumnArgs},

		// database
		{prefix: "connect ", handler: s.cmdConnect},
		{prefix: "connect", handler: s.cmdConnect},
		{prefix: "disconnect", handler: noArgs(s.cmdDisconnect)},
		{prefix: "exec", handler: noArgs(s.cmdExec)},
		{prefix: "run", handler: noArgs(s.cmdExec)},
		{prefix: "schema", handler: noArgs(s.cmdSchema)},

		// output settings
		{prefix: "parameterize", handler: noArgs(s.cmdParameterize), hidden: true},
		{prefix: "params", handler: noArgs(s.cmdParameterize)},
		{prefix: "format", handler: noArgs(s.cmdFormat)},
		{prefix: "set_engine ", handler: s.cmdEngine, completer: completeEngineArgs, hidden: true},
		{prefix: "engine ", handler: s.cmdEngine, completer: completeEngineArgs},
		{prefix: "engine", handler: func(string) error { return errors.New("usage: engine <postgres|mysql|sqlite|ansi>") }},

		// plugins
		{prefix: "plugin ", handler: s.cmdPlugin, completer: completePluginArgs},
		{prefix: "plugins", handler: func(string) error { s.cmdPlugins(); return nil }},
	}

	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit and quit are handled by the read loop.
	names = append(names, "exit", "quit")
	sort.Strings(names)
	return names
}

// completeJoinArgs: table name, then column refs and operators in ON.
func completeJoinArgs(args string) (completionContext, string) {
	words := strings.Fields(args)
	if len(words) == 0 {
		return contextTableName, ""
	}
	if strings.Contains(args, " ") {
		if strings.HasSuffix(args, " ") {
			if strings.EqualFold(words[len(words)-1], "on") {
				return contextColumnRef, ""
			}
			return contextOperator, ""
		}
		return contextColumnRef, words[len(words)-1]
	}
	return contextTableName, args
}

// completeTableArgs handles commands whose first argument is a table.
func completeTableArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if !strings.Contains(arg, " ") {
		return contextTableName, arg
	}
	return contextCommand, ""
}

// completeColumnArgs handles commands taking column expressions.
func completeColumnArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		prev := strings.Fields(args)
		if len(prev) > 0 && strings.Contains(prev[len(prev)-1], ".") {
			return contextOperator, ""
		}
		return contextColumnRef, ""
	}
	return contextColumnRef, lastToken(args)
}

// completeOrderArgs offers directions after a column.
func completeOrderArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		parts := strings.Fields(args)
		if len(parts) > 0 && strings.Contains(parts[len(parts)-1], ".") {
			return contextOrderDir, ""
		}
		return contextColumnRef, ""
	}
	last := lastToken(args)
	switch strings.ToLower(last) {
	case "a", "as", "d", "de", "des", "n", "nu", "nul", "null":
		return contextOrderDir, last
	}
	return contextColumnRef, last
}

// completeWindowArgs skips the window name, then offers columns.
func completeWindowArgs(args string) (completionContext, string) {
	parts := strings.Fields(args)
	if len(parts) <= 1 && !strings.HasSuffix(args, " ") {
		return contextCommand, ""
	}
	if strings.HasSuffix(args, " ") {
		return contextColumnRef, ""
	}
	return contextColumnRef, lastToken(args)
}

func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// completePluginArgs offers plugin names, or enabled plugins after "off".
func completePluginArgs(args string) (completionContext, string) {
	if strings.HasPrefix(strings.ToLower(args), "off ") {
		return contextPluginOff, strings.TrimSpace(args[4:])
	}
	arg := strings.TrimSpace(args)
	if !strings.Contains(arg, " ") {
		return contextPlugin, arg
	}
	return contextCommand, ""
}

// completeAliasArgs offers a table name for the first argument only.
func completeAliasArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if !strings.Contains(arg, " ") {
		return contextAliasTable, arg
	}
	return contextCommand, ""
}
