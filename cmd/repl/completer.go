package main

import (
	"maps"
	"slices"
	"strings"

	"github.com/bawdo/relal/nodes"
)

// completionContext is the kind of word being completed.
type completionContext int

const (
	contextCommand   completionContext = iota
	contextTableName                   // from, join, insert into
	contextColumnRef                   // select, where, having, expr
	contextEngine
	contextPlugin
	contextPluginOff
	contextOrderDir
	contextOperator
	contextAliasTable // first argument of alias
)

var (
	engineNames   = []string{"ansi", "mysql", "postgres", "sqlite"}
	orderDirs     = []string{"asc", "desc", "nulls first", "nulls last"}
	operatorHints = []string{
		"!=", "!~", "!~*", "%", "&", "&&", "*", "+", "-", "/", "<", "<<", "<=", "<>",
		"=", ">", ">=", ">>", "@>", "^", "|", "||", "~", "~*",
		"between", "ilike", "in", "is", "like", "not",
	}
	functionNames = []string{
		"AVG(", "CASE ", "CAST(", "COALESCE(", "COUNT(", "COUNT(DISTINCT ",
		"CUBE(", "CUME_DIST(", "DENSE_RANK(", "EXTRACT(", "LOWER(", "MAX(",
		"MIN(", "NULLIF(", "PERCENT_RANK(", "RANK(", "ROLLUP(", "ROW_NUMBER(",
		"SUM(", "UPPER(",
	}
)

// replCompleter implements readline.AutoCompleter over a Session.
type replCompleter struct {
	sess *Session
}

// Do returns the suffixes that complete the word before pos, and the
// length of that word in runes.
func (c *replCompleter) Do(line []rune, pos int) ([][]rune, int) {
	ctx, prefix := c.parseContext(string(line[:pos]))

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = filterPrefix(c.sess.commandNames(), prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextPlugin:
		candidates = filterPrefix(append([]string{"off"}, c.sess.pluginNames()...), prefix)
	case contextPluginOff:
		candidates = filterPrefix(c.sess.plugins.names(), prefix)
	case contextOrderDir:
		candidates = filterPrefix(orderDirs, prefix)
	case contextOperator:
		candidates = filterPrefix(operatorHints, prefix)
	case contextAliasTable:
		candidates = filterPrefix(slices.Sorted(maps.Keys(c.sess.tables)), prefix)
	}

	out := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, []rune(completionSuffix(cand, prefix)+" "))
	}
	return out, len([]rune(prefix))
}

// parseContext hands the arguments to the completer of the longest
// matching command.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)
	for _, cmd := range c.sess.commands {
		if cmd.completer == nil || !strings.HasSuffix(cmd.prefix, " ") {
			continue
		}
		if strings.HasPrefix(lower, cmd.prefix) {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}
	return contextCommand, strings.TrimSpace(line)
}

// completeTableNames offers registered tables, aliases and, when
// connected, the database's tables.
func (c *replCompleter) completeTableNames(prefix string) []string {
	names := slices.Collect(maps.Keys(c.sess.tables))
	names = slices.AppendSeq(names, maps.Keys(c.sess.aliases))
	if c.sess.conn != nil {
		names = append(names, c.sess.conn.schemaTables()...)
	}
	slices.Sort(names)
	return filterPrefix(slices.Compact(names), prefix)
}

// completeColumnRef completes "rel." to the relation's columns, and a
// bare word to relation or function names.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	rel, _, found := strings.Cut(prefix, ".")
	if !found {
		return append(c.completeTableNames(prefix), filterPrefix(functionNames, prefix)...)
	}
	candidates := []string{rel + ".*"}
	for _, col := range c.columnsOf(rel) {
		candidates = append(candidates, rel+"."+col)
	}
	return filterPrefix(candidates, prefix)
}

// columnsOf looks up columns for a table or alias in the connected
// database's schema.
func (c *replCompleter) columnsOf(rel string) []string {
	if c.sess.conn == nil {
		return nil
	}
	table := rel
	if a, ok := c.sess.aliases[rel]; ok {
		if name := nodes.TableSourceName(a); name != "" {
			table = name
		}
	}
	return c.sess.conn.schemaColumns(table)
}

// filterPrefix returns the items starting with prefix, ignoring case.
func filterPrefix(items []string, prefix string) []string {
	lower := strings.ToLower(prefix)
	var out []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lower) {
			out = append(out, item)
		}
	}
	return out
}

// completionSuffix returns the part of item that follows prefix. readline
// only appends, so when a lower-case prefix matched an upper-case keyword
// the suffix follows the typed case.
func completionSuffix(item, prefix string) string {
	typed, suffix := item[:len(prefix)], item[len(prefix):]
	if typed != prefix && typed == strings.ToUpper(typed) && prefix == strings.ToLower(prefix) {
		return strings.ToLower(suffix)
	}
	return suffix
}

// lastToken returns the text after the last space, tab or comma.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " \t,"); i >= 0 {
		return s[i+1:]
	}
	return s
}
