package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bawdo/relal/plugins"
	"github.com/bawdo/relal/plugins/softdelete"
)

const softdeleteUsage = "usage: plugin softdelete [column] | [column on <table> ...] | [table.column, ...]"

// configureSoftdelete enables the soft-delete filter. Accepted forms:
//
//	plugin softdelete
//	plugin softdelete removed_at
//	plugin softdelete removed_at on users posts
//	plugin softdelete users.deleted_at, posts.removed_at
func configureSoftdelete(s *Session, args string) error {
	rest := strings.TrimSpace(args)
	var (
		opts   []softdelete.Option
		status string
	)

	switch {
	case strings.Contains(rest, "."):
		var pairs []string
		for _, pair := range strings.Split(rest, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			table, col, ok := strings.Cut(pair, ".")
			if !ok || table == "" || col == "" || strings.Contains(col, ".") {
				return fmt.Errorf("invalid table.column pair: %q", pair)
			}
			opts = append(opts, softdelete.WithTableColumn(table, col))
			pairs = append(pairs, table+"."+col)
		}
		if len(pairs) == 0 {
			return errors.New(softdeleteUsage)
		}
		sort.Strings(pairs)
		status = strings.Join(pairs, ", ")

	case strings.Contains(strings.ToLower(rest), " on "):
		idx := strings.Index(strings.ToLower(rest), " on ")
		col := strings.TrimSpace(rest[:idx])
		tables := strings.Fields(rest[idx+len(" on "):])
		if col == "" || strings.Contains(col, " ") || len(tables) == 0 {
			return errors.New(softdeleteUsage)
		}
		opts = append(opts, softdelete.WithColumn(col), softdelete.WithTables(tables...))
		status = fmt.Sprintf("column: %s, tables: %s", col, strings.Join(tables, ", "))

	case rest != "":
		fields := strings.Fields(rest)
		if len(fields) != 1 {
			return errors.New(softdeleteUsage)
		}
		opts = append(opts, softdelete.WithColumn(fields[0]))
		status = "column: " + fields[0]

	default:
		status = "column: deleted_at"
	}

	s.plugins.register(pluginEntry{
		name:    "softdelete",
		factory: func() plugins.Transformer { return softdelete.New(opts...) },
		status:  func() string { return status },
	})
	s.log.Debug("plugin enabled", "plugin", "softdelete", "config", status)
	_, _ = fmt.Fprintf(s.out, "  Soft-delete enabled (%s)\n", status)
	return nil
}
