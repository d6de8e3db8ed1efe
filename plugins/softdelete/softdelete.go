// Package softdelete filters out soft-deleted rows by appending
// "column IS NULL" to queries as they are compiled.
//
// With no options every relation in FROM and JOIN is filtered on
// "deleted_at":
//
//	query := managers.NewSelectManager(users).Use(softdelete.New())
//	// SELECT * FROM "users" WHERE "users"."deleted_at" IS NULL
//
// Every SELECT core is rewritten, so both sides of a set operation and
// builders used as subqueries are filtered too. Aliased relations are
// matched by their underlying table name and qualified by the alias.
//
// Scope and column can be narrowed:
//
//	softdelete.New(softdelete.WithColumn("removed_at"))
//	softdelete.New(softdelete.WithTables("users"))
//	softdelete.New(
//	    softdelete.WithTableColumn("users", "deleted_at"),
//	    softdelete.WithTableColumn("posts", "removed_at"),
//	)
//
// UPDATE and DELETE statements are left alone unless FilterWrites is
// given, in which case their target table is filtered the same way.
package softdelete

import (
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
)

// DefaultColumn is the column checked when no other is configured.
const DefaultColumn = "deleted_at"

// SoftDelete is a plugins.Transformer. The zero value is not usable; use New.
type SoftDelete struct {
	plugins.BaseTransformer

	column   string
	perTable map[string]string
	only     map[string]struct{} // nil: every table
	writes   bool
}

// Option configures a SoftDelete.
type Option func(*SoftDelete)

// WithColumn replaces DefaultColumn.
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.column = name }
}

// WithTables limits filtering to the named tables.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		for _, n := range names {
			sd.include(n)
		}
	}
}

// WithTableColumn filters table on column. The table joins the
// WithTables set.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.perTable == nil {
			sd.perTable = make(map[string]string)
		}
		sd.perTable[table] = column
		sd.include(table)
	}
}

// FilterWrites extends filtering to the target of UPDATE and DELETE.
func FilterWrites() Option {
	return func(sd *SoftDelete) { sd.writes = true }
}

func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{column: DefaultColumn}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// Column reports the column checked for table, and whether table is
// filtered at all.
func (sd *SoftDelete) Column(table string) (string, bool) {
	if sd.only != nil {
		if _, ok := sd.only[table]; !ok {
			return "", false
		}
	}
	if col, ok := sd.perTable[table]; ok {
		return col, true
	}
	return sd.column, true
}

func (sd *SoftDelete) TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error) {
	for _, ref := range plugins.CollectTables(core) {
		core.Wheres = sd.guard(core.Wheres, ref)
	}
	return core, nil
}

func (sd *SoftDelete) TransformUpdate(stmt *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	if sd.writes {
		if ref, ok := plugins.TableOf(stmt.Table); ok {
			stmt.Wheres = sd.guard(stmt.Wheres, ref)
		}
	}
	return stmt, nil
}

func (sd *SoftDelete) TransformDelete(stmt *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	if sd.writes {
		if ref, ok := plugins.TableOf(stmt.From); ok {
			stmt.Wheres = sd.guard(stmt.Wheres, ref)
		}
	}
	return stmt, nil
}

func (sd *SoftDelete) guard(wheres []nodes.Node, ref plugins.TableRef) []nodes.Node {
	col, ok := sd.Column(ref.Name)
	if !ok {
		return wheres
	}
	return append(wheres, nodes.Build(nodes.KindIsNull, nodes.NewAttribute(ref.Relation, col)))
}

func (sd *SoftDelete) include(table string) {
	if sd.only == nil {
		sd.only = make(map[string]struct{})
	}
	sd.only[table] = struct{}{}
}
