package plugins

import "github.com/bawdo/relal/nodes"

// TableRef is a named relation found in a query. Relation qualifies
// columns (so an alias stays an alias); Name is the underlying table
// name used for matching.
type TableRef struct {
	Relation nodes.Node
	Name     string
}

// CollectTables lists the FROM relation and every JOIN target of core, in
// that order. Subqueries, LATERAL relations and raw string joins have no
// table name and are skipped.
func CollectTables(core *nodes.SelectCore) []TableRef {
	if core.Source == nil {
		return nil
	}
	var refs []TableRef
	if ref, ok := TableOf(core.Source.Left); ok {
		refs = append(refs, ref)
	}
	for _, j := range core.Source.Right {
		if ref, ok := TableOf(j.Relation); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// TableOf reports the table behind n when n is a *nodes.Table or a
// *nodes.TableAlias over one.
func TableOf(n nodes.Node) (TableRef, bool) {
	switch r := n.(type) {
	case *nodes.Table:
		return TableRef{Relation: r, Name: r.Name}, true
	case *nodes.TableAlias:
		name := nodes.TableSourceName(r)
		if name == "" {
			return TableRef{}, false
		}
		return TableRef{Relation: r, Name: name}, true
	}
	return TableRef{}, false
}
