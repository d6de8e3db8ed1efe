package managers

import "github.com/bawdo/relal/nodes"

// JoinContext is returned by SelectManager.Join() and enforces that
// a join condition is provided via On() before continuing to build
// the query.
type JoinContext struct {
	manager *SelectManager
	core    *nodes.SelectCore
	index   int
}

// On sets the join condition and returns the SelectManager for
// continued method chaining. The join is rebuilt through the registry so
// a re-registered join kind receives its condition as an operand.
func (jc *JoinContext) On(condition nodes.Node) *SelectManager {
	j := jc.core.Source.Right[jc.index]
	jc.core.Source.Right[jc.index] = build[*nodes.JoinNode](j.Kind(), j.Relation, condition)
	return jc.manager
}
