package nodes

// Expression is the capability set shared by Attribute and every
// expression node. Embedding types call setSelf with themselves so each
// capability builds on the embedding node rather than on the struct.
type Expression struct {
	Predications
	Arithmetics
	Aggregations
	Combinable
}

func (e *Expression) setSelf(n Node) {
	e.Predications.self = n
	e.Arithmetics.self = n
	e.Aggregations.self = n
	e.Combinable.self = n
}
