package nodes

import (
	"fmt"
	"slices"
	"sync"
)

// Factory builds a node of one kind from its operands.
type Factory func(operands ...Node) Node

var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]Factory)
)

// Register installs f as the factory for kind and returns the factory it
// replaced, or nil. Node files register their own kinds at init; a dialect
// re-registers a kind to substitute its own implementation everywhere the
// kind is built through the registry.
//
// Registration must happen before concurrent use.
func Register(kind Kind, f Factory) Factory {
	registryMu.Lock()
	defer registryMu.Unlock()
	prev := registry[kind]
	if f == nil {
		delete(registry, kind)
	} else {
		registry[kind] = f
	}
	return prev
}

// Lookup returns the factory registered for kind.
func Lookup(kind Kind) (Factory, error) {
	registryMu.RLock()
	f, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownNodeKindError{Kind: kind}
	}
	return f, nil
}

// Build constructs a node through the registry. A missing factory is a
// programmer error and panics.
func Build(kind Kind, operands ...Node) Node {
	f, err := Lookup(kind)
	if err != nil {
		panic(err.Error())
	}
	return f(operands...)
}

// Registered lists the kinds that currently have a factory, in kind order.
func Registered() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// arity panics unless len(ops) is within [min, max]. max < 0 means unbounded.
func arity(kind Kind, ops []Node, minOps, maxOps int) {
	if len(ops) < minOps || (maxOps >= 0 && len(ops) > maxOps) {
		panic(fmt.Sprintf("relal: %s factory got %d operands", kind, len(ops)))
	}
}

// operand returns ops[i] or nil.
func operand(ops []Node, i int) Node {
	if i < len(ops) {
		return ops[i]
	}
	return nil
}
