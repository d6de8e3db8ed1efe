package main

import (
	"slices"

	"github.com/bawdo/relal/plugins"
)

// pluginEntry is an enabled plugin. factory builds a fresh transformer
// for every compiled statement.
type pluginEntry struct {
	name    string
	factory func() plugins.Transformer
	status  func() string
}

// pluginRegistry holds the enabled plugins in the order they apply.
type pluginRegistry struct {
	entries []pluginEntry
}

// register adds entry, replacing an enabled plugin of the same name in
// place.
func (r *pluginRegistry) register(entry pluginEntry) {
	if i := r.index(entry.name); i >= 0 {
		r.entries[i] = entry
		return
	}
	r.entries = append(r.entries, entry)
}

func (r *pluginRegistry) deregister(name string) bool {
	i := r.index(name)
	if i < 0 {
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return true
}

func (r *pluginRegistry) deregisterAll() { r.entries = nil }

func (r *pluginRegistry) get(name string) (pluginEntry, bool) {
	if i := r.index(name); i >= 0 {
		return r.entries[i], true
	}
	return pluginEntry{}, false
}

func (r *pluginRegistry) index(name string) int {
	return slices.IndexFunc(r.entries, func(e pluginEntry) bool { return e.name == name })
}

func (r *pluginRegistry) names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

// applyTo hands a fresh transformer from each enabled plugin to use.
func (r *pluginRegistry) applyTo(use func(plugins.Transformer)) {
	for _, entry := range r.entries {
		use(entry.factory())
	}
}

// pluginConfigurer is a plugin the "plugin" command knows how to enable.
type pluginConfigurer struct {
	name      string
	configure func(s *Session, args string) error
}
