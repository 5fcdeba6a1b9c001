// Package builtins implements the commands the interpreter runs in-process.
// The registry is consulted before the PATH search, and its entries
// participate in pipelines exactly like external programs.
package builtins

import (
	"sort"

	"github.com/tidesh/tidesh/core/history"
	"github.com/tidesh/tidesh/core/shell"
)

// Registry maps builtin names to their implementations.
type Registry struct {
	m map[string]shell.BuiltinFunc
}

var _ shell.BuiltinResolver = (*Registry)(nil)

// New builds a registry with the standard builtins. The history builtin is
// wired to the given log and store.
func New(log *history.Log, store *history.FileStore) *Registry {
	r := &Registry{m: make(map[string]shell.BuiltinFunc)}
	r.add("cd", Cd)
	r.add("echo", Echo)
	r.add("exit", Exit)
	r.add("history", History(log, store))
	r.add("pwd", Pwd)
	r.add("type", Type(r))
	return r
}

func (r *Registry) add(name string, fn shell.BuiltinFunc) {
	r.m[name] = fn
}

// Lookup implements shell.BuiltinResolver.
func (r *Registry) Lookup(name string) (shell.BuiltinFunc, bool) {
	fn, ok := r.m[name]
	return fn, ok
}

// Names returns the registered builtin names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.m))
	for name := range r.m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
