package builtins

import (
	"fmt"

	"github.com/tidesh/tidesh/core/shell"
)

// Type reports how each named command would be resolved: registry hits are
// shell builtins, then the PATH is searched in order.
func Type(r *Registry) shell.BuiltinFunc {
	return func(proc *shell.Proc) int {
		ret := 0
		for _, name := range proc.Argv[1:] {
			if _, ok := r.Lookup(name); ok {
				fmt.Fprintf(proc.Stdout, "%s is a shell builtin\n", name)
				continue
			}
			if path, err := shell.LookPath(proc.Env, name); err == nil {
				fmt.Fprintf(proc.Stdout, "%s is %s\n", name, path)
				continue
			}
			fmt.Fprintf(proc.Stdout, "%s: not found\n", name)
			ret = 1
		}
		return ret
	}
}
