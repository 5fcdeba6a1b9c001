package builtins

import (
	"fmt"

	"github.com/tidesh/tidesh/core/shell"
)

// Pwd prints the tracked working directory.
func Pwd(proc *shell.Proc) int {
	fmt.Fprintln(proc.Stdout, proc.Env.Getwd())
	return 0
}
