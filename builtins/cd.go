package builtins

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidesh/tidesh/core/shell"
)

// Cd changes the tracked working directory. With no argument or a leading ~
// the target resolves against $HOME. On failure the directory is left
// unchanged.
func Cd(proc *shell.Proc) int {
	var target string
	switch len(proc.Argv) {
	case 1:
		target = proc.Env.HomeDir()
	case 2:
		target = proc.Argv[1]
	default:
		fmt.Fprintln(proc.Stderr, "cd: too many arguments")
		return 1
	}

	if target == "~" || strings.HasPrefix(target, "~/") {
		target = filepath.Join(proc.Env.HomeDir(), target[1:])
	}

	if err := proc.Env.Chdir(target); err != nil {
		fmt.Fprintf(proc.Stderr, "cd: %s: No such file or directory\n", target)
		return 1
	}
	return 0
}
