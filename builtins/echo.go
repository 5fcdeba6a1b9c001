package builtins

import (
	"fmt"
	"strings"

	"github.com/tidesh/tidesh/core/shell"
)

// Echo writes its arguments joined by single spaces followed by a newline.
// -n suppresses the newline. Other dash-prefixed arguments are printed
// verbatim, so Echo does not use the getopt wrapper.
func Echo(proc *shell.Proc) int {
	args := proc.Argv[1:]
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}

	fmt.Fprint(proc.Stdout, strings.Join(args, " "))
	if newline {
		fmt.Fprintln(proc.Stdout)
	}
	return 0
}
