package builtins

import (
	"fmt"
	"strconv"

	"github.com/tidesh/tidesh/core/shell"
)

// Exit requests interpreter termination with the given status, default 0.
// Statuses outside 0-255 are masked. A non-numeric argument is an error and
// does not terminate anything.
func Exit(proc *shell.Proc) int {
	code := 0
	if len(proc.Argv) > 1 {
		n, err := strconv.Atoi(proc.Argv[1])
		if err != nil {
			fmt.Fprintf(proc.Stderr, "exit: %s: numeric argument required\n", proc.Argv[1])
			return 1
		}
		code = int(uint8(n))
	}

	proc.Exit(code)
	return code
}
