package builtins

import (
	"fmt"
	"io"

	getopt "github.com/pborman/getopt/v2"

	"github.com/tidesh/tidesh/core/shell"
)

// Command provides flag parsing and help output shared by builtins that
// take options.
type Command struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (c *Command) Flags() *getopt.Set {
	if c.flags == nil {
		c.flags = getopt.New()
	}
	return c.flags
}

// PrintHelp writes help for the command to the given writer.
func (c *Command) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, c.Use)
	fmt.Fprintln(w, c.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	c.Flags().PrintOptions(w)
}

// Run parses the proc's arguments and, if parsing succeeded, calls the
// callback with the remaining positional arguments.
func (c *Command) Run(proc *shell.Proc, callback func(args []string) int) int {
	opts := c.Flags()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(proc.Argv, nil); err != nil {
		fmt.Fprintf(proc.Stderr, "%s: %s\n", proc.Argv[0], err)
		c.PrintHelp(proc.Stderr)
		return 1
	}

	if *showHelp {
		c.PrintHelp(proc.Stdout)
		return 0
	}

	return callback(opts.Args())
}
