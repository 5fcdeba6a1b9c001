package builtins

import (
	"fmt"
	"strconv"

	"github.com/tidesh/tidesh/core/history"
	"github.com/tidesh/tidesh/core/shell"
)

// History lists the in-memory log and delegates file synchronization to the
// store. With no argument it lists everything, with a numeric argument the
// last N entries. -r, -a and -w use FILE when given, $HISTFILE otherwise.
func History(log *history.Log, store *history.FileStore) shell.BuiltinFunc {
	return func(proc *shell.Proc) int {
		cmd := &Command{
			Use:   "history [-c] [-r|-a|-w [FILE]] [N]",
			Short: "Display or manipulate the history list.",
		}
		opts := cmd.Flags()
		clear := opts.Bool('c', "clear the history by deleting all entries")
		read := opts.Bool('r', "read the history file and append its entries to the list")
		appendNew := opts.Bool('a', "append new entries to the history file")
		write := opts.Bool('w', "write the current history to the history file")

		return cmd.Run(proc, func(args []string) int {
			if *clear {
				log.Clear()
				return 0
			}

			if *read || *appendNew || *write {
				path := proc.Env.Getenv(shell.EnvHistfile)
				if len(args) > 0 {
					path = args[0]
				}
				if path == "" {
					fmt.Fprintln(proc.Stderr, "history: no history file")
					return 1
				}
				return syncHistory(proc, log, store, proc.Env.Abs(path), *read, *appendNew, *write)
			}

			limit := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					fmt.Fprintf(proc.Stderr, "history: %s: numeric argument required\n", args[0])
					return 1
				}
				limit = n
			}

			for _, e := range log.Entries(limit) {
				fmt.Fprintf(proc.Stdout, "%5d  %s\n", e.Index, e.Line)
			}
			return 0
		})
	}
}

func syncHistory(proc *shell.Proc, log *history.Log, store *history.FileStore, path string, read, appendNew, write bool) int {
	var err error
	switch {
	case read:
		var lines []string
		if lines, err = store.Load(path); err == nil {
			for _, line := range lines {
				log.Append(line)
			}
		}
	case write:
		if err = store.Save(path, log.Lines(), history.SaveFull); err == nil {
			log.MarkSaved()
		}
	case appendNew:
		if err = store.Save(path, log.Unsaved(), history.SaveIncremental); err == nil {
			log.MarkSaved()
		}
	}

	if err != nil {
		fmt.Fprintf(proc.Stderr, "history: %v\n", err)
		return 1
	}
	return 0
}
