// Package complete suggests command names for the readline front end.
package complete

import (
	"os"
	"sort"
	"strings"

	"github.com/abiosoft/readline"
)

// Completer completes the command position of a line from the builtin names
// and the executable basenames on the PATH. It implements
// readline.AutoCompleter.
type Completer struct {
	// Builtins returns the registered builtin names.
	Builtins func() []string
	// PathDirs returns the executable search directories in order.
	PathDirs func() []string
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do returns the candidate suffixes for the prefix before pos. Only the
// first word of the line is completed.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		return nil, 0
	}

	var out [][]rune
	for _, name := range c.Candidates(prefix) {
		out = append(out, []rune(name[len(prefix):]+" "))
	}
	return out, len(prefix)
}

// Candidates returns the sorted set of known command names starting with
// prefix.
func (c *Completer) Candidates(prefix string) []string {
	seen := make(map[string]bool)

	if c.Builtins != nil {
		for _, name := range c.Builtins() {
			if strings.HasPrefix(name, prefix) {
				seen[name] = true
			}
		}
	}
	if c.PathDirs != nil {
		for _, dir := range c.PathDirs() {
			addExecutables(seen, dir, prefix)
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func addExecutables(seen map[string]bool, dir, prefix string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || seen[name] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if m := info.Mode(); !m.IsDir() && m&0111 != 0 {
			seen[name] = true
		}
	}
}
