// Package history keeps the interpreter's command history as two
// collaborators with different lifecycles: an append-only in-memory log
// that lives for the process, and a file-backed store synchronized only on
// explicit request or at exit.
package history

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const appendFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// Entry is one history line with its 1-based index.
type Entry struct {
	Index int
	Line  string
}

// Log is the append-only in-memory command history. A zero limit means
// unbounded.
type Log struct {
	mu    sync.Mutex
	lines []string
	saved int
	limit int
}

func NewLog() *Log {
	return &Log{}
}

// NewLogWithLimit caps the log at limit entries, dropping the oldest.
func NewLogWithLimit(limit int) *Log {
	return &Log{limit: limit}
}

// Append records one command line.
func (l *Log) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if l.limit > 0 && len(l.lines) > l.limit {
		drop := len(l.lines) - l.limit
		l.lines = append(l.lines[:0:0], l.lines[drop:]...)
		l.saved -= drop
		if l.saved < 0 {
			l.saved = 0
		}
	}
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Entries returns the last limit entries in order, most recent last. A
// non-positive limit returns everything. Indices count from the start of
// the log.
func (l *Log) Entries(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if limit > 0 && limit < len(l.lines) {
		start = len(l.lines) - limit
	}

	out := make([]Entry, 0, len(l.lines)-start)
	for i := start; i < len(l.lines); i++ {
		out = append(out, Entry{Index: i + 1, Line: l.lines[i]})
	}
	return out
}

// Lines returns a copy of every line, oldest first.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Unsaved returns the lines appended since the last MarkSaved.
func (l *Log) Unsaved() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines[l.saved:]...)
}

// MarkSaved records that every current line has been flushed to the store.
func (l *Log) MarkSaved() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saved = len(l.lines)
}

// Clear deletes all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
	l.saved = 0
}

// SaveMode selects how Save writes the history file.
type SaveMode int

const (
	// SaveFull replaces the file's contents.
	SaveFull SaveMode = iota
	// SaveIncremental appends to the file, creating it if absent.
	SaveIncremental
)

// FileStore persists history lines to a file, one entry per line.
type FileStore struct {
	fs afero.Fs
}

func NewFileStore(fs afero.Fs) *FileStore {
	return &FileStore{fs: fs}
}

// Load reads the history file and returns its lines in order.
func (s *FileStore) Load(path string) ([]string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// Save writes lines to path according to the mode.
func (s *FileStore) Save(path string, lines []string, mode SaveMode) error {
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if mode == SaveFull {
		return afero.WriteFile(s.fs, path, []byte(buf.String()), 0600)
	}

	fd, err := s.fs.OpenFile(path, appendFlags, 0600)
	if err != nil {
		return err
	}
	defer fd.Close()
	_, err = fd.WriteString(buf.String())
	return err
}
