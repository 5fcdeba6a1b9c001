package shell

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = errors.New("command not found")

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the environment's PATH variable. If file contains a path separator it is
// resolved against the working directory and the PATH is not consulted.
func LookPath(env *Environment, file string) (string, error) {
	if strings.ContainsRune(file, os.PathSeparator) {
		path := env.Abs(file)
		if err := findExecutable(path); err != nil {
			return "", err
		}
		return path, nil
	}
	for _, dir := range env.PathList() {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(env.Abs(dir), file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}
