package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const (
	EnvHome     = "HOME"
	EnvPath     = "PATH"
	EnvHistfile = "HISTFILE"
)

// Environment holds the interpreter's process-wide mutable state: the
// environment variables and the tracked working directory. It is passed
// explicitly into every builtin call; only cd mutates the directory.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
	dir  string
}

// NewEnvironment builds an environment seeded from the real process
// environment and working directory.
func NewEnvironment() *Environment {
	dir, err := os.Getwd()
	if err != nil {
		dir = string(os.PathSeparator)
	}
	return NewEnvironmentFrom(os.Environ(), dir)
}

// NewEnvironmentFrom builds an environment from an Environ-style list and a
// working directory.
func NewEnvironmentFrom(environ []string, dir string) *Environment {
	env := &Environment{
		vars: make(map[string]string, len(environ)),
		dir:  filepath.Clean(dir),
	}
	for _, kv := range environ {
		split := strings.SplitN(kv, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		env.vars[key] = value
	}
	return env
}

func (e *Environment) Getenv(key string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vars[key]
}

func (e *Environment) Setenv(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
}

// Environ returns the variables as a sorted KEY=value list suitable for
// exec.Cmd.
func (e *Environment) Environ() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Getwd returns the tracked working directory. It is read fresh on every
// call, never cached by callers.
func (e *Environment) Getwd() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dir
}

// Chdir changes the tracked working directory. Relative paths resolve
// against the current value. The target must exist and be a directory;
// otherwise the directory is left unchanged.
func (e *Environment) Chdir(path string) error {
	target := e.Abs(path)
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", path)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.dir = target
	return nil
}

// Abs resolves path against the tracked working directory.
func (e *Environment) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.Getwd(), path)
}

// HomeDir returns the value of $HOME.
func (e *Environment) HomeDir() string {
	return e.Getenv(EnvHome)
}

// PathList returns the executable search directories from $PATH in order.
func (e *Environment) PathList() []string {
	return filepath.SplitList(e.Getenv(EnvPath))
}

// Snapshot returns an independent copy. Pipeline stages run against a
// snapshot so a cd inside a pipeline has no lasting effect.
func (e *Environment) Snapshot() *Environment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	vars := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Environment{vars: vars, dir: e.dir}
}
