// Package repl drives the interactive read-eval loop.
package repl

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/tidesh/tidesh/builtins"
	"github.com/tidesh/tidesh/core/complete"
	"github.com/tidesh/tidesh/core/config"
	"github.com/tidesh/tidesh/core/history"
	"github.com/tidesh/tidesh/core/shell"
)

const shellName = "tidesh"

// Shell wires the front end to the core: it reads lines, appends them to
// the history and hands parsed pipelines to the orchestrator.
type Shell struct {
	Env      *shell.Environment
	Builtins *builtins.Registry
	History  *history.Log

	cfg    *config.Config
	orch   *shell.Orchestrator
	store  *history.FileStore
	stderr io.Writer
	rl     *readline.Instance
}

// New builds an interactive shell bound to the process streams, with
// command-name completion and history editing.
func New(cfg *config.Config) (*Shell, error) {
	s := NewWithStreams(cfg, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)

	completer := &complete.Completer{
		Builtins: s.Builtins.Names,
		PathDirs: s.Env.PathList,
	}
	rl, err := readline.NewEx(&readline.Config{
		Stdin:        readline.NewCancelableStdin(os.Stdin),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		AutoComplete: completer,
	})
	if err != nil {
		return nil, err
	}
	s.rl = rl

	return s, nil
}

// NewWithStreams builds a shell without the readline front end, bound to
// the given streams. Used for -c one-shots and tests.
func NewWithStreams(cfg *config.Config, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	env := shell.NewEnvironment()
	if cfg.Path != "" {
		env.Setenv(shell.EnvPath, cfg.Path)
	}
	if cfg.Histfile != "" {
		env.Setenv(shell.EnvHistfile, cfg.Histfile)
	}

	hist := history.NewLog()
	if cfg.Histsize > 0 {
		hist = history.NewLogWithLimit(cfg.Histsize)
	}
	store := history.NewFileStore(fs)
	registry := builtins.New(hist, store)

	s := &Shell{
		Env:      env,
		Builtins: registry,
		History:  hist,
		cfg:      cfg,
		store:    store,
		stderr:   stderr,
		orch: &shell.Orchestrator{
			Env:      env,
			Builtins: registry,
			Stdin:    stdin,
			Stdout:   stdout,
			Stderr:   stderr,
		},
	}
	s.loadHistory()
	return s
}

// Run executes the interactive loop and returns the interpreter's exit
// status.
func (s *Shell) Run() int {
	defer s.rl.Close()

	for {
		s.rl.SetPrompt(s.Prompt())
		line, err := s.rl.Readline()

		switch {
		case err == io.EOF:
			s.flushHistory()
			return 0

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue
		}

		res := s.Eval(line)
		if res.Terminate {
			s.flushHistory()
			return res.Status
		}
	}
}

// Eval tokenizes, parses and runs one command line. A successfully parsed
// line is appended to the history even when it fails to run.
func (s *Shell) Eval(line string) shell.Result {
	tokens, err := shell.Tokenize(line)
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", shellName, err)
		return shell.Result{Status: 1}
	}
	if len(tokens) == 0 {
		return shell.Result{}
	}

	pipeline, err := shell.Parse(tokens)
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", shellName, err)
		return shell.Result{Status: 1}
	}

	s.History.Append(line)
	return s.orch.Run(pipeline)
}

// Prompt renders the configured prompt template: \w is the working
// directory with the home prefix collapsed, \$ the prompt marker.
func (s *Shell) Prompt() string {
	prompt := s.cfg.Prompt
	if prompt == "" {
		prompt = config.Default().Prompt
	}

	pwd := s.Env.Getwd()
	if home := s.Env.HomeDir(); home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	prompt = strings.ReplaceAll(prompt, `\$`, "$")

	if s.cfg.ColorPrompt {
		prompt = color.New(color.FgGreen, color.Bold).Sprint(prompt)
	}
	return prompt
}

func (s *Shell) histfile() string {
	return s.Env.Getenv(shell.EnvHistfile)
}

func (s *Shell) loadHistory() {
	path := s.histfile()
	if path == "" {
		return
	}
	lines, err := s.store.Load(path)
	if err != nil {
		return
	}
	for _, line := range lines {
		s.History.Append(line)
	}
	s.History.MarkSaved()
}

// flushHistory writes the history file back on clean exit.
func (s *Shell) flushHistory() {
	path := s.histfile()
	if path == "" {
		return
	}
	if err := s.store.Save(path, s.History.Lines(), history.SaveFull); err != nil {
		fmt.Fprintf(s.stderr, "%s: history: %v\n", shellName, err)
	}
}
