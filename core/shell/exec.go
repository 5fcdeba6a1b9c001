package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// BuiltinFunc is the in-process implementation of a shell builtin.
type BuiltinFunc func(proc *Proc) int

// BuiltinResolver reports the builtin registered under a name, if any.
// Builtins are consulted before the PATH search.
type BuiltinResolver interface {
	Lookup(name string) (BuiltinFunc, bool)
}

// Proc is the execution context handed to a builtin: its argument vector,
// resolved standard streams and the environment it may read or, for cd,
// mutate.
type Proc struct {
	Argv   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    *Environment

	exitCode      int
	exitRequested bool
}

// Exit requests interpreter termination with the given status. Inside a
// pipeline the request terminates only the calling stage.
func (p *Proc) Exit(code int) {
	p.exitRequested = true
	p.exitCode = code
}

// ExitStatus reports whether Exit was called and with which status.
func (p *Proc) ExitStatus() (int, bool) {
	return p.exitCode, p.exitRequested
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Status is the exit status of the last stage.
	Status int
	// Terminate is set when a lone exit builtin asked the interpreter to
	// stop; Status then carries the requested status.
	Terminate bool
}

// Orchestrator launches parsed pipelines: it wires the inter-stage pipes,
// spawns each stage and collects the final exit status. The orchestrator
// itself is single threaded; concurrency comes from the OS scheduling the
// spawned stages.
type Orchestrator struct {
	Env      *Environment
	Builtins BuiltinResolver

	// Inherited standard streams for the first and last stage.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes a pipeline and returns the last stage's exit status.
//
// A lone builtin invocation runs directly in the orchestrator's own context;
// every other builtin stage runs isolated with its own descriptor ownership,
// an environment snapshot and a private exit, exactly like an external
// command.
func (o *Orchestrator) Run(pipeline *Pipeline) Result {
	if len(pipeline.Stages) == 1 {
		if fn, ok := o.lookupBuiltin(pipeline.Stages[0].Argv[0]); ok {
			return o.runLoneBuiltin(fn, pipeline.Stages[0])
		}
	}
	return Result{Status: o.runPipeline(pipeline)}
}

func (o *Orchestrator) lookupBuiltin(name string) (BuiltinFunc, bool) {
	if o.Builtins == nil {
		return nil, false
	}
	return o.Builtins.Lookup(name)
}

func (o *Orchestrator) runLoneBuiltin(fn BuiltinFunc, stage *Stage) Result {
	streams, err := ResolveRedirects(o.Env, stage)
	if err != nil {
		fmt.Fprintf(o.Stderr, "%s: %v\n", stage.Argv[0], err)
		return Result{Status: 1}
	}
	defer streams.Close()

	proc := &Proc{Argv: stage.Argv, Stdin: o.Stdin, Stdout: o.Stdout, Stderr: o.Stderr, Env: o.Env}
	if streams.Stdout != nil {
		proc.Stdout = streams.Stdout
	}
	if streams.Stderr != nil {
		proc.Stderr = streams.Stderr
	}

	code := fn(proc)
	if status, ok := proc.ExitStatus(); ok {
		return Result{Status: status, Terminate: true}
	}
	return Result{Status: code}
}

// launchedStage tracks one stage from launch to exit. Exactly one of cmd and
// done is set for a launched stage; neither is set when the launch failed
// and code already holds the status.
type launchedStage struct {
	cmd  *exec.Cmd
	done chan int
	code int
}

func (o *Orchestrator) runPipeline(pipeline *Pipeline) int {
	n := len(pipeline.Stages)

	type pipeEnds struct{ r, w *os.File }
	pipes := make([]pipeEnds, n-1)
	for i := range pipes {
		r, w, err := os.Pipe()
		if err != nil {
			for _, pe := range pipes[:i] {
				pe.r.Close()
				pe.w.Close()
			}
			fmt.Fprintf(o.Stderr, "cannot create pipe: %v\n", err)
			return 1
		}
		pipes[i] = pipeEnds{r: r, w: w}
	}

	// The orchestrator owns every pipe end until launch transfers it to an
	// isolated builtin stage. Leftover ends are closed after the launch
	// loop so readers see EOF even when a peer stage failed to launch.
	owned := make(map[*os.File]bool, 2*(n-1))
	for _, pe := range pipes {
		owned[pe.r] = true
		owned[pe.w] = true
	}

	launched := make([]launchedStage, n)

	for i, stage := range pipeline.Stages {
		var pipeIn, pipeOut *os.File
		var stdin io.Reader = o.Stdin
		if i > 0 {
			pipeIn = pipes[i-1].r
			stdin = pipeIn
		}
		var stdout io.Writer = o.Stdout
		if i < n-1 {
			pipeOut = pipes[i].w
			stdout = pipeOut
		}
		var stderr io.Writer = o.Stderr

		streams, err := ResolveRedirects(o.Env, stage)
		if err != nil {
			fmt.Fprintf(o.Stderr, "%s: %v\n", stage.Argv[0], err)
			launched[i] = launchedStage{code: 1}
			continue
		}
		// An explicit redirect wins over both piping and inheritance.
		if streams.Stdout != nil {
			stdout = streams.Stdout
		}
		if streams.Stderr != nil {
			stderr = streams.Stderr
		}

		if fn, ok := o.lookupBuiltin(stage.Argv[0]); ok {
			proc := &Proc{Argv: stage.Argv, Stdin: stdin, Stdout: stdout, Stderr: stderr, Env: o.Env.Snapshot()}

			toClose := []io.Closer{streams}
			if pipeIn != nil {
				owned[pipeIn] = false
				toClose = append(toClose, pipeIn)
			}
			if pipeOut != nil && streams.Stdout == nil {
				owned[pipeOut] = false
				toClose = append(toClose, pipeOut)
			}

			done := make(chan int, 1)
			go func() {
				code := fn(proc)
				for _, c := range toClose {
					c.Close()
				}
				done <- code
			}()
			launched[i] = launchedStage{done: done}
			continue
		}

		path, err := LookPath(o.Env, stage.Argv[0])
		if err != nil {
			fmt.Fprintf(o.Stderr, "%s: command not found\n", stage.Argv[0])
			streams.Close()
			launched[i] = launchedStage{code: 127}
			continue
		}

		cmd := &exec.Cmd{
			Path:   path,
			Args:   stage.Argv,
			Dir:    o.Env.Getwd(),
			Env:    o.Env.Environ(),
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
		}
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(o.Stderr, "%s: %v\n", stage.Argv[0], err)
			streams.Close()
			launched[i] = launchedStage{code: 127}
			continue
		}
		// The child holds duplicates of the descriptors; drop our copies.
		streams.Close()
		launched[i] = launchedStage{cmd: cmd}
	}

	for fd, stillOurs := range owned {
		if stillOurs {
			fd.Close()
		}
	}

	// Every stage is waited on, even when a peer failed to launch, so no
	// process is left as a zombie.
	for i := range launched {
		ls := &launched[i]
		switch {
		case ls.cmd != nil:
			ls.code = waitStatus(ls.cmd.Wait())
		case ls.done != nil:
			ls.code = <-ls.done
		}
	}

	return launched[n-1].code
}

func waitStatus(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
