package shell

import "fmt"

// RedirectIntent is a parsed instruction to bind a stage's stdout or stderr
// to a file. It is opened exactly once, immediately before the stage
// launches.
type RedirectIntent struct {
	Path string
	Mode RedirectMode
}

// Stage is one pipeline segment: the command with its arguments and any
// per-stream redirect intents.
type Stage struct {
	// Argv holds the command name and arguments, never empty.
	Argv []string
	// Stdout and Stderr are nil unless the stage declared a redirect.
	Stdout *RedirectIntent
	Stderr *RedirectIntent
}

// Pipeline is a non-empty ordered sequence of stages. Each intermediate
// stage's stdout feeds the next stage's stdin unless the stage declares an
// explicit stdout redirect.
type Pipeline struct {
	Stages []*Stage
}

// Parse consumes a token sequence and produces a pipeline.
//
// A redirect operator must be followed by exactly one word naming the
// target; a later redirect for the same stream on the same stage overrides
// an earlier one. Empty stages (a pipe first, last or doubled) and an empty
// token sequence are syntax errors.
func Parse(tokens []Token) (*Pipeline, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrSyntax)
	}

	pipeline := &Pipeline{}
	cur := &Stage{}

	closeStage := func() error {
		if len(cur.Argv) == 0 {
			return fmt.Errorf("%w: empty pipeline stage", ErrSyntax)
		}
		pipeline.Stages = append(pipeline.Stages, cur)
		cur = &Stage{}
		return nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case TokenWord:
			cur.Argv = append(cur.Argv, tok.Text)

		case TokenRedirect:
			if i+1 == len(tokens) || tokens[i+1].Kind != TokenWord {
				return nil, fmt.Errorf("%w: redirect is missing a target", ErrSyntax)
			}
			intent := &RedirectIntent{Path: tokens[i+1].Text, Mode: tok.Mode}
			if tok.Stream == RedirectStderr {
				cur.Stderr = intent
			} else {
				cur.Stdout = intent
			}
			i++

		case TokenPipe:
			if err := closeStage(); err != nil {
				return nil, err
			}
		}
	}

	if err := closeStage(); err != nil {
		return nil, err
	}

	return pipeline, nil
}
