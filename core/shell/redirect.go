package shell

import "os"

// OpenStreams holds the files opened for a stage's redirect intents. The
// handles are owned by the stage for its duration and closed on stage exit.
type OpenStreams struct {
	Stdout *os.File
	Stderr *os.File
}

func (s *OpenStreams) Close() error {
	var lastErr error
	if s.Stdout != nil {
		if err := s.Stdout.Close(); err != nil {
			lastErr = err
		}
		s.Stdout = nil
	}
	if s.Stderr != nil {
		if err := s.Stderr.Close(); err != nil {
			lastErr = err
		}
		s.Stderr = nil
	}
	return lastErr
}

// ResolveRedirects opens the redirect targets declared on a stage. It runs
// immediately before the stage launches, so a failure aborts only that
// stage. Truncate mode creates or clears the file, append mode creates it
// if absent and seeks to the end.
func ResolveRedirects(env *Environment, stage *Stage) (*OpenStreams, error) {
	streams := &OpenStreams{}

	if stage.Stdout != nil {
		fd, err := openIntent(env, stage.Stdout)
		if err != nil {
			return nil, err
		}
		streams.Stdout = fd
	}
	if stage.Stderr != nil {
		fd, err := openIntent(env, stage.Stderr)
		if err != nil {
			streams.Close()
			return nil, err
		}
		streams.Stderr = fd
	}

	return streams, nil
}

func openIntent(env *Environment, intent *RedirectIntent) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if intent.Mode == RedirectAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(env.Abs(intent.Path), flags, 0644)
}
