package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRedirectsTruncate(t *testing.T) {
	dir := t.TempDir()
	env := NewEnvironmentFrom(nil, dir)
	path := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0644))

	stage := &Stage{
		Argv:   []string{"cmd"},
		Stdout: &RedirectIntent{Path: "out.txt", Mode: RedirectTruncate},
	}

	streams, err := ResolveRedirects(env, stage)
	require.NoError(t, err)
	require.NotNil(t, streams.Stdout)
	assert.Nil(t, streams.Stderr)

	_, err = streams.Stdout.WriteString("hi\n")
	require.NoError(t, err)
	require.NoError(t, streams.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestResolveRedirectsAppend(t *testing.T) {
	dir := t.TempDir()
	env := NewEnvironmentFrom(nil, dir)
	stage := &Stage{
		Argv:   []string{"cmd"},
		Stdout: &RedirectIntent{Path: "out.txt", Mode: RedirectAppend},
	}

	for i := 0; i < 2; i++ {
		streams, err := ResolveRedirects(env, stage)
		require.NoError(t, err)
		_, err = streams.Stdout.WriteString("hi\n")
		require.NoError(t, err)
		require.NoError(t, streams.Close())
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi\nhi\n", string(data))
}

func TestResolveRedirectsStderr(t *testing.T) {
	dir := t.TempDir()
	env := NewEnvironmentFrom(nil, dir)
	stage := &Stage{
		Argv:   []string{"cmd"},
		Stderr: &RedirectIntent{Path: "err.log", Mode: RedirectTruncate},
	}

	streams, err := ResolveRedirects(env, stage)
	require.NoError(t, err)
	assert.Nil(t, streams.Stdout)
	require.NotNil(t, streams.Stderr)
	require.NoError(t, streams.Close())
}

func TestResolveRedirectsMissingParent(t *testing.T) {
	env := NewEnvironmentFrom(nil, t.TempDir())
	stage := &Stage{
		Argv:   []string{"cmd"},
		Stdout: &RedirectIntent{Path: "no/such/dir/out.txt", Mode: RedirectTruncate},
	}

	_, err := ResolveRedirects(env, stage)
	require.Error(t, err)
}

func TestResolveRedirectsClosesOnPartialFailure(t *testing.T) {
	dir := t.TempDir()
	env := NewEnvironmentFrom(nil, dir)
	stage := &Stage{
		Argv:   []string{"cmd"},
		Stdout: &RedirectIntent{Path: "ok.txt", Mode: RedirectTruncate},
		Stderr: &RedirectIntent{Path: "no/such/err.log", Mode: RedirectTruncate},
	}

	_, err := ResolveRedirects(env, stage)
	require.Error(t, err)

	// The stdout target was still created before the failure.
	_, statErr := os.Stat(filepath.Join(dir, "ok.txt"))
	assert.NoError(t, statErr)
}

func TestResolveRedirectsNone(t *testing.T) {
	env := NewEnvironmentFrom(nil, t.TempDir())
	streams, err := ResolveRedirects(env, &Stage{Argv: []string{"cmd"}})
	require.NoError(t, err)
	assert.Nil(t, streams.Stdout)
	assert.Nil(t, streams.Stderr)
	assert.NoError(t, streams.Close())
}
