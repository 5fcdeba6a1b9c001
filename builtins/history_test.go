package builtins

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidesh/tidesh/core/history"
	"github.com/tidesh/tidesh/core/shell"
)

func seededHistory() (*history.Log, *history.FileStore) {
	log := history.NewLog()
	log.Append("echo one")
	log.Append("pwd")
	log.Append("echo two")
	return log, history.NewFileStore(afero.NewMemMapFs())
}

func TestHistoryGolden(t *testing.T) {
	log, store := seededHistory()

	goldenTestSuite{
		"list-all": {Args: []string{"history"}},
		"last-two": {Args: []string{"history", "2"}},
	}.Run(t, History(log, store), emptyEnv())
}

func TestHistoryBadCount(t *testing.T) {
	log, store := seededHistory()

	_, _, stderr, code := runProc(History(log, store), emptyEnv(), "history", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "numeric argument required")
}

func TestHistoryClear(t *testing.T) {
	log, store := seededHistory()

	_, stdout, _, code := runProc(History(log, store), emptyEnv(), "history", "-c")
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 0, log.Len())
}

func TestHistoryWriteReadRoundTrip(t *testing.T) {
	log, store := seededHistory()

	_, _, stderr, code := runProc(History(log, store), emptyEnv(), "history", "-w", "histfile")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	// A fresh interpreter reading the file reproduces the same entries.
	fresh := history.NewLog()
	_, _, stderr, code = runProc(History(fresh, store), emptyEnv(), "history", "-r", "histfile")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	assert.Equal(t, log.Lines(), fresh.Lines())
}

func TestHistoryAppendIsIncremental(t *testing.T) {
	log, store := seededHistory()
	env := emptyEnv()

	_, _, _, code := runProc(History(log, store), env, "history", "-w", "histfile")
	require.Equal(t, 0, code)

	log.Append("echo three")
	_, _, _, code = runProc(History(log, store), env, "history", "-a", "histfile")
	require.Equal(t, 0, code)

	fresh := history.NewLog()
	_, _, _, code = runProc(History(fresh, store), env, "history", "-r", "histfile")
	require.Equal(t, 0, code)

	assert.Equal(t, []string{"echo one", "pwd", "echo two", "echo three"}, fresh.Lines())
}

func TestHistoryUsesHistfileVariable(t *testing.T) {
	log, store := seededHistory()
	env := shell.NewEnvironmentFrom([]string{"PATH=", "HISTFILE=/saved"}, "/")

	_, _, _, code := runProc(History(log, store), env, "history", "-w")
	require.Equal(t, 0, code)

	fresh := history.NewLog()
	_, _, _, code = runProc(History(fresh, store), env, "history", "-r")
	require.Equal(t, 0, code)
	assert.Equal(t, log.Lines(), fresh.Lines())
}

func TestHistoryNoFileConfigured(t *testing.T) {
	log, store := seededHistory()

	_, _, stderr, code := runProc(History(log, store), emptyEnv(), "history", "-w")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no history file")
}
