package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVars(t *testing.T) {
	env := NewEnvironmentFrom([]string{"A=1", "B=two", "EMPTY="}, "/")

	assert.Equal(t, "1", env.Getenv("A"))
	assert.Equal(t, "", env.Getenv("EMPTY"))
	assert.Equal(t, "", env.Getenv("MISSING"))

	env.Setenv("A", "changed")
	assert.Equal(t, "changed", env.Getenv("A"))

	assert.Equal(t, []string{"A=changed", "B=two", "EMPTY="}, env.Environ())
}

func TestEnvironmentChdir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))

	env := NewEnvironmentFrom(nil, root)

	require.NoError(t, env.Chdir("sub"))
	assert.Equal(t, filepath.Join(root, "sub"), env.Getwd())

	require.NoError(t, env.Chdir(".."))
	assert.Equal(t, root, env.Getwd())

	require.NoError(t, env.Chdir(filepath.Join(root, "sub")))
	assert.Equal(t, filepath.Join(root, "sub"), env.Getwd())
}

func TestEnvironmentChdirFailureLeavesDir(t *testing.T) {
	root := t.TempDir()
	env := NewEnvironmentFrom(nil, root)

	require.Error(t, env.Chdir("does-not-exist"))
	assert.Equal(t, root, env.Getwd())

	file := filepath.Join(root, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	require.Error(t, env.Chdir(file))
	assert.Equal(t, root, env.Getwd())
}

func TestEnvironmentAbs(t *testing.T) {
	env := NewEnvironmentFrom(nil, "/base")

	assert.Equal(t, "/base/rel", env.Abs("rel"))
	assert.Equal(t, "/abs/path", env.Abs("/abs/path"))
	assert.Equal(t, "/base", env.Abs("."))
}

func TestEnvironmentSnapshot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))

	env := NewEnvironmentFrom([]string{"A=1"}, root)
	snap := env.Snapshot()

	require.NoError(t, snap.Chdir("sub"))
	snap.Setenv("A", "2")

	assert.Equal(t, root, env.Getwd())
	assert.Equal(t, "1", env.Getenv("A"))
}

func TestEnvironmentPathList(t *testing.T) {
	env := NewEnvironmentFrom([]string{"PATH=/bin" + string(os.PathListSeparator) + "/usr/bin"}, "/")
	assert.Equal(t, []string{"/bin", "/usr/bin"}, env.PathList())
}
