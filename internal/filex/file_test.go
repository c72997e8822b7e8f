package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "a", "b", "tailorhub.db")

	got, err := EnsureParentDir(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(filepath.Dir(want))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureParentDir_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := EnsureParentDir("~/.tailorhub/tailorhub.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tailorhub", "tailorhub.db"), got)
	assert.DirExists(t, filepath.Join(home, ".tailorhub"))
}

func TestEnsureParentDir_Passthrough(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:test.db?mode=memory", "tailorhub.db"} {
		got, err := EnsureParentDir(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEnsureParentDir_Error(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "sub", "x.db"))
	assert.ErrorContains(t, err, "mkdir")
}
