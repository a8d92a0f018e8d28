package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAndEnsureDBPathCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "kith.db")

	got, err := ResolveAndEnsureDBPath(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolveAndEnsureDBPathMemory(t *testing.T) {
	got, err := ResolveAndEnsureDBPath(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", got)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/data/kith.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "kith.db"), got)

	got, err = ExpandHome("/abs/kith.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/kith.db", got)
}

func TestDefaultPathsNameTheApp(t *testing.T) {
	assert.Equal(t, "kith.db", filepath.Base(GetDefaultDBPathOnly()))
	if p := GetDefaultConfigPath(); p != "" {
		assert.Equal(t, "config.yaml", filepath.Base(p))
		assert.Equal(t, AppName, filepath.Base(filepath.Dir(p)))
	}
}
