package hostdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRealDirectoryListsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := readRealDirectory(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]DirEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["a.txt"].IsRegular)
	assert.False(t, byName["sub"].IsRegular)
}

func TestReadRealDirectoryEmptyDirectory(t *testing.T) {
	entries, err := readRealDirectory(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadRealDirectoryMissingDirectory(t *testing.T) {
	_, err := readRealDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
