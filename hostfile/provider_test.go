package hostfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weber21w/uzem-spiram/fat16"
	"github.com/weber21w/uzem-spiram/hostfile"
)

const clusterSize = 32768

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadByteAtReturnsFileContent(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", []byte("hello, uzebox"))

	records := []fat16.FileRecord{
		{}, // synthetic volume label
		{ClusterNo: 2, FileSize: uint32(len("hello, uzebox"))},
	}
	paths := []string{"", path}

	p := hostfile.NewProvider(records, paths, clusterSize)
	defer p.Close()

	for i, want := range []byte("hello, uzebox") {
		got := p.ReadByteAt(uint32(i))
		assert.Equal(t, want, got, "byte %d", i)
	}
}

func TestReadByteAtPastEOFReturnsZero(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.txt", []byte("hi"))

	records := []fat16.FileRecord{{}, {ClusterNo: 2, FileSize: 2}}
	paths := []string{"", path}

	p := hostfile.NewProvider(records, paths, clusterSize)
	defer p.Close()

	assert.Equal(t, byte('h'), p.ReadByteAt(0))
	assert.Equal(t, byte(0), p.ReadByteAt(100), "past EOF within the cluster should read zero")
}

func TestReadByteAtUnmatchedOffsetReturnsZero(t *testing.T) {
	records := []fat16.FileRecord{{}}
	paths := []string{""}

	p := hostfile.NewProvider(records, paths, clusterSize)
	defer p.Close()

	assert.Equal(t, byte(0), p.ReadByteAt(0))
}

// A file whose size is an exact cluster multiple claims one cluster past its
// own range in the match scan, shadowing the next file's first cluster with
// padding zeros. Firmware-visible behaviour, pinned here so nobody "fixes"
// the bound.
func TestExactClusterMultipleShadowsNextFile(t *testing.T) {
	dir := t.TempDir()
	pathA := writeTempFile(t, dir, "a.bin", make([]byte, clusterSize))
	pathB := writeTempFile(t, dir, "b.bin", []byte("BBBB"))

	records := []fat16.FileRecord{
		{},
		{ClusterNo: 2, FileSize: clusterSize},
		{ClusterNo: 3, FileSize: 4},
	}
	paths := []string{"", pathA, pathB}

	p := hostfile.NewProvider(records, paths, clusterSize)
	defer p.Close()

	assert.Equal(t, byte(0), p.ReadByteAt(clusterSize))
}

func TestReadByteAtSwitchesFilesAcrossClusterBoundary(t *testing.T) {
	dir := t.TempDir()
	pathA := writeTempFile(t, dir, "a.bin", []byte("AAAA"))
	pathB := writeTempFile(t, dir, "b.bin", []byte("BBBB"))

	records := []fat16.FileRecord{
		{},
		{ClusterNo: 2, FileSize: 4},
		{ClusterNo: 3, FileSize: 4},
	}
	paths := []string{"", pathA, pathB}

	p := hostfile.NewProvider(records, paths, clusterSize)
	defer p.Close()

	assert.Equal(t, byte('A'), p.ReadByteAt(0))
	assert.Equal(t, byte('B'), p.ReadByteAt(clusterSize))
}
