package cardgeom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weber21w/uzem-spiram/cardgeom"
	"github.com/weber21w/uzem-spiram/emuerr"
)

func TestDefaultReproducesOriginalLayout(t *testing.T) {
	geom := cardgeom.Default()

	assert.Equal(t, uint16(512), geom.BytesPerSector)
	assert.Equal(t, uint8(64), geom.SectorsPerCluster)
	assert.Equal(t, uint16(1), geom.ReservedSectorCount)
	assert.Equal(t, uint8(2), geom.TableCount)
	assert.Equal(t, uint16(512), geom.RootEntryCount)
	assert.Equal(t, uint8(0xF8), geom.MediaType)
	assert.Equal(t, uint16(0x76), geom.SectorsPerFAT)
	assert.Equal(t, uint32(3854201), geom.TotalSectors32)
	assert.Equal(t, uint8(4), geom.DriveNo)
	assert.Equal(t, uint32(1234567), geom.SerialNumber)
}

func TestGetEmptySlugReturnsDefault(t *testing.T) {
	geom, err := cardgeom.Get("")
	require.NoError(t, err)
	assert.Equal(t, cardgeom.Default(), geom)
}

func TestGetUnknownSlug(t *testing.T) {
	_, err := cardgeom.Get("not-a-real-preset")
	require.Error(t, err)
	assert.ErrorIs(t, err, emuerr.ErrUnknownGeometry)
}

func TestClusterSize(t *testing.T) {
	geom := cardgeom.Default()
	assert.Equal(t, uint32(512*64), geom.ClusterSize())
}

func TestSlugsIncludesDefault(t *testing.T) {
	assert.Contains(t, cardgeom.Slugs(), cardgeom.DefaultSlug)
}
