package fat16_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weber21w/uzem-spiram/cardgeom"
	"github.com/weber21w/uzem-spiram/fat16"
)

func TestBuildMBRSignatureBytes(t *testing.T) {
	geom := cardgeom.Default()
	entry := fat16.NewPartitionEntry(geom)
	mbr := fat16.BuildMBR(entry, 1)

	assert.Len(t, mbr, 512)
	assert.Equal(t, byte(0x55), mbr[0x1FE])
	assert.Equal(t, byte(0xAA), mbr[0x1FF])
}

func TestBuildMBRPartitionEntryFields(t *testing.T) {
	geom := cardgeom.Default()
	entry := fat16.NewPartitionEntry(geom)

	assert.Equal(t, uint8(fat16.FAT16PartitionType), entry.Type)
	assert.Equal(t, uint32(1), entry.LBAStart)
	assert.Equal(t, geom.TotalSectors32, entry.SectorCount)
}

func TestBuildMBRScalesWithSectorOffset(t *testing.T) {
	geom := cardgeom.Default()
	entry := fat16.NewPartitionEntry(geom)
	mbr := fat16.BuildMBR(entry, 3)

	assert.Len(t, mbr, 3*512)
}
