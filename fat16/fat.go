package fat16

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"
	"github.com/weber21w/uzem-spiram/emuerr"
)

// EndOfChain is the FAT16 cluster value marking the last cluster of a file.
const EndOfChain = 0xFFFF

// firstFreeCluster is the first cluster index available for allocation;
// clusters 0 and 1 are reserved by the FAT16 convention.
const firstFreeCluster = 2

// Allocator hands out contiguous cluster runs in first-fit order, tracked in
// a free-cluster bitmap.
type Allocator struct {
	bitmap        bitmap.Bitmap
	totalClusters uint
}

// NewAllocator creates an allocator over totalClusters clusters, with
// clusters 0 and 1 pre-marked allocated since FAT16 reserves them.
func NewAllocator(totalClusters uint) *Allocator {
	a := &Allocator{
		bitmap:        bitmap.New(int(totalClusters)),
		totalClusters: totalClusters,
	}
	if totalClusters > 0 {
		a.bitmap.Set(0, true)
	}
	if totalClusters > 1 {
		a.bitmap.Set(1, true)
	}
	return a
}

// AllocateRun finds the first contiguous run of `count` free clusters,
// marks them allocated, and returns the index of the first one.
func (a *Allocator) AllocateRun(count uint16) (uint16, error) {
	runStart := -1
	runLen := 0

	for i := 0; i < int(a.totalClusters); i++ {
		if a.bitmap.Get(i) {
			runLen = 0
			continue
		}
		if runLen == 0 {
			runStart = i
		}
		runLen++
		if runLen == int(count) {
			for j := runStart; j < runStart+int(count); j++ {
				a.bitmap.Set(j, true)
			}
			return uint16(runStart), nil
		}
	}

	return 0, emuerr.ErrTooManyFiles.WithMessage("not enough free clusters for file")
}

// BuildTable allocates a zero-filled FAT16 cluster table sized for
// totalClusters entries.
func BuildTable(totalClusters uint) []uint16 {
	return make([]uint16, totalClusters)
}

// WriteChain writes a contiguous cluster chain of `count` clusters starting
// at `start` into table, terminating with EndOfChain.
func WriteChain(table []uint16, start uint16, count uint16) {
	for i := uint16(0); i < count-1; i++ {
		table[start+i] = start + i + 1
	}
	table[start+count-1] = EndOfChain
}

// TableBytes serializes a cluster table to its little-endian on-disk form.
func TableBytes(table []uint16) []byte {
	buf := make([]byte, len(table)*2)
	for i, entry := range table {
		binary.LittleEndian.PutUint16(buf[i*2:], entry)
	}
	return buf
}
