package fat16

import (
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/weber21w/uzem-spiram/cardgeom"
)

// noMBRSentinel marks that the read cursor has left the MBR overlay and
// subsequent reads should flow through the partition-relative resolver.
const noMBRSentinel = 0xFFFFFFFF

// Layout holds the once-computed byte positions that divide the partition
// into its boot sector, FAT, root directory and data regions; see
// ComputeLayout for why PosFatSector is biased by one extra sector.
type Layout struct {
	PosBootSector uint32
	PosFatSector  uint32
	PosRootDir    uint32
	PosDataSector uint32
	ClusterSize   uint32
}

// ComputeLayout derives the region boundaries from a card geometry. The
// boot-sector region resolves bytes at position-bytesPerSector rather than
// position directly: PosFatSector is one sector further out than
// reserved_sectors alone would place it, leaving the first sector of the
// partition view as an implicit placeholder. This is load-bearing, not a
// bug to fix: the MBR overlay always answers reads below its own length
// before this resolver ever sees them, so the two compose into a valid
// block device from LBA 0 with sectorOffset=1.
func ComputeLayout(geom cardgeom.Geometry) Layout {
	bps := uint32(geom.BytesPerSector)
	posFat := bps + uint32(geom.ReservedSectorCount)*bps
	posRoot := posFat + uint32(geom.TableCount)*uint32(geom.SectorsPerFAT)*bps
	rootDirBytes := (uint32(geom.RootEntryCount) * DirentSize / bps) * bps
	return Layout{
		PosBootSector: 0,
		PosFatSector:  posFat,
		PosRootDir:    posRoot,
		PosDataSector: posRoot + rootDirBytes,
		ClusterSize:   geom.ClusterSize(),
	}
}

// DataProvider resolves a byte offset within the data region (i.e. relative
// to PosDataSector) to its content. Implemented by package hostfile.
type DataProvider interface {
	ReadByteAt(dataOffset uint32) byte
}

// byteRegion is a fixed-size synthesized section of the image, addressed
// through an io.ReadSeeker rather than by indexing the slice directly.
type byteRegion struct {
	stream io.ReadSeeker
	length uint32
}

func newByteRegion(buf []byte) byteRegion {
	return byteRegion{stream: bytesextra.NewReadWriteSeeker(buf), length: uint32(len(buf))}
}

func (r byteRegion) readAt(offset uint32) (byte, bool) {
	if r.length == 0 || offset >= r.length {
		return 0, false
	}
	if _, err := r.stream.Seek(int64(offset), io.SeekStart); err != nil {
		return 0, false
	}
	var b [1]byte
	if n, err := r.stream.Read(b[:]); n != 1 || err != nil {
		return 0, false
	}
	return b[0], true
}

// Image is the synthesized FAT16 volume plus its outer MBR overlay: the
// whole thing a CMD17/CMD18 read pulls bytes from. It owns no file handles
// of its own; byte-region resolution past PosDataSector is delegated to a
// DataProvider.
type Image struct {
	geom   cardgeom.Geometry
	layout Layout

	bootSector byteRegion
	fat        byteRegion
	toc        byteRegion
	mbr        byteRegion

	dataProvider DataProvider

	partitionPos    uint32
	emulatedReadPos uint32
}

// NewImage assembles an Image from its already-serialized regions. geom must
// be the same geometry bootSectorBytes/fatBytes/tocBytes were built from.
func NewImage(
	geom cardgeom.Geometry,
	bootSectorBytes, fatBytes, tocBytes, mbrBytes []byte,
	dataProvider DataProvider,
) *Image {
	return &Image{
		geom:            geom,
		layout:          ComputeLayout(geom),
		bootSector:      newByteRegion(bootSectorBytes),
		fat:             newByteRegion(fatBytes),
		toc:             newByteRegion(tocBytes),
		mbr:             newByteRegion(mbrBytes),
		dataProvider:    dataProvider,
		emulatedReadPos: noMBRSentinel,
	}
}

// Layout exposes the computed region boundaries, mainly for tests.
func (img *Image) Layout() Layout {
	return img.layout
}

// Seek positions the read cursor at an absolute device byte offset: 0 is the
// first byte of the MBR sector, and offsets at or beyond the MBR's length
// flow through to the partition-relative resolver.
func (img *Image) Seek(pos uint32) {
	if pos < img.mbr.length {
		img.emulatedReadPos = pos
		return
	}
	img.emulatedReadPos = noMBRSentinel
	img.partitionPos = pos
}

// ReadByte returns the byte at the current cursor and advances it by one.
func (img *Image) ReadByte() byte {
	if img.emulatedReadPos != noMBRSentinel {
		b, ok := img.mbr.readAt(img.emulatedReadPos)
		img.emulatedReadPos++
		if !ok {
			return 0
		}
		return b
	}

	b := img.resolveByte(img.partitionPos)
	img.partitionPos++
	return b
}

// resolveByte maps a partition-relative cursor position to a byte from
// whichever region it falls in: boot sector, FAT, root directory, or data.
func (img *Image) resolveByte(p uint32) byte {
	switch {
	case p < img.layout.PosFatSector:
		offset := int64(p) - int64(img.geom.BytesPerSector)
		if offset < 0 {
			return 0
		}
		b, ok := img.bootSector.readAt(uint32(offset))
		if !ok {
			return 0
		}
		return b

	case p < img.layout.PosRootDir:
		b, ok := img.fat.readAt(p - img.layout.PosFatSector)
		if !ok {
			return 0
		}
		return b

	case p < img.layout.PosDataSector:
		b, ok := img.toc.readAt(p - img.layout.PosRootDir)
		if !ok {
			return 0
		}
		return b

	default:
		if img.dataProvider == nil {
			return 0
		}
		return img.dataProvider.ReadByteAt(p - img.layout.PosDataSector)
	}
}
