package fat16

import (
	"encoding/binary"
	"strings"

	"github.com/noxer/bytewriter"
)

// Directory entry attribute bits.
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
)

// MaxFiles is the maximum number of root-directory entries this emulator
// will track, including the synthetic volume label in slot 0. It can exceed
// a geometry's RootEntryCount; entries beyond what the boot sector's data
// region actually reaches are simply never read by resolveByte.
const MaxFiles = 1024

// DirentSize is the fixed size of a root-directory entry, in bytes.
const DirentSize = 32

// RawDirent is the on-disk 32-byte root-directory entry.
type RawDirent struct {
	Name               [8]byte
	Ext                [3]byte
	Attrib             uint8
	NTReserved         uint8
	CreationTimeTenths uint8
	CreationTime       uint16
	CreationDate       uint16
	AccessedDate       uint16
	Reserved           uint16
	ModifiedTime       uint16
	ModifiedDate       uint16
	ClusterNo          uint16
	FileSize           uint32
}

// Bytes serializes the directory entry into its 32-byte on-disk form.
func (d RawDirent) Bytes() []byte {
	buf := make([]byte, DirentSize)
	writer := bytewriter.New(buf)
	if err := binary.Write(writer, binary.LittleEndian, &d); err != nil {
		panic("fat16: directory entry serialization overran its buffer: " + err.Error())
	}
	return buf
}

// PackDate packs a FAT date: year (since 1980) in bits 9-15, month in bits
// 5-8, day in bits 0-4.
func PackDate(year, month, day int) uint16 {
	return uint16(year&0x7F)<<9 | uint16(month&0x0F)<<5 | uint16(day&0x1F)
}

// PackTime packs a FAT time: hour in bits 11-15, minutes in bits 5-10,
// seconds/2 in bits 0-4.
func PackTime(hour, minute, second int) uint16 {
	return uint16(hour&0x1F)<<11 | uint16(minute&0x3F)<<5 | uint16((second/2)&0x1F)
}

// NewVolumeLabelDirent builds the synthetic entry 0 of the TOC: the volume
// label "UZEBOX" with the archive and volume-id attributes, no backing
// cluster or size.
func NewVolumeLabelDirent() RawDirent {
	d := RawDirent{Attrib: AttrArchive | AttrVolumeID}
	copy(d.Name[:], "UZEBOX  ")
	copy(d.Ext[:], "   ")
	return d
}

// NewFileDirent builds a root-directory entry for a real host file.
func NewFileDirent(hostName string, cluster uint16, size uint32) RawDirent {
	name, ext := ShortFilename(hostName)
	d := RawDirent{
		Attrib:    AttrArchive,
		ClusterNo: cluster,
		FileSize:  size,
	}
	d.Name = name
	d.Ext = ext
	return d
}

// ShortFilename synthesizes an 8.3 name from a host filename: up to eight
// uppercased characters before the first '.', and up to three uppercased
// characters of the extension after it. Both fields are space-padded
// (0x20), not NUL-padded.
func ShortFilename(hostName string) (name [8]byte, ext [3]byte) {
	for i := range name {
		name[i] = ' '
	}
	for i := range ext {
		ext[i] = ' '
	}

	stem := hostName
	extension := ""
	if dot := strings.IndexByte(hostName, '.'); dot >= 0 {
		stem = hostName[:dot]
		extension = hostName[dot+1:]
	}

	for i := 0; i < len(stem) && i < len(name); i++ {
		name[i] = upperASCII(stem[i])
	}
	for i := 0; i < len(extension) && i < len(ext); i++ {
		ext[i] = upperASCII(extension[i])
	}
	return name, ext
}

func upperASCII(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// FileRecord is the minimal per-file bookkeeping shared between the FAT
// chain builder and the host-file byte provider: where in cluster space the
// file lives and how large it is. It deliberately carries no host path -
// that's the concern of the directory scanner, not the image format.
type FileRecord struct {
	ClusterNo uint16
	FileSize  uint32
}

// ClusterCount returns the number of clusters this file occupies, rounding
// up, with a minimum of one cluster for zero-byte files.
func (r FileRecord) ClusterCount(clusterSize uint32) uint16 {
	if r.FileSize == 0 {
		return 1
	}
	count := (r.FileSize + clusterSize - 1) / clusterSize
	return uint16(count)
}
