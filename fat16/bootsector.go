package fat16

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"
	"github.com/weber21w/uzem-spiram/cardgeom"
)

// BootSectorSize is the fixed size of a FAT16 boot sector / BIOS Parameter
// Block, in bytes.
const BootSectorSize = 512

// bootJump is the 3-byte x86 jump instruction every FAT boot sector opens
// with, regardless of card geometry.
var bootJump = [3]byte{0xEB, 0x3C, 0x90}

// oemName identifies the tool that wrote the volume: "uzemSDe" padded to
// eight bytes with a trailing NUL.
var oemName = [8]byte{'u', 'z', 'e', 'm', 'S', 'D', 'e', 0x00}

var volumeLabel = [11]byte{'U', 'Z', 'E', 'B', 'O', 'X', ' ', ' ', ' ', ' ', ' '}

var filesystemType = [8]byte{'F', 'A', 'T', '1', '6', ' ', ' ', ' '}

// RawBootSector is the on-disk layout of the boot sector / BPB, packed
// little-endian with no inter-field padding. DriveNumber is two bytes wide
// here, not the one byte FAT16 documentation describes; firmware reads the
// sector with these offsets, so the width stays.
type RawBootSector struct {
	BootJump            [3]byte
	OEMName             [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumFATs             uint8
	RootEntryCount      uint16
	TotalSectors16      uint16
	MediaType           uint8
	SectorsPerFAT       uint16
	SectorsPerTrack     uint16
	HeadSideCount       uint16
	HiddenSectorCount   uint32
	TotalSectors32      uint32
	DriveNumber         uint16
	ExtendedFieldsFlag  uint8
	SerialNumber        uint32
	VolumeLabel         [11]byte
	FilesystemType      [8]byte
	BootCode            [448]byte
	Signature           [2]byte
}

// NewBootSector builds the boot sector for a given card geometry. Every
// capacity-dependent field comes from geom; everything else (jump
// instruction, OEM name, volume label, filesystem type, signature) is fixed.
func NewBootSector(geom cardgeom.Geometry) RawBootSector {
	return RawBootSector{
		BootJump:            bootJump,
		OEMName:             oemName,
		BytesPerSector:      geom.BytesPerSector,
		SectorsPerCluster:   geom.SectorsPerCluster,
		ReservedSectorCount: geom.ReservedSectorCount,
		NumFATs:             geom.TableCount,
		RootEntryCount:      geom.RootEntryCount,
		TotalSectors16:      0,
		MediaType:           geom.MediaType,
		SectorsPerFAT:       geom.SectorsPerFAT,
		SectorsPerTrack:     geom.SectorsPerTrack,
		HeadSideCount:       geom.HeadSideCount,
		HiddenSectorCount:   0,
		TotalSectors32:      geom.TotalSectors32,
		DriveNumber:         uint16(geom.DriveNo),
		ExtendedFieldsFlag:  0x29,
		SerialNumber:        geom.SerialNumber,
		VolumeLabel:         volumeLabel,
		FilesystemType:      filesystemType,
		Signature:           [2]byte{0x55, 0xAA},
	}
}

// Bytes serializes the boot sector into its 512-byte on-disk form.
func (bs RawBootSector) Bytes() []byte {
	buf := make([]byte, BootSectorSize)
	writer := bytewriter.New(buf)
	if err := binary.Write(writer, binary.LittleEndian, &bs); err != nil {
		// The buffer is exactly BootSectorSize bytes and RawBootSector has no
		// variable-length fields, so a short write here means the struct
		// definition and BootSectorSize have drifted apart.
		panic("fat16: boot sector serialization overran its buffer: " + err.Error())
	}
	return buf
}
