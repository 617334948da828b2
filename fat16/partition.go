package fat16

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"
	"github.com/weber21w/uzem-spiram/cardgeom"
)

// partitionEntryOffset and partitionSignatureOffset are the fixed MBR byte
// positions of the single partition entry and the 0x55 0xAA signature.
const (
	partitionEntryOffset     = 0x1BE
	partitionSignatureOffset = 0x1FE
)

// FAT16PartitionType is the MBR partition type byte for a FAT16 volume with
// LBA addressing ("06" in fdisk's table).
const FAT16PartitionType = 0x06

// PartitionEntry is the 16-byte on-disk MBR partition table entry.
type PartitionEntry struct {
	BootFlag    uint8
	CHSStart    [3]byte
	Type        uint8
	CHSEnd      [3]byte
	LBAStart    uint32
	SectorCount uint32
}

// NewPartitionEntry builds the single, non-bootable FAT16 partition entry
// used by every SD image: it starts at LBA 1 (immediately after the MBR
// sector) and spans the whole card.
func NewPartitionEntry(geom cardgeom.Geometry) PartitionEntry {
	return PartitionEntry{
		BootFlag:    0x00,
		Type:        FAT16PartitionType,
		LBAStart:    1,
		SectorCount: geom.TotalSectors32,
	}
}

// BuildMBR renders the Master Boot Record buffer: sectorOffset*512 bytes of
// zero, with entry packed in at 0x1BE and the boot signature at 0x1FE/0x1FF.
// sectorOffset is the partition's LBA start (normally 1), which is also the
// length, in sectors, of the synthesized MBR region.
func BuildMBR(entry PartitionEntry, sectorOffset uint32) []byte {
	buf := make([]byte, sectorOffset*512)

	entryWriter := bytewriter.New(buf[partitionEntryOffset:])
	if err := binary.Write(entryWriter, binary.LittleEndian, &entry); err != nil {
		panic("fat16: partition entry serialization overran its buffer: " + err.Error())
	}

	buf[partitionSignatureOffset] = 0x55
	buf[partitionSignatureOffset+1] = 0xAA
	return buf
}
