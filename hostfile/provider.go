// Package hostfile resolves a byte offset in the FAT16 data region to a byte
// from whichever host file was mapped onto that cluster range, opening host
// files on demand and caching at most one open handle at a time.
package hostfile

import (
	"io"
	"log"
	"os"

	"github.com/weber21w/uzem-spiram/emuerr"
	"github.com/weber21w/uzem-spiram/fat16"
)

// noMatch marks that the cache holds no valid file.
const noMatch = -1

// Provider implements fat16.DataProvider over a TOC of file records backed
// by real host files. It is not safe for concurrent use - like the rest of
// this emulator, it's driven by one cooperative byte-exchange loop.
type Provider struct {
	records     []fat16.FileRecord
	paths       []string
	clusterSize uint32

	cachedIndex int
	cacheStart  uint32
	cacheEnd    uint32
	file        *os.File
	lastOffset  int64
	debug       bool
}

// NewProvider builds a data provider from parallel TOC/path slices: paths[i]
// is the host file backing records[i], or "" for entries with no backing
// file (the synthetic volume label).
func NewProvider(records []fat16.FileRecord, paths []string, clusterSize uint32) *Provider {
	return &Provider{
		records:     records,
		paths:       paths,
		clusterSize: clusterSize,
		cachedIndex: noMatch,
		lastOffset:  -1,
	}
}

// SetDebug toggles diagnostic logging of open, seek and read failures.
func (p *Provider) SetDebug(enabled bool) {
	p.debug = enabled
}

// Close releases the cached file handle, if any.
func (p *Provider) Close() {
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.cachedIndex = noMatch
}

// ReadByteAt returns the byte at dataOffset (relative to the start of the
// data region) and never fails: a vanished or unmatched file yields zero
// bytes, per the "blank but well-formed block" error policy.
func (p *Provider) ReadByteAt(dataOffset uint32) byte {
	if p.cachedIndex == noMatch || dataOffset < p.cacheStart || dataOffset > p.cacheEnd {
		p.findFile(dataOffset)
	}

	if p.cachedIndex == noMatch || p.file == nil {
		return 0
	}

	record := p.records[p.cachedIndex]
	fileRelativeOffset := int64(dataOffset) - int64(p.cacheStart)

	if int64(dataOffset) != p.lastOffset+1 {
		if _, err := p.file.Seek(fileRelativeOffset, io.SeekStart); err != nil {
			if p.debug {
				log.Printf("hostfile: seek failed on %s: %v", p.paths[p.cachedIndex], err)
			}
			return 0
		}
	}

	p.lastOffset = int64(dataOffset)
	if dataOffset >= p.cacheStart+record.FileSize {
		// Past EOF, inside the trailing cluster padding.
		return 0
	}

	var buf [1]byte
	if _, err := p.file.Read(buf[:]); err != nil {
		if p.debug {
			log.Printf("hostfile: read failed on %s: %v", p.paths[p.cachedIndex], err)
		}
		return 0
	}
	return buf[0]
}

// findFile scans the TOC for the record whose cluster range contains the
// cluster backing dataOffset, opening its host file and priming the cache.
func (p *Provider) findFile(dataOffset uint32) {
	cluster := dataOffset/p.clusterSize + 2

	p.Close()

	for i, record := range p.records {
		if record.ClusterNo == 0 {
			continue
		}
		// The match bound is filesize/clusterSize rounded down, inclusive:
		// a file whose size is an exact cluster multiple also claims the
		// cluster one past its own range, shadowing the first cluster of
		// the next file. Firmware-visible behaviour, kept as-is.
		if cluster < uint32(record.ClusterNo) || cluster > uint32(record.ClusterNo)+record.FileSize/p.clusterSize {
			continue
		}

		span := record.ClusterCount(p.clusterSize)
		start := (uint32(record.ClusterNo) - 2) * p.clusterSize
		end := start + uint32(span)*p.clusterSize - 1

		file, err := os.Open(p.paths[i])
		if err != nil {
			if p.debug {
				log.Printf("hostfile: %s: %v", p.paths[i], emuerr.ErrFileVanished.Wrap(err))
			}
			return
		}

		p.cachedIndex = i
		p.cacheStart = start
		p.cacheEnd = end
		p.file = file
		p.lastOffset = -1
		return
	}
}
