// Package hostdir enumerates a host directory and assembles a fat16.Image
// from it: a table of contents, a FAT cluster chain per file, a path table
// mapping TOC entries back to host files, and the boot sector/MBR framing
// around them.
package hostdir

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/weber21w/uzem-spiram/cardgeom"
	"github.com/weber21w/uzem-spiram/emuerr"
	"github.com/weber21w/uzem-spiram/fat16"
	"github.com/weber21w/uzem-spiram/hostfile"
)

// mbrSectorOffset is the LBA the single FAT16 partition starts at, and so
// also the length, in sectors, of the synthesized MBR region.
const mbrSectorOffset = 1

// result bundles the synthesized root directory, FAT table, and the
// bookkeeping the host-file byte provider needs. All three slices are
// index-aligned: index 0 is the synthetic volume label, with a zero
// FileRecord and an empty path.
type result struct {
	tocBytes []byte
	fatBytes []byte
	records  []fat16.FileRecord
	paths    []string
	names    []string
}

// Entry describes one file placed into the synthesized volume, for
// inspection tooling (see package diag and cmd/sdimage-inspect).
type Entry struct {
	Name      string
	Size      uint32
	ClusterNo uint16
	Path      string
}

// dirReader is satisfied by readRealDirectory; narrowed to a function type so
// tests can substitute a synthetic directory listing without touching a
// real filesystem.
type dirReader func(path string) ([]DirEntry, error)

// DirEntry is the subset of os.DirEntry/os.FileInfo this package needs.
type DirEntry struct {
	Name      string
	Size      int64
	IsRegular bool
}

// Scan builds a fat16.Image from a host directory using the real
// filesystem. The zero Geometry selects the default (2 GiB) preset. See
// ScanWith for the overridable-reader version used in tests.
func Scan(dirPath string, geom cardgeom.Geometry) (*fat16.Image, error) {
	return ScanWith(dirPath, geom, readRealDirectory)
}

// ScanWith builds a fat16.Image from whatever dirPath + list produce,
// allowing tests to inject a synthetic listing. The host-file byte provider
// still opens real files by path, so list entries used outside of tests
// should name real files under dirPath.
func ScanWith(dirPath string, geom cardgeom.Geometry, list dirReader) (*fat16.Image, error) {
	if geom == (cardgeom.Geometry{}) {
		geom = cardgeom.Default()
	}

	res, err := scanDirectory(dirPath, geom, list)
	if res == nil {
		return nil, err
	}

	bootSector := fat16.NewBootSector(geom).Bytes()
	mbr := fat16.BuildMBR(fat16.NewPartitionEntry(geom), mbrSectorOffset)
	provider := hostfile.NewProvider(res.records, res.paths, geom.ClusterSize())

	img := fat16.NewImage(geom, bootSector, res.fatBytes, res.tocBytes, mbr, provider)
	return img, err
}

// List builds the inspection-friendly file listing for a host directory
// using the real filesystem, without assembling a full Image. See ListWith
// for the overridable-reader version used in tests.
func List(dirPath string, geom cardgeom.Geometry) ([]Entry, error) {
	return ListWith(dirPath, geom, readRealDirectory)
}

// ListWith is the overridable-reader version of List.
func ListWith(dirPath string, geom cardgeom.Geometry, list dirReader) ([]Entry, error) {
	if geom == (cardgeom.Geometry{}) {
		geom = cardgeom.Default()
	}

	res, err := scanDirectory(dirPath, geom, list)
	if res == nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(res.records)-1)
	for i := 1; i < len(res.records); i++ {
		entries = append(entries, Entry{
			Name:      res.names[i],
			Size:      res.records[i].FileSize,
			ClusterNo: res.records[i].ClusterNo,
			Path:      res.paths[i],
		})
	}
	return entries, err
}

// scanDirectory does the actual directory walk and cluster allocation,
// returning the raw materials ScanWith assembles into an Image.
func scanDirectory(dirPath string, geom cardgeom.Geometry, list dirReader) (*result, error) {
	entries, err := list(dirPath)
	if entries == nil && err != nil {
		return nil, emuerr.ErrDirectoryNotFound.Wrap(err)
	}
	// An error that comes with a listing reports per-entry failures (e.g. a
	// stat error); those entries are missing from the listing, and the
	// error is carried into the returned aggregate.
	var scanErrs *multierror.Error
	if err != nil {
		scanErrs = multierror.Append(scanErrs, err)
	}

	clusterSize := geom.ClusterSize()
	fatTableLen := uint(geom.SectorsPerFAT) * uint(geom.BytesPerSector) / 2
	table := fat16.BuildTable(fatTableLen)
	allocator := fat16.NewAllocator(fatTableLen)

	dirents := make([]fat16.RawDirent, 1, fat16.MaxFiles)
	dirents[0] = fat16.NewVolumeLabelDirent()
	records := make([]fat16.FileRecord, 1, fat16.MaxFiles)
	paths := make([]string, 1, fat16.MaxFiles)
	names := make([]string, 1, fat16.MaxFiles)

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name, ".") {
			continue
		}
		if !entry.IsRegular {
			continue
		}
		if len(dirents) == fat16.MaxFiles {
			scanErrs = multierror.Append(scanErrs, emuerr.ErrTooManyFiles.WithMessage(
				"host directory has more files than fit in the table of contents"))
			break
		}

		record := fat16.FileRecord{FileSize: uint32(entry.Size)}
		clusterCount := record.ClusterCount(clusterSize)

		start, err := allocator.AllocateRun(clusterCount)
		if err != nil {
			scanErrs = multierror.Append(scanErrs, err)
			continue
		}
		fat16.WriteChain(table, start, clusterCount)
		record.ClusterNo = start

		dirents = append(dirents, fat16.NewFileDirent(entry.Name, start, record.FileSize))
		records = append(records, record)
		paths = append(paths, filepath.Join(dirPath, entry.Name))
		names = append(names, entry.Name)
	}

	tocBytes := make([]byte, 0, fat16.MaxFiles*fat16.DirentSize)
	for _, d := range dirents {
		tocBytes = append(tocBytes, d.Bytes()...)
	}
	tocBytes = append(tocBytes, make([]byte, (fat16.MaxFiles-len(dirents))*fat16.DirentSize)...)

	return &result{
		tocBytes: tocBytes,
		fatBytes: fat16.TableBytes(table),
		records:  records,
		paths:    paths,
		names:    names,
	}, scanErrs.ErrorOrNil()
}
