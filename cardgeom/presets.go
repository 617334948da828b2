// Package cardgeom supplies named SD-card capacity presets for the FAT16
// image synthesiser. Uzebox firmware shipped against a range of card sizes,
// so the boot-sector fields that vary by capacity are parameterized here
// rather than hardcoded to one layout.
package cardgeom

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/weber21w/uzem-spiram/emuerr"
)

//go:embed presets.csv
var rawPresetsCSV string

// Geometry holds the capacity-dependent BIOS Parameter Block fields. All
// other boot-sector fields (jump instruction, OEM name, volume label,
// filesystem type, signature) are fixed regardless of geometry.
type Geometry struct {
	Slug                string `csv:"slug"`
	Name                string `csv:"name"`
	BytesPerSector      uint16 `csv:"bytes_per_sector"`
	SectorsPerCluster   uint8  `csv:"sectors_per_cluster"`
	ReservedSectorCount uint16 `csv:"reserved_sector_count"`
	TableCount          uint8  `csv:"table_count"`
	RootEntryCount      uint16 `csv:"root_entry_count"`
	MediaType           uint8  `csv:"media_type"`
	SectorsPerFAT       uint16 `csv:"sectors_per_fat"`
	SectorsPerTrack     uint16 `csv:"sectors_per_track"`
	HeadSideCount       uint16 `csv:"head_side_count"`
	TotalSectors32      uint32 `csv:"total_sectors_32"`
	DriveNo             uint8  `csv:"drive_no"`
	SerialNumber        uint32 `csv:"serial_number"`
}

// ClusterSize returns the number of bytes per cluster for this geometry.
func (g Geometry) ClusterSize() uint32 {
	return uint32(g.BytesPerSector) * uint32(g.SectorsPerCluster)
}

// DefaultSlug names the 2 GiB preset, the layout Uzebox firmware is most
// commonly tested against.
const DefaultSlug = "2gb"

var presets map[string]Geometry

func init() {
	presets = make(map[string]Geometry)
	reader := strings.NewReader(rawPresetsCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Geometry) error {
		if _, exists := presets[row.Slug]; exists {
			return fmt.Errorf("duplicate card geometry preset %q", row.Slug)
		}
		presets[row.Slug] = row
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}

// Get returns the preset registered under slug. If slug is empty, the
// default (2 GiB) preset is returned.
func Get(slug string) (Geometry, error) {
	if slug == "" {
		slug = DefaultSlug
	}
	geom, ok := presets[slug]
	if !ok {
		return Geometry{}, emuerr.ErrUnknownGeometry.WithMessage(
			fmt.Sprintf("no card geometry preset named %q", slug))
	}
	return geom, nil
}

// Default returns the 2 GiB preset.
func Default() Geometry {
	geom, err := Get(DefaultSlug)
	if err != nil {
		panic("default card geometry preset missing: " + err.Error())
	}
	return geom
}

// Slugs returns the names of all registered presets, for use in CLI help
// text.
func Slugs() []string {
	slugs := make([]string, 0, len(presets))
	for slug := range presets {
		slugs = append(slugs, slug)
	}
	return slugs
}
