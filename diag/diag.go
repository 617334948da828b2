// Package diag renders emulator-internal state for humans: a 16-byte-row
// hex+ASCII block dump and a CSV dump of the synthesized table of contents.
package diag

import (
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/weber21w/uzem-spiram/hostdir"
)

// tocRow is the gocsv-tagged shape of one hostdir.Entry, for MarshalString.
type tocRow struct {
	Name      string `csv:"name"`
	Size      uint32 `csv:"size"`
	ClusterNo uint16 `csv:"cluster_no"`
	Path      string `csv:"path"`
}

// TOCCSV renders a file listing as CSV, one row per entry, for the
// inspection CLI's "toc" subcommand.
func TOCCSV(entries []hostdir.Entry) (string, error) {
	rows := make([]tocRow, len(entries))
	for i, e := range entries {
		rows[i] = tocRow{Name: e.Name, Size: e.Size, ClusterNo: e.ClusterNo, Path: e.Path}
	}
	return gocsv.MarshalString(&rows)
}

// HexDump renders block as 16-byte rows of hex followed by an ASCII
// rendering of the same bytes; non-printable bytes render as '.'.
func HexDump(block []byte) string {
	var b strings.Builder
	for offset := 0; offset < len(block); offset += 16 {
		end := offset + 16
		if end > len(block) {
			end = len(block)
		}
		row := block[offset:end]

		fmt.Fprintf(&b, "%04X: ", offset)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02X ", row[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("| ")
		for _, c := range row {
			b.WriteByte(ascii(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ascii maps a byte to its printable ASCII representation, or '.' for
// anything outside the printable range.
func ascii(c byte) byte {
	if c >= 32 && c < 127 {
		return c
	}
	return '.'
}
