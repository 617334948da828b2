package hostdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// readRealDirectory lists dirPath with the real filesystem; each entry's
// size comes from a stat call. A stat failure on one entry (vanished
// between ReadDir and stat, permission denied, ...) doesn't abort the scan;
// it's aggregated into the returned multierror and the entry is omitted.
func readRealDirectory(dirPath string) ([]DirEntry, error) {
	rawEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var statErrs *multierror.Error
	entries := make([]DirEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		info, err := os.Stat(filepath.Join(dirPath, raw.Name()))
		if err != nil {
			statErrs = multierror.Append(statErrs, fmt.Errorf("stat %s: %w", raw.Name(), err))
			continue
		}
		entries = append(entries, DirEntry{
			Name:      raw.Name(),
			Size:      info.Size(),
			IsRegular: info.Mode().IsRegular(),
		})
	}
	return entries, statErrs.ErrorOrNil()
}
