package dataset

import (
	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/indexfile"
)

// GetIndex returns the raw serialized index, restricted to ranges of length
// >= minRangeLength. Filtering drops short ranges without re-merging their
// neighbors; gaps in the output are recomputed accordingly.
func GetIndex(filesystem fsx.FS, paths Paths, minRangeLength uint64) ([]byte, error) {
	h, err := Open(filesystem, paths, ModeReadOnly)
	if err != nil {
		return nil, err
	}

	defer func() { _ = h.Close() }()

	return indexfile.EncodeFiltered(h.index, minRangeLength), nil
}
