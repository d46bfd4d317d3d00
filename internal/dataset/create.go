package dataset

import (
	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/fsx"
)

// Create makes a new dataset at paths: an empty index file and a data file
// of exactly size bytes (sparse zeros). Both files must not already exist.
func Create(filesystem fsx.FS, paths Paths, size uint64) error {
	h, err := Open(filesystem, paths, ModeCreate)
	if err != nil {
		return err
	}

	if size > 0 {
		if err := h.data.Truncate(int64(size)); err != nil {
			_ = h.Close()

			return btoeperr.Wrap(btoeperr.KindIO, paths.Data, err)
		}
	}

	return h.Close()
}
