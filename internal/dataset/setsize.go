package dataset

import (
	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/rangeset"
)

// SetSize sets the data file's length to exactly size. Shrinking below the
// extent of any indexed range is destructive: without force it fails with
// SizeTooSmall; with force, every range entirely above size is dropped and
// a range straddling size is clipped to end at size.
func SetSize(filesystem fsx.FS, paths Paths, size uint64, force bool) (err error) {
	h, err := Open(filesystem, paths, ModeReadWrite)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := h.Close(); err == nil {
			err = closeErr
		}
	}()

	current, err := h.Size()
	if err != nil {
		return err
	}

	if size < current {
		destructive := false

		for _, r := range h.index.Iter(0) {
			if r.End > size {
				destructive = true

				break
			}
		}

		if destructive {
			if !force {
				return btoeperr.New(btoeperr.KindSizeTooSmall, "")
			}

			h.index = shrinkIndex(h.index, size)
			h.dirty = true
		}
	}

	if err := h.data.Truncate(int64(size)); err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, paths.Data, err)
	}

	return nil
}

func shrinkIndex(index *rangeset.Set, size uint64) *rangeset.Set {
	out := rangeset.New()

	for _, r := range index.Iter(0) {
		if r.Start >= size {
			continue
		}

		end := r.End
		if end > size {
			end = size
		}

		out.Insert(r.Start, end)
	}

	return out
}
