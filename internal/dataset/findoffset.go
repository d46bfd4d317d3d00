package dataset

import "github.com/tniessen/btoep/internal/fsx"

// StopAt selects the predicate FindOffset searches for.
type StopAt int

const (
	StopAtData StopAt = iota
	StopAtNoData
)

// FindOffset returns the smallest offset >= startAt satisfying stopAt's
// predicate. ok is false only for [StopAtData] when no range at or after
// startAt exists — the "no-result" outcome, which is not an error.
func FindOffset(filesystem fsx.FS, paths Paths, startAt uint64, stopAt StopAt) (offset uint64, ok bool, err error) {
	h, err := Open(filesystem, paths, ModeReadOnly)
	if err != nil {
		return 0, false, err
	}

	defer func() { _ = h.Close() }()

	if stopAt == StopAtNoData {
		return h.index.FindNextMissing(startAt), true, nil
	}

	offset, ok = h.index.FindNextData(startAt)

	return offset, ok, nil
}
