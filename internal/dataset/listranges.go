package dataset

import (
	"fmt"

	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/rangeset"
)

// RangeFormat selects how ListRanges renders each range.
type RangeFormat int

const (
	FormatInclusive RangeFormat = iota
	FormatExclusive
)

// ListRanges returns one formatted line per range, lowest start first. If
// missing is true, it emits the complement of the index up to the current
// data file size instead of the index itself.
func ListRanges(filesystem fsx.FS, paths Paths, missing bool, format RangeFormat) ([]string, error) {
	h, err := Open(filesystem, paths, ModeReadOnly)
	if err != nil {
		return nil, err
	}

	defer func() { _ = h.Close() }()

	var ranges []rangeset.Range

	if missing {
		size, err := h.Size()
		if err != nil {
			return nil, err
		}

		ranges = h.index.IterComplement(size)
	} else {
		ranges = h.index.Iter(0)
	}

	lines := make([]string, len(ranges))
	for i, r := range ranges {
		lines[i] = formatRange(r, format)
	}

	return lines, nil
}

func formatRange(r rangeset.Range, format RangeFormat) string {
	if format == FormatExclusive {
		return fmt.Sprintf("%d...%d", r.Start, r.End)
	}

	return fmt.Sprintf("%d..%d", r.Start, r.End-1)
}
