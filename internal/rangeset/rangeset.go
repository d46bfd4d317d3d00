// Package rangeset implements the in-memory range index: an ordered,
// disjoint, non-touching set of [start, end) byte-offset intervals.
//
// The core invariant — sorted by start, and no two ranges touch or overlap
// (a gap of zero between consecutive ranges is itself illegal; touching
// ranges are always merged) — is established by [Set.Insert] and never
// broken by any other method.
package rangeset

import "sort"

// Range is a half-open interval [Start, End) of byte offsets.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns End - Start.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// Set is an ordered, disjoint, non-touching collection of [Range]s.
// The zero value is an empty set ready to use.
type Set struct {
	ranges []Range
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Len returns the number of ranges currently in the set.
func (s *Set) Len() int {
	return len(s.ranges)
}

// Clone returns a deep copy whose ranges can be mutated independently.
func (s *Set) Clone() *Set {
	cp := &Set{ranges: make([]Range, len(s.ranges))}
	copy(cp.ranges, s.ranges)

	return cp
}

// Insert adds [start, end) to the set, coalescing with any range it
// touches or overlaps, and returns the final merged extent.
//
// Panics if start >= end: the caller is responsible for never constructing
// a degenerate range, since nothing downstream (the index codec least of
// all) can represent one.
func (s *Set) Insert(start, end uint64) Range {
	if start >= end {
		panic("rangeset: start must be < end")
	}

	ranges := s.ranges

	// successorIdx is the first range whose Start is >= start.
	successorIdx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].Start >= start
	})

	lo := successorIdx

	// The predecessor (the range just before successorIdx) touches or
	// overlaps the new range iff its End reaches at least start.
	if lo > 0 && ranges[lo-1].End >= start {
		lo--
		if ranges[lo].Start < start {
			start = ranges[lo].Start
		}

		if ranges[lo].End > end {
			end = ranges[lo].End
		}
	}

	hi := successorIdx
	for hi < len(ranges) && ranges[hi].Start <= end {
		if ranges[hi].End > end {
			end = ranges[hi].End
		}

		hi++
	}

	merged := Range{Start: start, End: end}

	s.ranges = append(ranges[:lo], append([]Range{merged}, ranges[hi:]...)...)

	return merged
}

// Query returns the range containing offset, if any.
func (s *Set) Query(offset uint64) (Range, bool) {
	ranges := s.ranges

	idx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > offset
	})

	if idx < len(ranges) && ranges[idx].Start <= offset {
		return ranges[idx], true
	}

	return Range{}, false
}

// FindNextData returns the smallest o >= offset that lies within some
// range, or false if no such range exists.
func (s *Set) FindNextData(offset uint64) (uint64, bool) {
	ranges := s.ranges

	idx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > offset
	})

	if idx >= len(ranges) {
		return 0, false
	}

	if ranges[idx].Start > offset {
		return ranges[idx].Start, true
	}

	return offset, true
}

// FindNextMissing returns the smallest o >= offset that lies outside every
// range. Always defined, since the universe is unbounded above.
func (s *Set) FindNextMissing(offset uint64) uint64 {
	ranges := s.ranges

	idx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > offset
	})

	for idx < len(ranges) && ranges[idx].Start <= offset {
		offset = ranges[idx].End
		idx++
	}

	return offset
}

// Iter returns the ranges with End-Start >= minLength, in order.
//
// Filtering does not re-merge: two long ranges separated by a filtered-out
// short one remain two separate ranges in the result.
func (s *Set) Iter(minLength uint64) []Range {
	out := make([]Range, 0, len(s.ranges))

	for _, r := range s.ranges {
		if r.Len() >= minLength {
			out = append(out, r)
		}
	}

	return out
}

// Overlapping returns the ranges intersecting [start, end), clipped to that
// interval, in order. Used by the add operation to find the subregions of
// an incoming write that land inside existing data.
func (s *Set) Overlapping(start, end uint64) []Range {
	ranges := s.ranges

	idx := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End > start
	})

	var out []Range

	for ; idx < len(ranges) && ranges[idx].Start < end; idx++ {
		r := ranges[idx]
		if r.Start < start {
			r.Start = start
		}

		if r.End > end {
			r.End = end
		}

		out = append(out, r)
	}

	return out
}

// IterComplement returns the maximal missing ranges within [0, upperBound),
// i.e. the set-theoretic complement of the index clipped to upperBound.
func (s *Set) IterComplement(upperBound uint64) []Range {
	var out []Range

	cursor := uint64(0)

	for _, r := range s.ranges {
		if r.Start >= upperBound {
			break
		}

		if cursor < r.Start {
			out = append(out, Range{Start: cursor, End: r.Start})
		}

		if r.End > cursor {
			cursor = r.End
		}
	}

	if cursor < upperBound {
		out = append(out, Range{Start: cursor, End: upperBound})
	}

	return out
}
