// Package indexfile encodes and decodes [rangeset.Set] to and from the
// on-disk index byte format: a sequence of varint pairs (gap, len).
//
// Range 0 is stored as (start, len). Every later range i is stored as
// (gap, len) where gap is one less than the true distance from the
// previous range's end — storing gap-1 lets a minimally-fragmented index
// (every range followed by exactly a 1-byte gap) encode gap as 0x00. len is
// likewise stored as one less than the range's true length, since every
// range is at least one byte long, so a 1-byte range encodes len as 0x00.
package indexfile

import (
	"errors"
	"fmt"

	"github.com/tniessen/btoep/internal/rangeset"
	"github.com/tniessen/btoep/internal/varint"
)

// ErrMalformed indicates the index byte stream is truncated, overflows a
// range's bounds, or implies a range that does not strictly follow its
// predecessor.
var ErrMalformed = errors.New("indexfile: malformed index")

// Encode serializes s to its compact on-disk form. An empty set encodes to
// a zero-length byte slice.
func Encode(s *rangeset.Set) []byte {
	return EncodeFiltered(s, 0)
}

// EncodeFiltered serializes only the ranges of s with length >= minLength,
// recomputing gaps between surviving ranges so the output remains a valid
// (ordered, non-touching) index. Filtering never re-merges neighbors: two
// long ranges that used to be separated by a dropped short range remain two
// ranges, now with a larger recorded gap between them.
func EncodeFiltered(s *rangeset.Set, minLength uint64) []byte {
	ranges := s.Iter(minLength)

	var buf []byte

	var prevEnd uint64

	for i, r := range ranges {
		if i == 0 {
			buf = varint.Append(buf, r.Start)
		} else {
			buf = varint.Append(buf, (r.Start-prevEnd)-1)
		}

		buf = varint.Append(buf, r.Len()-1)
		prevEnd = r.End
	}

	return buf
}

// Decode parses the on-disk index byte format into a [rangeset.Set].
// An empty byte slice decodes to an empty set.
func Decode(p []byte) (*rangeset.Set, error) {
	s := rangeset.New()

	var (
		prevEnd uint64
		first   = true
	)

	for len(p) > 0 {
		gap, n, err := varint.Decode(p)
		if err != nil {
			return nil, fmt.Errorf("%w: reading gap: %v", ErrMalformed, err)
		}

		p = p[n:]

		length, n, err := varint.Decode(p)
		if err != nil {
			return nil, fmt.Errorf("%w: reading length: %v", ErrMalformed, err)
		}

		p = p[n:]

		var start uint64
		if first {
			start = gap
		} else {
			// gap stores (true gap - 1); true gap must be >= 1 since ranges
			// may never touch, so start is always strictly past prevEnd.
			start = prevEnd + 1 + gap
			if start <= prevEnd {
				return nil, fmt.Errorf("%w: range does not strictly follow predecessor", ErrMalformed)
			}
		}

		// Stored length is (true length - 1); true length is always >= 1.
		end := start + length + 1
		if end <= start {
			return nil, fmt.Errorf("%w: range length overflows", ErrMalformed)
		}

		s.Insert(start, end)

		prevEnd = end
		first = false
	}

	return s, nil
}
