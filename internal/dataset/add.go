package dataset

import (
	"bytes"
	"io"

	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/rangeset"
)

// ConflictPolicy decides how Add reconciles incoming bytes with data
// already indexed at the same offsets.
type ConflictPolicy int

const (
	// PolicyError aborts the whole call, leaving both files untouched, the
	// moment incoming bytes disagree with existing indexed bytes.
	PolicyError ConflictPolicy = iota
	// PolicyKeep leaves existing bytes in place wherever they disagree.
	PolicyKeep
	// PolicyOverwrite writes incoming bytes even where they disagree.
	PolicyOverwrite
)

// segment is a contiguous sub-range of the incoming write, classified by
// whether it already falls inside an existing indexed range.
type segment struct {
	start, end uint64
	covered    bool
}

// Add writes the bytes read from source (until EOF) starting at offset,
// reconciling any overlap with existing indexed data per policy, then
// inserts [offset, offset+L) into the index.
//
// Under [PolicyError], the reconciliation is a read-only scan performed
// before any byte is written: on conflict, neither file is touched.
func Add(filesystem fsx.FS, paths Paths, offset uint64, source io.Reader, policy ConflictPolicy) (err error) {
	incoming, err := io.ReadAll(source)
	if err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, "source", err)
	}

	length := uint64(len(incoming))
	if length == 0 {
		return nil
	}

	h, err := Open(filesystem, paths, ModeReadWrite)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := h.Close(); err == nil {
			err = closeErr
		}
	}()

	end := offset + length

	segments := classify(h.index.Overlapping(offset, end), offset, end)

	writes, err := h.planWrites(segments, offset, incoming, policy)
	if err != nil {
		return err
	}

	for _, w := range writes {
		if err := h.writeAt(w.start, incoming[w.start-offset:w.end-offset]); err != nil {
			return err
		}
	}

	h.index.Insert(offset, end)
	h.dirty = true

	return nil
}

// classify walks the (disjoint, clipped-to-[start,end)) overlapping ranges
// and fills the gaps between them, producing a complete partition of
// [start, end) into covered and uncovered segments.
func classify(overlapping []rangeset.Range, start, end uint64) []segment {
	var out []segment

	cursor := start

	for _, r := range overlapping {
		if cursor < r.Start {
			out = append(out, segment{cursor, r.Start, false})
		}

		out = append(out, segment{r.Start, r.End, true})
		cursor = r.End
	}

	if cursor < end {
		out = append(out, segment{cursor, end, false})
	}

	return out
}

type plannedWrite struct {
	start, end uint64
}

// planWrites performs the read-only conflict scan (comparing existing bytes
// to incoming bytes in covered segments, in <=64KiB windows) and decides,
// per policy, which sub-ranges must actually be written. It performs no
// writes itself, so PolicyError can fail before touching either file.
func (h *Handle) planWrites(segments []segment, offset uint64, incoming []byte, policy ConflictPolicy) ([]plannedWrite, error) {
	var writes []plannedWrite

	for _, seg := range segments {
		if !seg.covered {
			writes = append(writes, plannedWrite{seg.start, seg.end})

			continue
		}

		conflict, err := h.segmentDiffers(seg, offset, incoming)
		if err != nil {
			return nil, err
		}

		if !conflict {
			continue
		}

		switch policy {
		case PolicyError:
			return nil, btoeperr.New(btoeperr.KindDataConflict, "")
		case PolicyKeep:
			continue
		case PolicyOverwrite:
			writes = append(writes, plannedWrite{seg.start, seg.end})
		}
	}

	return writes, nil
}

// segmentDiffers reports whether any byte in [seg.start, seg.end) of the
// data file differs from the corresponding incoming byte, reading existing
// data in <=64KiB windows.
func (h *Handle) segmentDiffers(seg segment, offset uint64, incoming []byte) (bool, error) {
	existing := make([]byte, chunkSize)

	for pos := seg.start; pos < seg.end; {
		n := seg.end - pos
		if n > chunkSize {
			n = chunkSize
		}

		if _, err := h.data.Seek(int64(pos), io.SeekStart); err != nil {
			return false, btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
		}

		if _, err := io.ReadFull(h.data, existing[:n]); err != nil {
			return false, btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
		}

		want := incoming[pos-offset : pos-offset+n]
		if !bytes.Equal(existing[:n], want) {
			return true, nil
		}

		pos += n
	}

	return false, nil
}

func (h *Handle) writeAt(offset uint64, data []byte) error {
	if _, err := h.data.Seek(int64(offset), io.SeekStart); err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
	}

	for len(data) > 0 {
		n := len(data)
		if n > chunkSize {
			n = chunkSize
		}

		written, err := h.data.Write(data[:n])
		if err != nil {
			return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
		}

		data = data[written:]
	}

	return nil
}
