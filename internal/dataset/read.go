package dataset

import (
	"io"

	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/rangeset"
)

// Read streams bytes from the dataset at paths to w.
//
// If length is non-nil, exactly *length bytes are produced, provided
// [offset, offset+*length) is contained within a single existing range;
// otherwise it fails with ReadOutOfBounds. If length is nil, bytes are
// produced from offset to the end of the range containing it (zero bytes,
// successfully, if offset lies in no range). limit, if non-nil, caps the
// number of bytes produced when length is nil; when length is also given
// and exceeds limit, Read fails with ReadOutOfBounds instead of capping.
func Read(filesystem fsx.FS, paths Paths, w io.Writer, offset uint64, length, limit *uint64) error {
	h, err := Open(filesystem, paths, ModeReadOnly)
	if err != nil {
		return err
	}

	defer func() { _ = h.Close() }()

	start, end, err := readExtent(h.index, offset, length, limit)
	if err != nil {
		return err
	}

	return h.streamTo(w, start, end)
}

func readExtent(index *rangeset.Set, offset uint64, length, limit *uint64) (start, end uint64, err error) {
	if length != nil {
		want := offset + *length

		if limit != nil && *length > *limit {
			return 0, 0, btoeperr.New(btoeperr.KindReadOutOfBounds, "")
		}

		r, ok := index.Query(offset)
		if !ok || r.Start > offset || r.End < want {
			return 0, 0, btoeperr.New(btoeperr.KindReadOutOfBounds, "")
		}

		return offset, want, nil
	}

	r, ok := index.Query(offset)
	if !ok {
		return offset, offset, nil
	}

	avail := r.End - offset
	if limit != nil && avail > *limit {
		avail = *limit
	}

	return offset, offset + avail, nil
}

func (h *Handle) streamTo(w io.Writer, start, end uint64) error {
	if _, err := h.data.Seek(int64(start), io.SeekStart); err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
	}

	remaining := end - start
	buf := make([]byte, chunkSize)

	for remaining > 0 {
		n := uint64(len(buf))
		if remaining < n {
			n = remaining
		}

		read, err := io.ReadFull(h.data, buf[:n])
		if err != nil {
			return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
		}

		if _, err := w.Write(buf[:read]); err != nil {
			return btoeperr.Wrap(btoeperr.KindIO, "", err)
		}

		remaining -= uint64(read)
	}

	return nil
}
