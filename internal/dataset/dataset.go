// Package dataset implements the dataset handle and the seven operations
// (create, add, read, find-offset, list-ranges, get-index, set-size) that
// make up the core of btoep: a two-file on-disk container holding a sparse
// byte stream plus a compact range index recording which bytes are
// authoritative.
//
// A Handle owns the data file, the in-memory range index, and the advisory
// lock for its lifetime; callers never touch [internal/fsx] directly.
package dataset

import (
	"io"
	"os"

	"github.com/tniessen/btoep/internal/btoeperr"
	"github.com/tniessen/btoep/internal/fsx"
	"github.com/tniessen/btoep/internal/indexfile"
	"github.com/tniessen/btoep/internal/rangeset"
)

// Paths names the three files that make up one dataset.
type Paths struct {
	Data  string
	Index string
	Lock  string
}

// Resolve fills in the default index/lock paths (<data>.idx, <data>.lock)
// for whichever of index/lock is empty.
func Resolve(data, index, lock string) Paths {
	if index == "" {
		index = data + ".idx"
	}

	if lock == "" {
		lock = data + ".lock"
	}

	return Paths{Data: data, Index: index, Lock: lock}
}

// Mode selects how Open treats the on-disk files.
type Mode int

const (
	ModeReadOnly Mode = iota
	ModeReadWrite
	ModeCreate
)

const chunkSize = 64 * 1024

// Handle is an open dataset: the lock is held, the index is parsed and
// cached in memory, and the data file is positioned for reads/writes.
//
// The zero value is not usable; construct via [Open]. Callers must always
// call [Handle.Close], on every path including errors, to release the
// advisory lock.
type Handle struct {
	fs     fsx.FS
	paths  Paths
	mode   Mode
	lock   *fsx.Lock
	data   fsx.File
	index  *rangeset.Set
	dirty  bool
	closed bool
}

// Open acquires the advisory lock and, depending on mode, creates or opens
// the data and index files, then loads the index into memory.
//
// For [ModeCreate], both files must not already exist. For [ModeReadOnly]
// and [ModeReadWrite], both must already exist. On error, Open releases
// the lock itself and returns a nil Handle; after a successful Open,
// callers must call [Handle.Close].
func Open(filesystem fsx.FS, paths Paths, mode Mode) (*Handle, error) {
	locker := fsx.NewLocker(filesystem)

	lock, err := locker.TryLock(paths.Lock)
	if err != nil {
		return nil, btoeperr.Wrap(btoeperr.KindLockContention, paths.Lock, err)
	}

	h := &Handle{fs: filesystem, paths: paths, mode: mode, lock: lock}

	if err := h.openFiles(); err != nil {
		_ = lock.Close()

		return nil, err
	}

	return h, nil
}

func (h *Handle) openFiles() error {
	switch h.mode {
	case ModeCreate:
		return h.openForCreate()
	default:
		return h.openExisting()
	}
}

func (h *Handle) openForCreate() error {
	idx, err := h.fs.OpenFile(h.paths.Index, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Index, err)
	}

	if err := idx.Close(); err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Index, err)
	}

	data, err := h.fs.OpenFile(h.paths.Data, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		_ = h.fs.Remove(h.paths.Index)

		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
	}

	h.data = data
	h.index = rangeset.New()

	return nil
}

func (h *Handle) openExisting() error {
	dataFlag := os.O_RDONLY
	if h.mode == ModeReadWrite {
		dataFlag = os.O_RDWR
	}

	data, err := h.fs.OpenFile(h.paths.Data, dataFlag, 0)
	if err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
	}

	idxBytes, err := readFile(h.fs, h.paths.Index)
	if err != nil {
		_ = data.Close()

		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Index, err)
	}

	idx, err := indexfile.Decode(idxBytes)
	if err != nil {
		_ = data.Close()

		return btoeperr.Wrap(btoeperr.KindMalformedIndex, h.paths.Index, err)
	}

	h.data = data
	h.index = idx

	return nil
}

func readFile(filesystem fsx.FS, path string) ([]byte, error) {
	f, err := filesystem.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	return io.ReadAll(f)
}

// Close flushes the index (if it was modified) and releases the lock. It
// always attempts to release the lock, even if the flush failed, and is
// idempotent.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true

	var flushErr error

	if h.dirty {
		flushErr = h.flushIndex()
	}

	closeErr := h.data.Close()
	lockErr := h.lock.Close()

	switch {
	case flushErr != nil:
		return flushErr
	case closeErr != nil:
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, closeErr)
	case lockErr != nil:
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Lock, lockErr)
	default:
		return nil
	}
}

func (h *Handle) flushIndex() error {
	encoded := indexfile.Encode(h.index)
	if err := h.fs.WriteFileAtomic(h.paths.Index, encoded, 0o644); err != nil {
		return btoeperr.Wrap(btoeperr.KindIO, h.paths.Index, err)
	}

	return nil
}

// Index returns the current in-memory range index. Callers must not mutate
// it directly; go through the operation functions in this package.
func (h *Handle) Index() *rangeset.Set {
	return h.index
}

// Size returns the data file's current length.
func (h *Handle) Size() (uint64, error) {
	info, err := h.data.Stat()
	if err != nil {
		return 0, btoeperr.Wrap(btoeperr.KindIO, h.paths.Data, err)
	}

	return uint64(info.Size()), nil
}

