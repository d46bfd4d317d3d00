package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by [Locker.TryLock] when the lock is already
// held by another process. The dataset handle maps this directly to its
// LockContention error kind: spec.md requires non-blocking acquisition with
// no timeout, so there is no retry loop above this call.
var ErrWouldBlock = errors.New("fsx: lock would block")

// errInodeMismatch is an internal sentinel indicating the lock file was
// replaced between open and flock. TryLock retries once internally.
var errInodeMismatch = errors.New("fsx: inode mismatch")

// Locker acquires exclusive advisory locks on a lockfile path using
// flock(2), creating the lockfile (and its parent directories) if needed.
type Locker struct {
	fs FS
}

// NewLocker returns a Locker that performs file operations through fs.
func NewLocker(fs FS) *Locker {
	return &Locker{fs: fs}
}

// Lock represents a held advisory lock. Call [Lock.Close] to release it.
type Lock struct {
	file File
}

// Close releases the lock and closes the underlying file descriptor.
// Idempotent: calling it again after a successful Close returns nil.
func (lk *Lock) Close() error {
	if lk.file == nil {
		return nil
	}

	fd := int(lk.file.Fd())

	unlockErr := unix.Flock(fd, unix.LOCK_UN)
	closeErr := lk.file.Close()
	lk.file = nil

	if unlockErr != nil {
		return fmt.Errorf("unlocking lock: %w", unlockErr)
	}

	return closeErr
}

const (
	lockFilePerm = 0o600
	lockDirPerm  = 0o755
)

// TryLock attempts to acquire an exclusive lock on path without blocking.
//
// flock(2) locks an inode, not a pathname: if the lockfile is replaced
// between opening it and flocking it, the caller could end up holding a
// lock on a now-orphaned inode while believing it locks path. TryLock
// guards against this by verifying, immediately after the flock succeeds,
// that the file it opened is still the file at path; on mismatch it closes
// and retries once.
func (l *Locker) TryLock(path string) (*Lock, error) {
	for attempt := 0; attempt < 2; attempt++ {
		file, err := l.openLockFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening lockfile: %w", err)
		}

		err = l.acquire(file, path)
		if err == nil {
			return &Lock{file: file}, nil
		}

		_ = file.Close()

		if errors.Is(err, errInodeMismatch) {
			continue
		}

		return nil, err
	}

	return nil, fmt.Errorf("%w: lock file was repeatedly replaced while acquiring lock", ErrWouldBlock)
}

func (l *Locker) acquire(file File, path string) error {
	fd := int(file.Fd())

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return ErrWouldBlock
		}

		return err
	}

	match, err := l.inodeMatchesPath(path, file)
	if err != nil {
		_ = unix.Flock(fd, unix.LOCK_UN)

		if errors.Is(err, os.ErrNotExist) {
			return errInodeMismatch
		}

		return fmt.Errorf("verifying inode match: %w", err)
	}

	if !match {
		_ = unix.Flock(fd, unix.LOCK_UN)
		return errInodeMismatch
	}

	return nil
}

func (l *Locker) openLockFile(path string) (File, error) {
	f, err := l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return f, err
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, err
	}

	return l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
}

// inodeMatchesPath compares (dev, inode) of the already-open fd to the
// current (dev, inode) at path.
func (l *Locker) inodeMatchesPath(path string, f File) (bool, error) {
	openInfo, err := f.Stat()
	if err != nil {
		return false, err
	}

	openSys, ok := openInfo.Sys().(*syscall.Stat_t)
	if !ok || openSys == nil {
		return false, fmt.Errorf("file.Stat Sys=%T, want *syscall.Stat_t", openInfo.Sys())
	}

	pathInfo, err := l.fs.Stat(path)
	if err != nil {
		return false, err
	}

	pathSys, ok := pathInfo.Sys().(*syscall.Stat_t)
	if !ok || pathSys == nil {
		return false, fmt.Errorf("fs.Stat Sys=%T, want *syscall.Stat_t", pathInfo.Sys())
	}

	return openSys.Dev == pathSys.Dev && openSys.Ino == pathSys.Ino, nil
}
