// Package fsx provides the filesystem seam between btoep's business logic
// and the operating system.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using the [os] package
//   - [Chaos]: testing implementation that injects partial writes and
//     interrupted operations, used to exercise the crash-tolerance
//     properties the dataset handle and add operation must uphold
//
// Business logic never performs file operations through [os] directly; only
// [Real] does. This keeps the crash/conflict properties testable by
// substituting [Chaos] (which wraps another FS) for [Real].
package fsx

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// Satisfied by [os.File]. Fd must return a descriptor usable with
// [golang.org/x/sys/unix.Flock] for the lifetime of the file.
type File interface {
	io.ReadWriteCloser
	io.Seeker

	Fd() uintptr
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
}

// FS defines the filesystem operations the dataset handle needs.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for fault-injection testing.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// OpenFile opens a file with specified flags and permissions. See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Remove deletes a file. See [os.Remove].
	Remove(path string) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// WriteFileAtomic durably replaces path's content with data via a
	// temp-file-plus-rename in the same directory, so a crash mid-write
	// cannot leave a half-written file at path.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// Compile-time interface check.
var _ File = (*os.File)(nil)
