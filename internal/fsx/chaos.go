package fsx

import (
	"errors"
	"io"
	"os"
)

// ErrChaosInjected marks an error manufactured by [Chaos] rather than
// returned by the real filesystem.
var ErrChaosInjected = errors.New("fsx: chaos injected fault")

// Chaos wraps an [FS] and injects faults useful for exercising crash- and
// conflict-tolerance properties: a data-file write that dies partway
// through, and an index write that never reaches disk. It does not attempt
// to simulate every failure mode of the real filesystem — only the two
// spec.md cares about: "data bytes written, index not yet updated" and
// "write fails, pre-call state must be preserved".
type Chaos struct {
	underlying FS

	// FailWriteAfterBytes, if > 0, causes the Nth byte written to the files
	// opened through this Chaos (one budget shared by all of them, counted
	// cumulatively across every Write call) to be the last byte that
	// succeeds; the call that would cross the threshold returns the bytes
	// actually written plus [ErrChaosInjected].
	FailWriteAfterBytes int64

	// FailAtomicWrite, if true, causes WriteFileAtomic to fail before the
	// rename step, leaving the target path (and any prior content) exactly
	// as it was.
	FailAtomicWrite bool
}

// NewChaos wraps underlying with fault injection controlled by the
// returned Chaos's exported fields.
func NewChaos(underlying FS) *Chaos {
	return &Chaos{underlying: underlying}
}

func (c *Chaos) Open(path string) (File, error) {
	f, err := c.underlying.Open(path)
	if err != nil {
		return nil, err
	}

	return c.wrap(f), nil
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	f, err := c.underlying.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return c.wrap(f), nil
}

func (c *Chaos) Stat(path string) (os.FileInfo, error) { return c.underlying.Stat(path) }
func (c *Chaos) Remove(path string) error               { return c.underlying.Remove(path) }

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	return c.underlying.MkdirAll(path, perm)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if c.FailAtomicWrite {
		return ErrChaosInjected
	}

	return c.underlying.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) wrap(f File) File {
	if c.FailWriteAfterBytes <= 0 {
		return f
	}

	return &chaosFile{File: f, budget: &c.FailWriteAfterBytes}
}

// chaosFile fails a Write once the shared byte budget is exhausted,
// simulating a process death partway through a write syscall.
type chaosFile struct {
	File

	budget *int64
}

func (cf *chaosFile) Write(p []byte) (int, error) {
	if *cf.budget <= 0 {
		return 0, ErrChaosInjected
	}

	if int64(len(p)) > *cf.budget {
		allowed := int(*cf.budget)
		*cf.budget = 0

		n, err := cf.File.Write(p[:allowed])
		if err != nil {
			return n, err
		}

		return n, ErrChaosInjected
	}

	n, err := cf.File.Write(p)
	*cf.budget -= int64(n)

	return n, err
}

// Compile-time interface checks.
var (
	_ FS               = (*Chaos)(nil)
	_ io.ReadWriteCloser = (*chaosFile)(nil)
)
