package btoeperr

import (
	"errors"
	"os"
	"syscall"
)

// errnoNames maps the errno values this package expects to encounter while
// opening/creating/reading/writing the dataset pair to their POSIX symbolic
// names. Only the errnos spec.md calls out by example (ENOENT, EEXIST) plus
// the handful of other ones add/read/create can plausibly surface are
// listed; for anything else the name is the errno's own message text
// (errno.Error()), alongside its numeric code.
var errnoNames = map[syscall.Errno]string{
	syscall.ENOENT:  "ENOENT",
	syscall.EEXIST:  "EEXIST",
	syscall.EACCES:  "EACCES",
	syscall.EISDIR:  "EISDIR",
	syscall.ENOTDIR: "ENOTDIR",
	syscall.ENOSPC:  "ENOSPC",
	syscall.EROFS:   "EROFS",
	syscall.EMFILE:  "EMFILE",
	syscall.ENFILE:  "ENFILE",
	syscall.EIO:     "EIO",
	syscall.EAGAIN:  "EAGAIN",
}

// SystemCauseOf extracts the (name, code) pair for the syscall.Errno err
// wraps, if any.
func SystemCauseOf(err error) (SystemCause, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return SystemCause{}, false
	}

	name, ok := errnoNames[errno]
	if !ok {
		name = errno.Error()
	}

	return SystemCause{Name: name, Code: int(errno)}, true
}

// IsNotExist reports whether err (possibly wrapped) indicates a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// IsExist reports whether err (possibly wrapped) indicates the file already exists.
func IsExist(err error) bool {
	return errors.Is(err, os.ErrExist)
}
