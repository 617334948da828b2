// Package emuerr defines the sentinel errors used across the peripheral
// emulators. Errors are syscall.Errno-backed so callers can still recover the
// underlying POSIX-ish error class with errors.Is, while carrying a
// human-readable message for diagnostics.
package emuerr

import (
	"fmt"
	"syscall"
)

// DiskoError is a named error class with an optional custom message layered
// on top. The name comes from the sentinel it was built from, not from this
// package.
type DiskoError struct {
	Errno   syscall.Errno
	message string
	// root identifies which sentinel this error (or a WithMessage/Wrap copy
	// of it) originated from. Two sentinels can legitimately share an Errno
	// (e.g. two different ENOENT cases); identity must not collapse to that,
	// so Is compares root, not Errno.
	root *DiskoError
}

func (e *DiskoError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.Errno.Error()
}

// Is lets errors.Is(err, emuerr.ErrDirectoryNotFound) succeed against a message-wrapped
// copy returned by WithMessage or Wrap.
func (e *DiskoError) Is(target error) bool {
	other, ok := target.(*DiskoError)
	if !ok {
		return false
	}
	return e.identity() == other.identity()
}

func (e *DiskoError) identity() *DiskoError {
	if e.root != nil {
		return e.root
	}
	return e
}

// Unwrap exposes the plain errno so callers relying on syscall-level checks
// still work.
func (e *DiskoError) Unwrap() error {
	return e.Errno
}

// WithMessage returns a copy of e carrying a custom message.
func (e *DiskoError) WithMessage(message string) *DiskoError {
	return &DiskoError{Errno: e.Errno, message: message, root: e.identity()}
}

// Wrap returns a copy of e whose message embeds err's message.
func (e *DiskoError) Wrap(err error) *DiskoError {
	return &DiskoError{
		Errno:   e.Errno,
		message: fmt.Sprintf("%s: %s", e.Errno.Error(), err.Error()),
		root:    e.identity(),
	}
}

func newError(errno syscall.Errno) *DiskoError {
	return &DiskoError{Errno: errno}
}

// Sentinel errors returned by the hostdir, fat16, hostfile, sdcard and
// spiram packages.
var (
	// ErrDirectoryNotFound is returned when the host directory backing an SD
	// card image can't be opened.
	ErrDirectoryNotFound = newError(syscall.ENOENT)
	// ErrTooManyFiles is returned when a host directory has more entries than
	// fit in the TOC (MAX_FILES - 1 real files).
	ErrTooManyFiles = newError(syscall.ENOSPC)
	// ErrFileVanished is used internally to note that a host file that backed
	// a TOC entry could not be reopened; it is never returned to a caller,
	// only logged, since the data-path error policy is "substitute zeros".
	ErrFileVanished = newError(syscall.ENOENT)
	// ErrUnknownGeometry is returned when a card-geometry preset name doesn't
	// match any entry in the embedded preset table.
	ErrUnknownGeometry = newError(syscall.EINVAL)
)
