package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Reason categorizes why reading a file or directory failed
type Reason int

const (
	ReasonAccessDenied Reason = iota
	ReasonNotFound
	ReasonIsDirectory
	ReasonIO
)

// String returns a human-readable reason
func (r Reason) String() string {
	switch r {
	case ReasonAccessDenied:
		return "Access denied"
	case ReasonNotFound:
		return "Not found"
	case ReasonIsDirectory:
		return "Is a directory"
	case ReasonIO:
		return "I/O error"
	default:
		return "Unspecified error"
	}
}

// Op names the step that failed
type Op string

const (
	OpReadDir Op = "read directory"
	OpRead    Op = "read file"
	OpStat    Op = "stat"
	OpSave    Op = "save output"
)

// ScanError is a per-file or per-directory failure. It never aborts a walk.
type ScanError struct {
	Path   string
	Op     Op
	Reason Reason
	Err    error
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error { return e.Err }

// UserMessage returns the line shown in the results view
func (e *ScanError) UserMessage() string {
	switch e.Reason {
	case ReasonNotFound:
		return fmt.Sprintf("Error: %s disappeared during the scan", e.Path)
	case ReasonIsDirectory:
		return fmt.Sprintf("Error: %s is a directory", e.Path)
	default:
		return fmt.Sprintf("Error: failed to %s %s: %v", e.Op, e.Path, e.Err)
	}
}

// Categorize wraps err in a ScanError with its Reason filled in
func Categorize(path string, op Op, err error) *ScanError {
	if err == nil {
		return nil
	}

	se := &ScanError{
		Path:   path,
		Op:     op,
		Reason: ReasonIO,
		Err:    err,
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		se.Reason = ReasonAccessDenied
		return se
	case errors.Is(err, fs.ErrNotExist):
		se.Reason = ReasonNotFound
		return se
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			se.Reason = ReasonAccessDenied
		case syscall.ENOENT:
			se.Reason = ReasonNotFound
		case syscall.EISDIR:
			se.Reason = ReasonIsDirectory
		}
	}

	return se
}

// IsAccessDenied reports whether err is an access-denial, which the walker
// skips without reporting.
func IsAccessDenied(err error) bool {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Reason == ReasonAccessDenied
	}
	return Categorize("", OpRead, err).Reason == ReasonAccessDenied
}
