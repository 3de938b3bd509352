package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"syscall"
)

// Kind is the closed classification every primitive error is translated into.
type Kind int

const (
	// KindIO covers every failure that is not one of the specific kinds below.
	KindIO Kind = iota
	KindNotFound
	KindExists
	KindNotDir
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindExists:
		return "already exists"
	case KindNotDir:
		return "not a directory"
	case KindPermission:
		return "permission denied"
	default:
		return "i/o failure"
	}
}

// -- Errors --

// OpError is returned by every primitive of this package.
type OpError struct {
	Op    string
	Path  string
	Kind  Kind
	Cause error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Cause)
}

func (e *OpError) Unwrap() error { return e.Cause }

// NotFound reports whether the target path was missing.
func (e *OpError) NotFound() bool { return e.Kind == KindNotFound }

// IOError reports whether the failure is a generic I/O failure.
func (e *OpError) IOError() bool { return e.Kind == KindIO }

// Classify wraps a raw primitive error into an *OpError.
// A nil error stays nil and an already classified error is returned as is.
func Classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Path: path, Kind: kindFor(err), Cause: err}
}

func kindFor(err error) Kind {
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, iofs.ErrExist):
		return KindExists
	case errors.Is(err, syscall.ENOTDIR):
		return KindNotDir
	case errors.Is(err, iofs.ErrPermission):
		return KindPermission
	default:
		return KindIO
	}
}

// KindOf returns the kind of a classified error, or KindIO if err carries none.
func KindOf(err error) Kind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindIO
}

// IsKind reports whether err was classified as k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
