package fastfs

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	// ErrNotADirectory matches every error caused by an entity of the wrong kind
	// sitting where a directory is required.
	ErrNotADirectory = errors.New("not a directory")
	// ErrUnsupportedEntry matches entries copyTree refuses to copy.
	ErrUnsupportedEntry = errors.New("unsupported entry")
)

// -- Errors --

// NotADirectoryError is returned when a path that must become a directory is
// occupied by something else.
type NotADirectoryError struct {
	Path  string
	Cause error
}

func (e *NotADirectoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s exists and is not a directory: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("%s exists and is not a directory", e.Path)
}
func (e *NotADirectoryError) Unwrap() error { return e.Cause }
func (e *NotADirectoryError) Is(target error) bool {
	return target == ErrNotADirectory
}

// SourceNotDirectoryError is returned by CopyTree when the source is not a directory.
type SourceNotDirectoryError struct {
	Path string
}

func (e *SourceNotDirectoryError) Error() string {
	return fmt.Sprintf("source is not a directory: %s", e.Path)
}
func (e *SourceNotDirectoryError) Is(target error) bool {
	return target == ErrNotADirectory
}

// ListError is returned when a directory listing cannot be produced.
// Entry is empty when the listing itself failed.
type ListError struct {
	Path  string
	Entry string
	Cause error
}

func (e *ListError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("failed to classify %s in %s: %v", e.Entry, e.Path, e.Cause)
	}
	return fmt.Sprintf("failed to list %s: %v", e.Path, e.Cause)
}
func (e *ListError) Unwrap() error { return e.Cause }

// CopyError is returned when a single file copy fails.
type CopyError struct {
	Src   string
	Dst   string
	Cause error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Src, e.Dst, e.Cause)
}
func (e *CopyError) Unwrap() error { return e.Cause }

// UnsupportedEntryError is returned by CopyTree for entries its policy refuses.
type UnsupportedEntryError struct {
	Path string
	Kind EntryKind
}

func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("cannot copy %s: unsupported entry kind %s", e.Path, e.Kind)
}
func (e *UnsupportedEntryError) Is(target error) bool {
	return target == ErrUnsupportedEntry
}
