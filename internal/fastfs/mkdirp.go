package fastfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/fastfs/internal/service/fs"
)

// Maker creates directories.
type Maker struct {
	fs      fileSystem
	checker *Checker
	perm    os.FileMode
}

// NewMaker creates a Maker that creates directories with perm (before umask).
func NewMaker(fsys fileSystem, checker *Checker, perm os.FileMode) *Maker {
	return &Maker{fs: fsys, checker: checker, perm: perm}
}

// Mkdir creates a single directory. It fails if the parent is missing or the
// path already exists.
func (m *Maker) Mkdir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.fs.Mkdir(path, m.perm)
}

// EnsureDir makes sure path and every missing ancestor exist as directories.
// It succeeds silently when path is already a directory, including when a
// concurrent caller created it first.
func (m *Maker) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := m.fs.Mkdir(path, m.perm)
	switch {
	case err == nil:
		return nil
	case fs.IsKind(err, fs.KindExists):
		return m.confirmDir(ctx, path, err)
	case fs.IsKind(err, fs.KindNotDir):
		return &NotADirectoryError{Path: path, Cause: err}
	case !fs.IsKind(err, fs.KindNotFound):
		return err
	}

	// Parent is missing.
	parent := filepath.Dir(path)
	if parent == path {
		return err
	}
	if err := m.EnsureDir(ctx, parent); err != nil {
		return err
	}

	err = m.fs.Mkdir(path, m.perm)
	switch {
	case err == nil:
		return nil
	case fs.IsKind(err, fs.KindExists):
		return m.confirmDir(ctx, path, err)
	case fs.IsKind(err, fs.KindNotDir):
		return &NotADirectoryError{Path: path, Cause: err}
	default:
		return err
	}
}

// confirmDir turns an "already exists" outcome into success when the existing
// entity is a directory.
func (m *Maker) confirmDir(ctx context.Context, path string, existsErr error) error {
	ok, err := m.checker.IsDir(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return &NotADirectoryError{Path: path, Cause: existsErr}
	}
	return nil
}
