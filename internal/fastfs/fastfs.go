// Package fastfs provides directory checks, normalized directory listings,
// recursive directory creation and recursive copy on top of the primitives in
// internal/service/fs.
package fastfs

import (
	"io"
	"os"

	"github.com/Cyclone1070/fastfs/internal/config"
	"github.com/Cyclone1070/fastfs/internal/service/fs"
)

// fileSystem is the set of primitives fastfs consumes. Implementations must
// return errors classified with fs.Classify.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	Mkdir(path string, perm os.FileMode) error
	ReadDirNames(path string) ([]string, error)
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}

// typedDirReader is implemented by filesystems whose listings carry entry types.
type typedDirReader interface {
	ReadDir(path string) ([]os.DirEntry, error)
}

// FastFS wires the components together from a single configuration.
type FastFS struct {
	*Checker
	*Lister
	*Maker
	*FileCopier
	*TreeCopier
}

// New creates a FastFS over fsys.
func New(fsys fileSystem, cfg *config.Config) *FastFS {
	checker := NewChecker(fsys)
	lister := NewLister(fsys, cfg.List.ForceProbe)
	maker := NewMaker(fsys, checker, os.FileMode(cfg.Dir.Perm))
	fileCopier := NewFileCopier(fsys)
	return &FastFS{
		Checker:    checker,
		Lister:     lister,
		Maker:      maker,
		FileCopier: fileCopier,
		TreeCopier: NewTreeCopier(fsys, lister, maker, fileCopier, OptionsFromConfig(cfg)),
	}
}

// NewOS creates a FastFS over the local OS filesystem.
func NewOS(cfg *config.Config) *FastFS {
	return New(fs.NewOSFileSystem(), cfg)
}
