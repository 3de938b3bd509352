package fastfs

import (
	"context"

	"github.com/Cyclone1070/fastfs/internal/service/fs"
)

// Checker answers whether a path is an existing directory.
type Checker struct {
	fs fileSystem
}

// NewChecker creates a Checker over fsys.
func NewChecker(fsys fileSystem) *Checker {
	return &Checker{fs: fsys}
}

// IsDir reports whether path exists and is a directory, following symlinks.
// A missing path, or one whose prefix is not a directory, yields false with no
// error. Any other probing failure is returned.
func (c *Checker) IsDir(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		if fs.IsKind(err, fs.KindNotFound) || fs.IsKind(err, fs.KindNotDir) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
