package fastfs

import (
	"context"
	"io"
)

// FileCopier duplicates a single file's bytes.
type FileCopier struct {
	fs fileSystem
}

// NewFileCopier creates a FileCopier over fsys.
func NewFileCopier(fsys fileSystem) *FileCopier {
	return &FileCopier{fs: fsys}
}

// CopyFile copies the content of src to dst, creating dst or truncating it.
// Permission bits, timestamps and ownership are not carried over.
func (c *FileCopier) CopyFile(ctx context.Context, src, dst string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := c.fs.Open(src)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Cause: err}
	}
	defer in.Close()

	out, err := c.fs.Create(dst)
	if err != nil {
		return &CopyError{Src: src, Dst: dst, Cause: err}
	}
	defer func() {
		// Close errors on the destination mean the data may not be on disk.
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &CopyError{Src: src, Dst: dst, Cause: closeErr}
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return &CopyError{Src: src, Dst: dst, Cause: err}
	}
	return nil
}
