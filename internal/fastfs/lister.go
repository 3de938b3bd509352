package fastfs

import (
	"context"
	"path/filepath"
)

// listStrategy produces classified entries for a single directory.
type listStrategy func(ctx context.Context, dir string) ([]DirEntry, error)

// Lister lists a directory's immediate children with a resolved kind for each.
// The strategy is picked once at construction: typed listings when the
// filesystem provides them, a per-entry Lstat probe otherwise.
type Lister struct {
	fs       fileSystem
	hasTypes bool
	list     listStrategy
}

// NewLister creates a Lister over fsys. forceProbe selects the probe strategy
// even when typed listings are available.
func NewLister(fsys fileSystem, forceProbe bool) *Lister {
	l := &Lister{fs: fsys}
	if typed, ok := fsys.(typedDirReader); ok && !forceProbe {
		l.hasTypes = true
		l.list = l.direct(typed)
	} else {
		l.list = l.probe
	}
	return l
}

// HasTypes reports whether listings come with type information from the
// underlying filesystem.
func (l *Lister) HasTypes() bool {
	return l.hasTypes
}

// ListEntries returns the children of dir in the order the filesystem reports them.
// A failure to classify any single entry fails the whole call.
func (l *Lister) ListEntries(ctx context.Context, dir string) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.list(ctx, dir)
}

func (l *Lister) direct(typed typedDirReader) listStrategy {
	return func(ctx context.Context, dir string) ([]DirEntry, error) {
		raw, err := typed.ReadDir(dir)
		if err != nil {
			return nil, &ListError{Path: dir, Cause: err}
		}

		entries := make([]DirEntry, 0, len(raw))
		for _, e := range raw {
			entries = append(entries, DirEntry{Name: e.Name(), Kind: kindFromMode(e.Type())})
		}
		return entries, nil
	}
}

func (l *Lister) probe(ctx context.Context, dir string) ([]DirEntry, error) {
	names, err := l.fs.ReadDirNames(dir)
	if err != nil {
		return nil, &ListError{Path: dir, Cause: err}
	}

	entries := make([]DirEntry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := l.fs.Lstat(filepath.Join(dir, name))
		if err != nil {
			return nil, &ListError{Path: dir, Entry: name, Cause: err}
		}
		entries = append(entries, DirEntry{Name: name, Kind: kindFromMode(info.Mode())})
	}
	return entries, nil
}
