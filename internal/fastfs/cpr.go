package fastfs

import (
	"context"
	"path/filepath"

	"github.com/Cyclone1070/fastfs/internal/config"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// SymlinkPolicy decides what CopyTree does with symbolic links.
type SymlinkPolicy string

const (
	// SymlinkFollow copies the link target: file content, or the whole directory.
	SymlinkFollow SymlinkPolicy = "follow"
	SymlinkSkip   SymlinkPolicy = "skip"
	SymlinkFail   SymlinkPolicy = "fail"
)

// UnsupportedPolicy decides what CopyTree does with sockets, devices and pipes.
type UnsupportedPolicy string

const (
	UnsupportedFail UnsupportedPolicy = "fail"
	UnsupportedSkip UnsupportedPolicy = "skip"
)

// Matcher excludes entries from a copy. relativePath is slash separated and
// relative to the source root.
type Matcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Options tunes CopyTree.
type Options struct {
	// Concurrency bounds in-flight file copies. Values <= 1 copy sequentially
	// in listing order.
	Concurrency int
	Symlinks    SymlinkPolicy
	Unsupported UnsupportedPolicy
	Ignore      Matcher

	// OnFile is called after each file is copied. OnSkip is called for each
	// entry left out by a skip policy. Both may be called from several
	// goroutines at once when Concurrency > 1.
	OnFile func(src, dst string)
	OnSkip func(path string, kind EntryKind)
}

// OptionsFromConfig builds Options from the copy section of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Concurrency: cfg.Copy.Concurrency,
		Symlinks:    SymlinkPolicy(cfg.Copy.Symlinks),
		Unsupported: UnsupportedPolicy(cfg.Copy.Unsupported),
	}
}

// TreeCopier reproduces a directory tree under a new root.
type TreeCopier struct {
	fs     fileSystem
	lister *Lister
	maker  *Maker
	files  *FileCopier
	opts   Options
}

// NewTreeCopier creates a TreeCopier with default options opts.
func NewTreeCopier(fsys fileSystem, lister *Lister, maker *Maker, files *FileCopier, opts Options) *TreeCopier {
	return &TreeCopier{fs: fsys, lister: lister, maker: maker, files: files, opts: opts}
}

// Options returns the default options used by CopyTree.
func (t *TreeCopier) Options() Options {
	return t.opts
}

// CopyTree copies the directory src to dst using the default options.
func (t *TreeCopier) CopyTree(ctx context.Context, src, dst string) error {
	return t.CopyTreeWith(ctx, src, dst, t.opts)
}

// CopyTreeWith copies the directory src to dst, creating dst and its ancestors
// as needed. The first failure aborts the copy and is returned; whatever was
// already copied stays in place.
func (t *TreeCopier) CopyTreeWith(ctx context.Context, src, dst string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := t.fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &SourceNotDirectoryError{Path: src}
	}

	w := &treeWalk{t: t, opts: opts}
	if opts.Concurrency > 1 {
		w.sem = semaphore.NewWeighted(int64(opts.Concurrency))
	}
	return w.copyDir(ctx, src, dst, "")
}

type action int

const (
	actSkip action = iota
	actFile
	actDir
)

// treeWalk holds the state of a single CopyTree call.
type treeWalk struct {
	t    *TreeCopier
	opts Options
	sem  *semaphore.Weighted
}

func (w *treeWalk) copyDir(ctx context.Context, src, dst, rel string) error {
	// dst must exist before anything is copied into it.
	if err := w.t.maker.EnsureDir(ctx, dst); err != nil {
		return err
	}

	entries, err := w.t.lister.ListEntries(ctx, src)
	if err != nil {
		return err
	}

	if w.sem == nil {
		for _, e := range entries {
			srcPath, dstPath, relPath := filepath.Join(src, e.Name), filepath.Join(dst, e.Name), joinRel(rel, e.Name)
			act, err := w.plan(srcPath, relPath, e)
			if err != nil {
				return err
			}
			if err := w.run(ctx, act, srcPath, dstPath, relPath); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entries {
		if gctx.Err() != nil {
			break
		}
		srcPath, dstPath, relPath := filepath.Join(src, e.Name), filepath.Join(dst, e.Name), joinRel(rel, e.Name)
		act, err := w.plan(srcPath, relPath, e)
		if err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}

		switch act {
		case actDir:
			// Directories never hold a token, so nested walks cannot starve.
			g.Go(func() error {
				return w.copyDir(gctx, srcPath, dstPath, relPath)
			})
		case actFile:
			if err := w.sem.Acquire(gctx, 1); err != nil {
				if werr := g.Wait(); werr != nil {
					return werr
				}
				return err
			}
			g.Go(func() error {
				defer w.sem.Release(1)
				return w.copyFile(gctx, srcPath, dstPath)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (w *treeWalk) run(ctx context.Context, act action, srcPath, dstPath, relPath string) error {
	switch act {
	case actDir:
		return w.copyDir(ctx, srcPath, dstPath, relPath)
	case actFile:
		return w.copyFile(ctx, srcPath, dstPath)
	default:
		return nil
	}
}

func (w *treeWalk) copyFile(ctx context.Context, src, dst string) error {
	if err := w.t.files.CopyFile(ctx, src, dst); err != nil {
		return err
	}
	if w.opts.OnFile != nil {
		w.opts.OnFile(src, dst)
	}
	return nil
}

// plan decides what to do with a single entry.
func (w *treeWalk) plan(srcPath, relPath string, e DirEntry) (action, error) {
	if w.opts.Ignore != nil && w.opts.Ignore.ShouldIgnore(relPath, e.IsDir()) {
		return actSkip, nil
	}

	kind := e.Kind
	if kind == KindSymlink {
		switch w.opts.Symlinks {
		case SymlinkSkip:
			w.skip(srcPath, kind)
			return actSkip, nil
		case SymlinkFail:
			return actSkip, &UnsupportedEntryError{Path: srcPath, Kind: kind}
		}
		info, err := w.t.fs.Stat(srcPath)
		if err != nil {
			return actSkip, err
		}
		kind = kindFromMode(info.Mode())
	}

	switch kind {
	case KindDirectory:
		return actDir, nil
	case KindFile:
		return actFile, nil
	}

	if w.opts.Unsupported == UnsupportedSkip {
		w.skip(srcPath, kind)
		return actSkip, nil
	}
	return actSkip, &UnsupportedEntryError{Path: srcPath, Kind: kind}
}

func (w *treeWalk) skip(path string, kind EntryKind) {
	if w.opts.OnSkip != nil {
		w.opts.OnSkip(path, kind)
	}
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
