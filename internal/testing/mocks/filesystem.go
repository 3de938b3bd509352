// Package mocks provides an in-memory filesystem for tests.
package mocks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Cyclone1070/fastfs/internal/service/fs"
)

const maxSymlinkHops = 40

// MockFileInfo implements os.FileInfo
type MockFileInfo struct {
	NameVal string
	SizeVal int64
	ModeVal os.FileMode
}

func (f *MockFileInfo) Name() string       { return f.NameVal }
func (f *MockFileInfo) Size() int64        { return f.SizeVal }
func (f *MockFileInfo) Mode() os.FileMode  { return f.ModeVal }
func (f *MockFileInfo) ModTime() time.Time { return time.Time{} }
func (f *MockFileInfo) IsDir() bool        { return f.ModeVal.IsDir() }
func (f *MockFileInfo) Sys() any           { return nil }

// MockFileHandle buffers writes until Close commits them to the filesystem.
type MockFileHandle struct {
	Fs      *MockFileSystem
	Path    string
	Content []byte
	Closed  bool
}

// Write implements io.Writer
func (h *MockFileHandle) Write(data []byte) (int, error) {
	h.Fs.Mu.Lock()
	defer h.Fs.Mu.Unlock()

	if err, ok := h.Fs.OpErrors["Write"]; ok {
		return 0, fs.Classify("write", h.Path, err)
	}

	if h.Closed {
		return 0, fs.Classify("write", h.Path, os.ErrClosed)
	}

	h.Content = append(h.Content, data...)
	return len(data), nil
}

// Close implements io.Closer
func (h *MockFileHandle) Close() error {
	h.Fs.Mu.Lock()
	defer h.Fs.Mu.Unlock()

	if h.Closed {
		return fs.Classify("close", h.Path, os.ErrClosed)
	}
	h.Closed = true

	if err, ok := h.Fs.OpErrors["Close"]; ok {
		return fs.Classify("close", h.Path, err)
	}

	h.Fs.Files[h.Path] = h.Content
	h.Fs.modes[h.Path] = 0o644
	return nil
}

// MockFileSystem implements the fastfs primitives with in-memory storage.
// Listings carry no type information; wrap it with Typed for that.
// All returned errors are classified the way the OS filesystem classifies them.
type MockFileSystem struct {
	Mu       sync.RWMutex
	Files    map[string][]byte      // path -> content
	Symlinks map[string]string      // symlink path -> target path
	Errors   map[string]error       // path -> error to return
	OpErrors map[string]error       // operation -> error to return
	modes    map[string]os.FileMode // path -> mode, for every entry

	// OnMkdir, when set, runs before every Mkdir without the lock held.
	OnMkdir func(path string)

	// Calls counts primitive invocations by operation name.
	Calls map[string]int
}

// NewMockFileSystem creates a new mock filesystem with an empty root directory.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:    make(map[string][]byte),
		Symlinks: make(map[string]string),
		Errors:   make(map[string]error),
		OpErrors: make(map[string]error),
		modes:    map[string]os.FileMode{"/": os.ModeDir | 0o755},
		Calls:    make(map[string]int),
	}
}

// SetError sets an error to return for a specific path
func (f *MockFileSystem) SetError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[filepath.Clean(path)] = err
}

// SetOperationError sets an error to return for a specific operation.
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile creates a file with content, creating missing parents.
func (f *MockFileSystem) CreateFile(path string, content []byte) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	path = filepath.Clean(path)
	f.ensureParentsLocked(path)
	f.Files[path] = content
	f.modes[path] = 0o644
}

// CreateDir creates a directory, creating missing parents.
func (f *MockFileSystem) CreateDir(path string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	path = filepath.Clean(path)
	f.ensureParentsLocked(path)
	f.modes[path] = os.ModeDir | 0o755
}

// CreateSymlink creates a symlink, creating missing parents.
func (f *MockFileSystem) CreateSymlink(symlinkPath, targetPath string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	symlinkPath = filepath.Clean(symlinkPath)
	f.ensureParentsLocked(symlinkPath)
	f.Symlinks[symlinkPath] = targetPath
	f.modes[symlinkPath] = os.ModeSymlink | 0o777
}

// CreateSpecial creates an entry that is neither file, directory nor symlink.
func (f *MockFileSystem) CreateSpecial(path string, mode os.FileMode) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	path = filepath.Clean(path)
	f.ensureParentsLocked(path)
	f.modes[path] = mode
}

// IsDir reports whether path holds a directory, without following symlinks.
func (f *MockFileSystem) IsDir(path string) bool {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	return f.modes[filepath.Clean(path)].IsDir()
}

// Content returns a file's content and whether the file exists.
func (f *MockFileSystem) Content(path string) ([]byte, bool) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	content, ok := f.Files[filepath.Clean(path)]
	return content, ok
}

func (f *MockFileSystem) ensureParentsLocked(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if _, ok := f.modes[dir]; !ok {
			f.modes[dir] = os.ModeDir | 0o755
		}
		if dir == filepath.Dir(dir) {
			return
		}
	}
}

// preflightLocked returns the injected error for op and path, if any.
func (f *MockFileSystem) preflightLocked(op, path string) error {
	f.Calls[op]++
	if err, ok := f.OpErrors[op]; ok {
		return err
	}
	if err, ok := f.Errors[path]; ok {
		return err
	}
	return nil
}

// resolveLocked walks path component by component, following symlinks in
// every intermediate component and, if followLast is set, in the last one.
func (f *MockFileSystem) resolveLocked(path string, followLast bool, hops int) (string, error) {
	if hops > maxSymlinkHops {
		return "", syscall.ELOOP
	}

	parts := strings.Split(strings.TrimPrefix(filepath.Clean(path), "/"), "/")
	current := "/"
	for i, part := range parts {
		if part == "" {
			continue
		}
		if !f.modes[current].IsDir() {
			return "", syscall.ENOTDIR
		}

		next := filepath.Join(current, part)
		if target, ok := f.Symlinks[next]; ok && (followLast || i < len(parts)-1) {
			if !filepath.IsAbs(target) {
				target = filepath.Join(current, target)
			}
			resolved, err := f.resolveLocked(target, true, hops+1)
			if err != nil {
				return "", err
			}
			current = resolved
			continue
		}
		if _, ok := f.modes[next]; !ok {
			return "", os.ErrNotExist
		}
		current = next
	}
	return current, nil
}

// childPathLocked resolves the parent of path and returns the in-memory key
// path would have. The parent must be an existing directory.
func (f *MockFileSystem) childPathLocked(path string) (string, error) {
	parent, err := f.resolveLocked(filepath.Dir(path), true, 0)
	if err != nil {
		return "", err
	}
	if !f.modes[parent].IsDir() {
		return "", syscall.ENOTDIR
	}
	return filepath.Join(parent, filepath.Base(path)), nil
}

func (f *MockFileSystem) infoLocked(path string) *MockFileInfo {
	mode := f.modes[path]
	return &MockFileInfo{
		NameVal: filepath.Base(path),
		SizeVal: int64(len(f.Files[path])),
		ModeVal: mode,
	}
}

// Stat returns file info for a path (follows symlinks).
func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("Stat", path); err != nil {
		return nil, fs.Classify("stat", path, err)
	}

	resolved, err := f.resolveLocked(path, true, 0)
	if err != nil {
		return nil, fs.Classify("stat", path, err)
	}
	info := f.infoLocked(resolved)
	info.NameVal = filepath.Base(path)
	return info, nil
}

// Lstat returns file info for a path without following symlinks.
func (f *MockFileSystem) Lstat(path string) (os.FileInfo, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("Lstat", path); err != nil {
		return nil, fs.Classify("lstat", path, err)
	}

	resolved, err := f.resolveLocked(path, false, 0)
	if err != nil {
		return nil, fs.Classify("lstat", path, err)
	}
	return f.infoLocked(resolved), nil
}

// Mkdir creates a single directory. The parent must exist.
func (f *MockFileSystem) Mkdir(path string, perm os.FileMode) error {
	path = filepath.Clean(path)
	if f.OnMkdir != nil {
		f.OnMkdir(path)
	}

	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err := f.preflightLocked("Mkdir", path); err != nil {
		return fs.Classify("mkdir", path, err)
	}

	key, err := f.childPathLocked(path)
	if err != nil {
		return fs.Classify("mkdir", path, err)
	}
	if _, ok := f.modes[key]; ok {
		return fs.Classify("mkdir", path, os.ErrExist)
	}
	f.modes[key] = os.ModeDir | perm
	return nil
}

// ReadDirNames lists the names of a directory's children, sorted.
func (f *MockFileSystem) ReadDirNames(path string) ([]string, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("ReadDirNames", path); err != nil {
		return nil, fs.Classify("readdir", path, err)
	}
	return f.childrenLocked(path)
}

func (f *MockFileSystem) childrenLocked(path string) ([]string, error) {
	dir, err := f.resolveLocked(path, true, 0)
	if err != nil {
		return nil, fs.Classify("readdir", path, err)
	}
	if !f.modes[dir].IsDir() {
		return nil, fs.Classify("readdir", path, syscall.ENOTDIR)
	}

	var names []string
	for entryPath := range f.modes {
		if entryPath != dir && filepath.Dir(entryPath) == dir {
			names = append(names, filepath.Base(entryPath))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open opens a file for reading (follows symlinks).
func (f *MockFileSystem) Open(path string) (io.ReadCloser, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("Open", path); err != nil {
		return nil, fs.Classify("open", path, err)
	}

	resolved, err := f.resolveLocked(path, true, 0)
	if err != nil {
		return nil, fs.Classify("open", path, err)
	}
	if f.modes[resolved].IsDir() {
		return nil, fs.Classify("open", path, syscall.EISDIR)
	}
	return io.NopCloser(bytes.NewReader(f.Files[resolved])), nil
}

// Create opens a file for writing. Content is committed on Close.
func (f *MockFileSystem) Create(path string) (io.WriteCloser, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("Create", path); err != nil {
		return nil, fs.Classify("create", path, err)
	}

	key, err := f.childPathLocked(path)
	if err != nil {
		return nil, fs.Classify("create", path, err)
	}
	if _, ok := f.Symlinks[key]; ok {
		if key, err = f.resolveLocked(key, true, 0); err != nil {
			return nil, fs.Classify("create", path, err)
		}
	}
	if f.modes[key].IsDir() {
		return nil, fs.Classify("create", path, syscall.EISDIR)
	}
	return &MockFileHandle{Fs: f, Path: key}, nil
}

// TypedMockFileSystem adds typed directory listings to MockFileSystem.
type TypedMockFileSystem struct {
	*MockFileSystem
}

// Typed wraps f so that listings report entry types.
func Typed(f *MockFileSystem) *TypedMockFileSystem {
	return &TypedMockFileSystem{MockFileSystem: f}
}

// ReadDir lists a directory with entry types, sorted by name.
func (t *TypedMockFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	f := t.MockFileSystem
	f.Mu.Lock()
	defer f.Mu.Unlock()

	path = filepath.Clean(path)
	if err := f.preflightLocked("ReadDir", path); err != nil {
		return nil, fs.Classify("readdir", path, err)
	}

	names, err := f.childrenLocked(path)
	if err != nil {
		return nil, err
	}
	dir, _ := f.resolveLocked(path, true, 0)

	entries := make([]os.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, iofs.FileInfoToDirEntry(f.infoLocked(filepath.Join(dir, name))))
	}
	return entries, nil
}

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("injected failure")

// String summarises the tree for failure messages.
func (f *MockFileSystem) String() string {
	f.Mu.RLock()
	defer f.Mu.RUnlock()
	paths := make([]string, 0, len(f.modes))
	for p := range f.modes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	var b bytes.Buffer
	for _, p := range paths {
		fmt.Fprintf(&b, "%v %s\n", f.modes[p], p)
	}
	return b.String()
}
