// Package fs wraps the OS filesystem primitives used by fastfs and translates
// their errors into a closed set of kinds.
package fs

import (
	"io"
	"os"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
// It uses internal function fields to enable testability via functional injection.
type OSFileSystem struct {
	stat    func(name string) (os.FileInfo, error)
	lstat   func(name string) (os.FileInfo, error)
	mkdir   func(name string, perm os.FileMode) error
	readDir func(name string) ([]os.DirEntry, error)
	open    func(name string) (*os.File, error)
	create  func(name string) (*os.File, error)
}

// NewOSFileSystem creates a new OSFileSystem with real OS syscalls.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{
		stat:    os.Stat,
		lstat:   os.Lstat,
		mkdir:   os.Mkdir,
		readDir: os.ReadDir,
		open:    os.Open,
		create:  os.Create,
	}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.stat(path)
	return info, Classify("stat", path, err)
}

// Lstat returns file info for a path without following symlinks.
func (fs *OSFileSystem) Lstat(path string) (os.FileInfo, error) {
	info, err := fs.lstat(path)
	return info, Classify("lstat", path, err)
}

// Mkdir creates a single directory. The parent must already exist.
func (fs *OSFileSystem) Mkdir(path string, perm os.FileMode) error {
	return Classify("mkdir", path, fs.mkdir(path, perm))
}

// ReadDir lists a directory with the type information the platform reports.
// Entries are sorted by name.
func (fs *OSFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	entries, err := fs.readDir(path)
	if err != nil {
		return nil, Classify("readdir", path, err)
	}
	return entries, nil
}

// ReadDirNames lists the names of a directory's children in directory order,
// without any type information.
func (fs *OSFileSystem) ReadDirNames(path string) ([]string, error) {
	dir, err := fs.open(path)
	if err != nil {
		return nil, Classify("open", path, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, Classify("readdir", path, err)
	}
	return names, nil
}

// Open opens a file for reading.
func (fs *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	f, err := fs.open(path)
	if err != nil {
		return nil, Classify("open", path, err)
	}
	return &classifiedFile{file: f, path: path}, nil
}

// Create creates a file for writing, truncating it if it exists.
func (fs *OSFileSystem) Create(path string) (io.WriteCloser, error) {
	f, err := fs.create(path)
	if err != nil {
		return nil, Classify("create", path, err)
	}
	return &classifiedFile{file: f, path: path}, nil
}

// classifiedFile keeps read, write and close failures inside the error taxonomy.
type classifiedFile struct {
	file *os.File
	path string
}

func (f *classifiedFile) Read(p []byte) (int, error) {
	n, err := f.file.Read(p)
	if err == io.EOF {
		return n, err
	}
	return n, Classify("read", f.path, err)
}

func (f *classifiedFile) Write(p []byte) (int, error) {
	n, err := f.file.Write(p)
	return n, Classify("write", f.path, err)
}

func (f *classifiedFile) Close() error {
	return Classify("close", f.path, f.file.Close())
}
