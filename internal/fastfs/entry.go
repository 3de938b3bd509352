package fastfs

import "os"

// EntryKind classifies a directory entry. It always holds one of the four
// concrete values below.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindSymlink
	KindOther
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// DirEntry is a single classified child of a directory listing.
type DirEntry struct {
	Name string
	Kind EntryKind
}

// IsDir reports whether the entry is a directory.
func (e DirEntry) IsDir() bool { return e.Kind == KindDirectory }

// kindFromMode maps file mode type bits to an EntryKind.
func kindFromMode(mode os.FileMode) EntryKind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
