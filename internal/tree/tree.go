// Package tree captures a directory's structure as nested maps, so two trees
// can be compared after a copy.
package tree

import (
	"os"
	"path/filepath"
	"strings"
)

// HiddenPrefix marks entries Snapshot leaves out.
const HiddenPrefix = "."

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadDirNames(path string) ([]string, error)
}

// Snapshot maps every visible entry name under dir to its size in bytes
// (files) or to a nested snapshot (directories). Symlinks are followed.
func Snapshot(fsys fileSystem, dir string) (map[string]any, error) {
	names, err := fsys.ReadDirNames(dir)
	if err != nil {
		return nil, err
	}

	result := make(map[string]any, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, HiddenPrefix) {
			continue
		}
		full := filepath.Join(dir, name)
		info, err := fsys.Stat(full)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			sub, err := Snapshot(fsys, full)
			if err != nil {
				return nil, err
			}
			result[name] = sub
		} else {
			result[name] = info.Size()
		}
	}
	return result, nil
}

// Count returns the number of files and directories in a snapshot.
func Count(snapshot map[string]any) (files, dirs int) {
	for _, v := range snapshot {
		if sub, ok := v.(map[string]any); ok {
			f, d := Count(sub)
			files += f
			dirs += d + 1
		} else {
			files++
		}
	}
	return files, dirs
}
