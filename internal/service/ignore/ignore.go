// Package ignore excludes paths from a tree copy using gitignore-style patterns.
package ignore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/fastfs/internal/service/fs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const commentPrefix = "#"

// ReadError is returned when an ignore file exists but cannot be read.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read ignore file at %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }

// fileSystem defines the minimal filesystem interface needed to load an ignore file.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
}

// Matcher implements gitignore pattern matching using go-git's gitignore matcher.
type Matcher struct {
	matcher  gitignore.Matcher
	patterns int
}

// NewMatcher creates a matcher from pattern lines. Blank lines and comments are skipped.
func NewMatcher(lines []string) *Matcher {
	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &Matcher{}
	}
	return &Matcher{matcher: gitignore.NewMatcher(patterns), patterns: len(patterns)}
}

// Load reads the ignore file name from root and appends extra patterns after
// it, so extra patterns take precedence. A missing file contributes nothing.
func Load(fsys fileSystem, root, name string, extra []string) (*Matcher, error) {
	var lines []string
	if name != "" {
		path := filepath.Join(root, name)
		content, err := readFile(fsys, path)
		switch {
		case err == nil:
			lines = strings.Split(string(content), "\n")
		case fs.IsKind(err, fs.KindNotFound):
		default:
			return nil, &ReadError{Path: path, Cause: err}
		}
	}
	return NewMatcher(append(lines, extra...)), nil
}

func readFile(fsys fileSystem, path string) ([]byte, error) {
	if _, err := fsys.Stat(path); err != nil {
		return nil, err
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Len returns the number of patterns loaded.
func (m *Matcher) Len() int {
	return m.patterns
}

// ShouldIgnore checks if a slash separated path relative to the copy root
// matches any pattern. Returns false if no patterns were loaded.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}

	// Convert to gitignore format (split path into segments)
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	// Normalize path separators
	normalized := filepath.ToSlash(path)

	// Split by forward slash
	parts := strings.Split(normalized, "/")
	var segments []string
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}

	return segments
}
