package ignore

import (
	"os"
	"testing"

	"github.com/Cyclone1070/fastfs/internal/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_ShouldIgnore(t *testing.T) {
	m := NewMatcher([]string{
		"# build output",
		"",
		"*.log",
		"node_modules/",
		"/dist",
		"!keep.log",
	})

	tests := []struct {
		name  string
		path  string
		isDir bool
		want  bool
	}{
		{"glob at root", "debug.log", false, true},
		{"glob nested", "a/b/debug.log", false, true},
		{"negation", "keep.log", false, false},
		{"dir only pattern matches dir", "pkg/node_modules", true, true},
		{"dir only pattern skips file", "pkg/node_modules", false, false},
		{"anchored at root", "dist", true, true},
		{"anchored not nested", "src/dist", true, false},
		{"plain file", "src/main.go", false, false},
		{"empty path", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ShouldIgnore(tt.path, tt.isDir))
		})
	}
	assert.Equal(t, 4, m.Len())
}

func TestMatcher_Empty(t *testing.T) {
	m := NewMatcher(nil)
	assert.False(t, m.ShouldIgnore("anything", false))
	assert.Equal(t, 0, m.Len())
}

func TestLoad(t *testing.T) {
	t.Run("file and extra patterns", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		fs.CreateFile("/src/.cprignore", []byte("*.tmp\r\ncache/\n"))

		m, err := Load(fs, "/src", ".cprignore", []string{"*.bak"})

		require.NoError(t, err)
		assert.Equal(t, 3, m.Len())
		assert.True(t, m.ShouldIgnore("x.tmp", false))
		assert.True(t, m.ShouldIgnore("a/cache", true))
		assert.True(t, m.ShouldIgnore("x.bak", false))
	})

	t.Run("missing file yields extra only", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		fs.CreateDir("/src")

		m, err := Load(fs, "/src", ".cprignore", []string{"*.bak"})

		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("unreadable file", func(t *testing.T) {
		fs := mocks.NewMockFileSystem()
		fs.CreateFile("/src/.cprignore", []byte("*.tmp"))
		fs.SetOperationError("Open", os.ErrPermission)

		_, err := Load(fs, "/src", ".cprignore", nil)

		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, "/src/.cprignore", readErr.Path)
	})
}
