package fastfs

import (
	"context"
	"os"
	"testing"

	"github.com/Cyclone1070/fastfs/internal/service/fs"
	"github.com/Cyclone1070/fastfs/internal/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_IsDir(t *testing.T) {
	mfs := mocks.NewMockFileSystem()
	mfs.CreateDir("/data/dir")
	mfs.CreateFile("/data/file.txt", []byte("x"))
	mfs.CreateSymlink("/data/dirlink", "/data/dir")
	mfs.CreateSymlink("/data/dangling", "/data/missing")
	c := NewChecker(mfs)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", "/data/dir", true},
		{"root", "/", true},
		{"file", "/data/file.txt", false},
		{"missing", "/data/missing", false},
		{"prefix is a file", "/data/file.txt/child", false},
		{"symlink to directory", "/data/dirlink", true},
		{"dangling symlink", "/data/dangling", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.IsDir(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_IsDir_Errors(t *testing.T) {
	t.Run("permission denied is reported", func(t *testing.T) {
		mfs := mocks.NewMockFileSystem()
		mfs.SetError("/secret", os.ErrPermission)

		_, err := NewChecker(mfs).IsDir(context.Background(), "/secret")

		assert.True(t, fs.IsKind(err, fs.KindPermission), "got %v", err)
	})

	t.Run("io failure is reported", func(t *testing.T) {
		mfs := mocks.NewMockFileSystem()
		mfs.SetOperationError("Stat", mocks.ErrInjected)

		_, err := NewChecker(mfs).IsDir(context.Background(), "/any")

		assert.ErrorIs(t, err, mocks.ErrInjected)
		assert.True(t, fs.IsKind(err, fs.KindIO))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewChecker(mocks.NewMockFileSystem()).IsDir(ctx, "/")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
