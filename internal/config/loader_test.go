package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
// NOTE: This is a minimal mock for config loading tests.
// For comprehensive filesystem mocking, see internal/testing/mocks.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const dotfile = "/home/user/.config/fastfs/config.json"

func env(kv ...string) func() []string {
	return func() []string { return kv }
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	// Config file doesn't exist - should return all defaults
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{}, // Empty - no config file
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Copy.Concurrency)
	assert.Equal(t, "follow", cfg.Copy.Symlinks)
	assert.Equal(t, uint32(0o755), cfg.Dir.Perm)
	assert.False(t, cfg.List.ForceProbe)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"copy": {"concurrency": 2, "symlinks": "skip", "unsupported": "skip", "ignore_file": ".cprignore"},
		"dir": {"perm": 448},
		"list": {"force_probe": true},
		"log": {"level": "debug", "format": "json"}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Copy.Concurrency)
	assert.Equal(t, "skip", cfg.Copy.Symlinks)
	assert.Equal(t, "skip", cfg.Copy.Unsupported)
	assert.Equal(t, ".cprignore", cfg.Copy.IgnoreFile)
	assert.Equal(t, uint32(0o700), cfg.Dir.Perm)
	assert.True(t, cfg.List.ForceProbe)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"copy": {"concurrency": 1}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Copy.Concurrency)     // Overridden
	assert.Equal(t, "follow", cfg.Copy.Symlinks) // Default
	assert.Equal(t, "info", cfg.Log.Level)       // Default
}

func TestLoad_ExplicitPath(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/etc/fastfs.json": []byte(`{"copy": {"symlinks": "fail"}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs, nil).WithPath("/etc/fastfs.json").Load()

	require.NoError(t, err)
	assert.Equal(t, "fail", cfg.Copy.Symlinks)
}

func TestLoad_EnvOverrides(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"copy": {"concurrency": 2}}`)},
	}
	loader := NewLoaderWithFS(fs, env(
		"FASTFS_COPY_CONCURRENCY=16",
		"FASTFS_COPY_IGNORE_FILE=.gitignore",
		"FASTFS_DIR_PERM=0700",
		"FASTFS_LIST_FORCE_PROBE=true",
		"HOME=/home/user",
	))

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Copy.Concurrency) // Env wins over dotfile
	assert.Equal(t, ".gitignore", cfg.Copy.IgnoreFile)
	assert.Equal(t, uint32(0o700), cfg.Dir.Perm)
	assert.True(t, cfg.List.ForceProbe)
	assert.Equal(t, "follow", cfg.Copy.Symlinks) // Untouched
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{invalid json`)},
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	// Can't determine home dir - gracefully fall back to defaults
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Copy.Concurrency) // Default
}

func TestLoad_ExplicitPathMissing_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}

	cfg, err := NewLoaderWithFS(fs, nil).WithPath("/nope.json").Load()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_BadEnvValue_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}
	loader := NewLoaderWithFS(fs, env("FASTFS_COPY_CONCURRENCY=many"))

	cfg, err := loader.Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FASTFS_")
}

func TestLoad_WrongJSONType_ReturnsError(t *testing.T) {
	// JSON is valid but wrong type (array instead of object)
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`["not", "an", "object"]`)},
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// --- EDGE CASE TESTS ---

func TestLoad_ZeroConcurrency_Rejected(t *testing.T) {
	// Explicit zero overrides the default and then fails validation
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"copy": {"concurrency": 0}}`)},
	}
	loader := NewLoaderWithFS(fs, nil)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_UnknownFields_Ignored(t *testing.T) {
	configJSON := `{"copy": {"concurrency": 3}, "unknown_field": "ignored"}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs, env("FASTFS_NOPE=1", "FASTFS_COPY_NOPE=1"))

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Copy.Concurrency)
}

// --- DEFAULT CONFIG TESTS ---

func TestDefaultConfig_AllFieldsInitialized(t *testing.T) {
	cfg := DefaultConfig()

	assert.Greater(t, cfg.Copy.Concurrency, 0)
	assert.NotEmpty(t, cfg.Copy.Symlinks)
	assert.NotEmpty(t, cfg.Copy.Unsupported)
	assert.NotZero(t, cfg.Dir.Perm)
	assert.NoError(t, cfg.Validate())
}
