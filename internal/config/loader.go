package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "fastfs"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. FASTFS_COPY_CONCURRENCY=4.
	EnvPrefix = "FASTFS_"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs      FileSystem
	environ func() []string
	path    string
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, environ: os.Environ}
}

// NewLoaderWithFS creates a Loader with a custom filesystem and environment (for testing)
func NewLoaderWithFS(fs FileSystem, environ func() []string) *Loader {
	if environ == nil {
		environ = func() []string { return nil }
	}
	return &Loader{fs: fs, environ: environ}
}

// WithPath makes the loader read path instead of ~/.config/fastfs/config.json.
// A missing explicit file is an error.
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Load reads configuration from ~/.config/fastfs/config.json (or the explicit
// path), merges it over the defaults, then applies FASTFS_* environment
// overrides. Returns default config if the dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: This implementation unmarshals JSON keys directly over the default configuration.
// This allows explicit zero values (e.g., 0, false, "") in the config file to override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := l.read()
	if err != nil {
		return nil, err
	}

	if data != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err // Return error for malformed JSON
		}
	}

	if err := applyEnv(cfg, l.environ()); err != nil {
		return nil, err
	}

	// Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// read returns the config file content, or nil when the default file is absent.
func (l *Loader) read() ([]byte, error) {
	if l.path != "" {
		data, err := l.fs.ReadFile(l.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, l.path)
			}
			return nil, err
		}
		return data, nil
	}

	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return nil, nil // Use defaults if can't get home dir
	}

	configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Use defaults if file doesn't exist
		}
		return nil, err // Return error for permission issues
	}
	return data, nil
}

// applyEnv decodes FASTFS_<SECTION>_<KEY>=value pairs over cfg.
// Values are weakly typed, so "4", "true" and "0755" decode into ints, bools
// and octal permissions.
func applyEnv(cfg *Config, environ []string) error {
	overrides := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		section, field, ok := strings.Cut(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_")
		if !ok || section == "" || field == "" {
			continue
		}
		fields, _ := overrides[section].(map[string]any)
		if fields == nil {
			fields = map[string]any{}
			overrides[section] = fields
		}
		fields[field] = value
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("invalid %s environment override: %w", EnvPrefix, err)
	}
	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
