package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile and
// FASTFS_* environment variables.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Copy CopyConfig `json:"copy"`
	Dir  DirConfig  `json:"dir"`
	List ListConfig `json:"list"`
	Log  LogConfig  `json:"log"`
}

type CopyConfig struct {
	Concurrency int    `json:"concurrency"` // Default: 8 (1 = sequential)
	Symlinks    string `json:"symlinks"`    // Default: "follow" (follow, skip, fail)
	Unsupported string `json:"unsupported"` // Default: "fail" (fail, skip)
	IgnoreFile  string `json:"ignore_file"` // Default: "" (no ignore file)
}

type DirConfig struct {
	Perm uint32 `json:"perm"` // Default: 0o755, before umask
}

type ListConfig struct {
	ForceProbe bool `json:"force_probe"` // Default: false
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "info"
	Format string `json:"format"` // Default: "text" (text, json)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Copy: CopyConfig{
			Concurrency: 8,
			Symlinks:    "follow",
			Unsupported: "fail",
		},
		Dir: DirConfig{
			Perm: 0o755,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
