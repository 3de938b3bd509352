package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks config values for life correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Copy validation
	if c.Copy.Concurrency < 1 {
		errs = append(errs, "copy.concurrency must be >= 1")
	}
	switch c.Copy.Symlinks {
	case "follow", "skip", "fail":
	default:
		errs = append(errs, "copy.symlinks must be one of follow, skip, fail")
	}
	switch c.Copy.Unsupported {
	case "fail", "skip":
	default:
		errs = append(errs, "copy.unsupported must be one of fail, skip")
	}

	// Dir validation
	if c.Dir.Perm > 0o777 {
		errs = append(errs, "dir.perm must be <= 0777")
	}
	// Without owner write and search nothing could be copied into a created directory.
	if c.Dir.Perm&0o300 != 0o300 {
		errs = append(errs, "dir.perm must grant the owner write and search (0300)")
	}

	// Log validation
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, "log.level must be a valid level (trace, debug, info, warn, error)")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be one of text, json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
