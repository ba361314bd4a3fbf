package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must be set")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Watch.DebounceMS < 0 {
		return errors.New("watch.debounce_ms must be zero or positive")
	}
	return c.validateCategories()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCategories() error {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" {
			return errors.New("categories: category name must not be empty")
		}
		if strings.EqualFold(name, OthersCategory) {
			return fmt.Errorf("categories: %q is reserved for unknown extensions", OthersCategory)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("categories: %q must not contain path separators", name)
		}
		if len(c.Categories[name]) == 0 {
			return fmt.Errorf("categories.%s must list at least one extension", name)
		}
	}
	return nil
}
