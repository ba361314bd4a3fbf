package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The source and output directories stay as given: relative values are
// resolved against the working directory of each invocation, as the move log
// records them.
func (c *Config) normalize() error {
	c.SourceDir = strings.TrimSpace(c.SourceDir)
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if strings.HasPrefix(c.SourceDir, "~") {
		expanded, err := expandPath(c.SourceDir)
		if err != nil {
			return err
		}
		c.SourceDir = expanded
	}
	if strings.HasPrefix(c.OutputDir, "~") {
		expanded, err := expandPath(c.OutputDir)
		if err != nil {
			return err
		}
		c.OutputDir = expanded
	}
	if c.MetricsFile = strings.TrimSpace(c.MetricsFile); c.MetricsFile != "" {
		expanded, err := expandPath(c.MetricsFile)
		if err != nil {
			return err
		}
		c.MetricsFile = expanded
	}
	c.normalizeLogging()
	c.normalizeCategories()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		c.Categories = nil
		return
	}
	// NoLower keeps acronyms such as "PDFs" intact.
	caser := cases.Title(language.Und, cases.NoLower)
	normalized := make(map[string][]string, len(c.Categories))
	for name, exts := range c.Categories {
		key := caser.String(strings.TrimSpace(name))
		seen := make(map[string]struct{}, len(normalized[key])+len(exts))
		for _, existing := range normalized[key] {
			seen[existing] = struct{}{}
		}
		for _, ext := range exts {
			clean := NormalizeExtension(ext)
			if clean == "" {
				continue
			}
			if _, dup := seen[clean]; dup {
				continue
			}
			seen[clean] = struct{}{}
			normalized[key] = append(normalized[key], clean)
		}
		if _, ok := normalized[key]; !ok {
			normalized[key] = nil
		}
	}
	c.Categories = normalized
}

// NormalizeExtension lower-cases an extension and guarantees a leading dot.
// Blank input yields "".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
