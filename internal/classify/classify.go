package classify

import (
	"path/filepath"
	"sort"
	"strings"

	"filesort/internal/config"
)

// Others is the category for extensions no table entry claims.
const Others = config.OthersCategory

// Classifier maps file extensions onto category names. It is immutable once built.
type Classifier struct {
	byExt      map[string]string
	categories []string
}

// New builds a classifier from a category -> extensions table. The table is
// copied; when an extension is listed under several categories the
// alphabetically first category wins.
func New(table map[string][]string) *Classifier {
	names := make([]string, 0, len(table))
	for name := range table {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	byExt := make(map[string]string)
	for _, name := range names {
		for _, ext := range table[name] {
			key := config.NormalizeExtension(ext)
			if key == "" {
				continue
			}
			if _, taken := byExt[key]; taken {
				continue
			}
			byExt[key] = name
		}
	}
	return &Classifier{byExt: byExt, categories: names}
}

// Default returns a classifier over the built-in extension table.
func Default() *Classifier {
	return New(config.DefaultCategories())
}

// Classify returns the category for ext ("JPG", ".jpg" and ".Jpg" are
// equivalent). Unknown or empty extensions map to Others.
func (c *Classifier) Classify(ext string) string {
	if c == nil {
		return Others
	}
	if category, ok := c.byExt[config.NormalizeExtension(ext)]; ok {
		return category
	}
	return Others
}

// ClassifyName classifies a file by the extension of its base name.
func (c *Classifier) ClassifyName(name string) string {
	return c.Classify(Extension(name))
}

// Categories lists the configured category names in sorted order, excluding Others.
func (c *Classifier) Categories() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.categories...)
}

// Extensions lists the extensions routed to category in sorted order.
func (c *Classifier) Extensions(category string) []string {
	if c == nil {
		return nil
	}
	var exts []string
	for ext, name := range c.byExt {
		if name == category {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Extension returns the lower-cased extension of name including the dot, or "".
// Leading dots are part of the stem, so ".bashrc" and "..txt" have none.
func Extension(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.ToLower(ext)
}
