package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

const maxNameAttempts = 100000

// UniquePath returns a path inside destDir for filename that does not exist
// yet: filename itself when free, otherwise "name(1).ext", "name(2).ext", and
// so on. Nothing is created, so repeated calls without touching the directory
// return the same candidate.
func UniquePath(destDir, filename string) (string, error) {
	filename = filepath.Base(filename)
	if strings.TrimSpace(filename) == "" || filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("allocate path in %s: empty filename", destDir)
	}
	stem, ext := SplitName(filename)

	candidate := filepath.Join(destDir, filename)
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		taken, err := Exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(destDir, fmt.Sprintf("%s(%d)%s", stem, attempt, ext))
	}
	return "", fmt.Errorf("exhausted filename slots for %s in %s", filename, destDir)
}

// SplitName splits a base name into stem and extension. Leading dots never
// start an extension, so ".env" and "..bashrc" are all stem.
func SplitName(filename string) (string, string) {
	trimmed := strings.TrimLeft(filename, ".")
	ext := filepath.Ext(trimmed)
	if ext == trimmed {
		return filename, ""
	}
	return strings.TrimSuffix(filename, ext), ext
}
