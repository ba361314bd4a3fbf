package movelog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"filesort/internal/failures"
	"filesort/internal/logging"
)

// Store reads and writes the move log of an output directory. Every write
// replaces the whole file through a temp file and rename, so a crash never
// leaves a half-written or duplicated log behind.
type Store struct {
	logger *slog.Logger
}

// NewStore constructs a store. A nil logger discards output.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logging.NewComponentLogger(logger, "movelog")}
}

// Path returns the log location for outputDir.
func Path(outputDir string) string {
	return filepath.Join(outputDir, FileName)
}

// Load returns the recorded moves of outputDir in chronological order. A
// missing log is an empty log. An unreadable or malformed log yields an empty
// log together with an error wrapping failures.ErrCorrupt; callers treat that
// as "no log" after reporting it. Records lacking src or dest are dropped.
func (s *Store) Load(outputDir string) ([]Record, error) {
	path := Path(outputDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, failures.Wrap(failures.ErrCorrupt, "movelog", "read", path, err)
	}

	var raw []Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, failures.Wrap(failures.ErrCorrupt, "movelog", "parse", path, err)
	}
	if raw == nil {
		// JSON null is not a list.
		return nil, failures.Wrap(failures.ErrCorrupt, "movelog", "parse", path+": not a list", nil)
	}

	records := make([]Record, 0, len(raw))
	for _, record := range raw {
		if !record.valid() {
			s.logger.Debug("dropping incomplete move record",
				logging.String("src", record.Src),
				logging.String("dest", record.Dest))
			continue
		}
		records = append(records, record)
	}
	s.logger.Debug("loaded move log", logging.String("path", path), logging.Int("entry_count", len(records)))
	return records, nil
}

// Append persists existing ++ entries, creating outputDir when needed. A
// corrupt existing log is reported and overwritten. It returns the log path.
func (s *Store) Append(outputDir string, entries []Record) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	existing, err := s.Load(outputDir)
	if err != nil {
		logging.WarnWithContext(s.logger, "existing move log unreadable; overwriting", "movelog_corrupt",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect or delete "+Path(outputDir)),
			logging.String(logging.FieldImpact, "moves recorded before this run cannot be undone"),
		)
		existing = nil
	}
	merged := make([]Record, 0, len(existing)+len(entries))
	merged = append(merged, existing...)
	merged = append(merged, entries...)
	if err := s.write(outputDir, merged); err != nil {
		return "", err
	}
	s.logger.Info("move log saved",
		logging.String("path", Path(outputDir)),
		logging.Int("appended", len(entries)),
		logging.Int("entry_count", len(merged)))
	return Path(outputDir), nil
}

// Replace overwrites the log with exactly entries.
func (s *Store) Replace(outputDir string, entries []Record) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	if entries == nil {
		entries = []Record{}
	}
	if err := s.write(outputDir, entries); err != nil {
		return err
	}
	s.logger.Info("move log rewritten", logging.String("path", Path(outputDir)), logging.Int("entry_count", len(entries)))
	return nil
}

// Remove deletes the log. A log that is already gone is not an error.
func (s *Store) Remove(outputDir string) error {
	if err := os.Remove(Path(outputDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove move log: %w", err)
	}
	return nil
}

func (s *Store) write(outputDir string, entries []Record) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal move log: %w", err)
	}
	data = append(data, '\n')

	path := Path(outputDir)
	tmp, err := os.CreateTemp(outputDir, TempPattern)
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename for %s: %w", path, err)
	}
	return nil
}
