package undo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"filesort/internal/console"
	"filesort/internal/failures"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/movelog"
)

// ErrDestinationOccupied marks a restore refused because something already
// exists at the original location.
var ErrDestinationOccupied = errors.New("original location occupied")

// Failure is a record that could not be reversed.
type Failure struct {
	Record movelog.Record
	Err    error
}

// Result summarizes an undo run.
type Result struct {
	Restored []movelog.Record
	Skipped  []movelog.Record
	Failed   []Failure
	// Complete is true when every record was restored or skipped. The log is
	// then deleted; LogRemoveErr reports a failed deletion.
	Complete     bool
	LogRemoveErr error
	// Empty is true when there was nothing to undo.
	Empty bool
}

// Engine reverses the moves recorded in an output directory's move log.
type Engine struct {
	store     *movelog.Store
	out       *console.Printer
	logger    *slog.Logger
	removeLog func(outputDir string) error
}

// New constructs an engine. Nil collaborators fall back to defaults.
func New(store *movelog.Store, out *console.Printer, logger *slog.Logger) *Engine {
	if store == nil {
		store = movelog.NewStore(logger)
	}
	if out == nil {
		out = console.Discard()
	}
	return &Engine{
		store:     store,
		out:       out,
		logger:    logging.NewComponentLogger(logger, "undo"),
		removeLog: store.Remove,
	}
}

// Undo replays the log of outputDir newest first, moving each dest back to
// its src. Afterwards the log is gone when everything was reversed, or holds
// exactly the failed records in their original order.
func (e *Engine) Undo(ctx context.Context, outputDir string) (*Result, error) {
	logger := logging.WithContext(ctx, e.logger)
	result := &Result{}

	records, err := e.store.Load(outputDir)
	if err != nil {
		logging.WarnWithContext(logger, "move log unreadable; nothing to undo", "movelog_corrupt",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect or delete "+movelog.Path(outputDir)),
		)
		records = nil
	}
	if len(records) == 0 {
		e.out.Plain("No log entries found to undo.")
		result.Empty = true
		return result, nil
	}
	logger.Info("undo started", logging.String("output", outputDir), logging.Int("entry_count", len(records)))

	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		present, err := fileutil.Exists(record.Dest)
		if err == nil && !present {
			e.out.Warn("Skipped (missing destination): %s", record.Dest)
			result.Skipped = append(result.Skipped, record)
			continue
		}
		if err == nil {
			err = restore(record)
		}
		if err != nil {
			e.out.Error("Failed to restore %s -> %s: %v", record.Dest, record.Src, err)
			logging.WarnWithContext(logger, "restore failed", "restore_failed",
				logging.String("src", record.Src),
				logging.String("dest", record.Dest),
				logging.Error(err),
				logging.String(logging.FieldImpact, "entry kept in move log"),
			)
			result.Failed = append(result.Failed, Failure{Record: record, Err: err})
			continue
		}
		e.out.OK("Restored: %s -> %s", record.Dest, record.Src)
		result.Restored = append(result.Restored, record)
	}

	if len(result.Failed) == 0 {
		result.Complete = true
		if err := e.removeLog(outputDir); err != nil {
			result.LogRemoveErr = err
			e.out.Warn("Undo complete, but failed to remove log file.")
			logging.WarnWithContext(logger, "move log removal failed", "movelog_remove_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "a later undo will report the restored files as missing"),
			)
			return result, nil
		}
		e.out.OK("Undo complete. Log removed.")
		logger.Info("undo finished", logging.Int("restored", len(result.Restored)), logging.Int("skipped", len(result.Skipped)))
		return result, nil
	}

	remaining := make([]movelog.Record, 0, len(result.Failed))
	for i := len(result.Failed) - 1; i >= 0; i-- {
		remaining = append(remaining, result.Failed[i].Record)
	}
	if err := e.store.Replace(outputDir, remaining); err != nil {
		return result, failures.Wrap(failures.ErrTransient, "undo", "save remaining", outputDir, err)
	}
	e.out.Warn("Undo finished with some failures. Remaining failed entries saved to log.")
	logger.Info("undo finished with failures",
		logging.Int("restored", len(result.Restored)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func restore(record movelog.Record) error {
	if err := os.MkdirAll(filepath.Dir(record.Src), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", record.Src, err)
	}
	occupied, err := fileutil.Exists(record.Src)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("%w: %s", ErrDestinationOccupied, record.Src)
	}
	return fileutil.Move(record.Dest, record.Src)
}
