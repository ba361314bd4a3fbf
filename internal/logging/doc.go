// Package logging assembles structured slog loggers and formatting helpers used
// across filesort.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so organizer and undo code tag log lines
// with the current run ID. Logs go to stderr; stdout belongs to the per-file
// report the CLI prints.
package logging
