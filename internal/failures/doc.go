// Package failures defines the sentinel error markers shared by the organizer,
// undo engine, move log store and CLI, plus the Wrap helper that composes
// component context around a cause.
//
// Callers classify errors with errors.Is against the exported markers; the
// CLI uses NonFatal to decide which reported conditions still exit cleanly.
package failures
