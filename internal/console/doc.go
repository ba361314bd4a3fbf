// Package console renders the human-readable report: per-file status lines,
// summary tables and notices. It is the scripting contract of the CLI, so
// lines are stable plain text and color is added only on terminals.
package console
