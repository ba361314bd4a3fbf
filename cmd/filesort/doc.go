// Package main hosts the filesort CLI entrypoint and command graph.
//
// The root command organizes a source directory (or undoes earlier runs with
// --undo). Subcommands inspect the move log, list categories, watch a
// directory, run permission checks and scaffold configuration. The heavy
// lifting lives in the internal packages; this package resolves
// configuration, builds the logger and wires collaborators together.
package main
