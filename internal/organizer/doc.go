// Package organizer sorts the top-level files of a source directory into
// per-category folders of an output directory.
//
// Each file is classified by extension, given a collision-free name inside
// its category folder and moved. Successful moves are appended to the output
// directory's move log so a later undo can reverse them. Per-file failures
// are reported and counted; they never abort the batch. Dry runs report the
// planned moves without touching the filesystem or the log.
package organizer
