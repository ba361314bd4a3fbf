// Package movelog persists the ordered list of file relocations performed in
// an output directory so they can be undone later.
//
// The log is a JSON array stored as organize_log.json next to the category
// folders it describes. Organize runs append to it, a fully successful undo
// removes it and a partial undo rewrites it with only the moves that could
// not be reversed. A damaged log is never fatal: it reads as empty and the
// caller reports the problem.
package movelog
