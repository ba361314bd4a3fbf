// Package fileutil holds the filesystem primitives filesort builds on:
// collision-free destination allocation, the rename-or-copy move used in both
// the organize and undo directions, and verified copying.
package fileutil
