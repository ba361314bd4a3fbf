// Package undo reverses organize runs using the move log of an output
// directory.
package undo
