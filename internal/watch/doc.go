// Package watch keeps a source directory organized by re-running the
// organizer when files arrive.
package watch
