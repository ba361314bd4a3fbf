// Package classify maps file extensions onto output categories.
//
// A Classifier is built once from an injected category table (the built-in
// defaults or the [categories] config section) and is safe to share.
package classify
