// Package outputlock serializes filesort processes that share an output
// directory. Locking is opt-in through the lock_output_dir setting.
package outputlock
