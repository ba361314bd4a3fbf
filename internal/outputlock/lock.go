package outputlock

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"filesort/internal/failures"
	"filesort/internal/logging"
)

// FileName is the lock file created inside a locked output directory.
const FileName = ".filesort.lock"

// Lock is an advisory exclusive lock on an output directory.
type Lock struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Path returns the lock file location for outputDir.
func Path(outputDir string) string {
	return filepath.Join(outputDir, FileName)
}

// Acquire takes the lock without blocking. When another process holds it the
// returned error wraps failures.ErrLocked.
func Acquire(outputDir string, logger *slog.Logger) (*Lock, error) {
	logger = logging.NewComponentLogger(logger, "outputlock")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	path := Path(outputDir)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, failures.Wrap(failures.ErrLocked, "outputlock", "acquire",
			fmt.Sprintf("output directory %s is in use by another filesort process", outputDir), nil)
	}
	logger.Debug("output directory locked", logging.String("path", path))
	return &Lock{path: path, lock: fl, logger: logger}, nil
}

// Release unlocks. The lock file stays in place; removing it would let a
// waiter lock an unlinked inode. Safe on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	l.logger.Debug("output directory unlocked", logging.String("path", l.path))
	l.lock = nil
	return nil
}
