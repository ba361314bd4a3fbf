package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"filesort/internal/classify"
	"filesort/internal/console"
	"filesort/internal/failures"
	"filesort/internal/fileutil"
	"filesort/internal/logging"
	"filesort/internal/movelog"
	"filesort/internal/outputlock"
)

// Options controls a single organize run.
type Options struct {
	Source string
	Output string
	DryRun bool
	// AbsolutePaths records src and dest as absolute paths so that undo
	// works regardless of the working directory it runs from.
	AbsolutePaths bool
}

// PlannedMove is a move reported by a dry run.
type PlannedMove struct {
	Src      string
	Dest     string
	Category string
}

// Result describes what a run did.
type Result struct {
	RunID      string
	Records    []movelog.Record
	Planned    []PlannedMove
	Counts     map[string]int
	Scanned    int
	Skipped    int
	BytesMoved int64
	LogPath    string
}

// Moved reports the number of files relocated this run.
func (r *Result) Moved() int {
	if r == nil {
		return 0
	}
	return len(r.Records)
}

// Organizer sorts the files of a source directory into category folders.
type Organizer struct {
	classifier *classify.Classifier
	store      *movelog.Store
	out        *console.Printer
	logger     *slog.Logger
	now        func() time.Time
	newRunID   func() string
}

// New constructs an organizer. Nil collaborators fall back to the built-in
// category table, a discarding printer and a no-op logger.
func New(classifier *classify.Classifier, store *movelog.Store, out *console.Printer, logger *slog.Logger) *Organizer {
	if classifier == nil {
		classifier = classify.Default()
	}
	if out == nil {
		out = console.Discard()
	}
	if store == nil {
		store = movelog.NewStore(logger)
	}
	return &Organizer{
		classifier: classifier,
		store:      store,
		out:        out,
		logger:     logging.NewComponentLogger(logger, "organizer"),
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Organize moves every regular file directly inside opts.Source into
// opts.Output/<category>/ and appends one record per move to the output
// directory's move log. A missing source is reported and returned as an error
// wrapping failures.ErrSourceMissing together with an empty result.
func (o *Organizer) Organize(ctx context.Context, opts Options) (*Result, error) {
	runID, ok := failures.RunIDFromContext(ctx)
	if !ok {
		runID = o.newRunID()
		ctx = failures.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, o.logger)
	result := &Result{RunID: runID, Counts: map[string]int{}}

	info, err := os.Stat(opts.Source)
	if err != nil || !info.IsDir() {
		o.out.Error("Source folder does not exist: %s", opts.Source)
		logger.Warn("source folder missing",
			logging.String("source", opts.Source),
			logging.String(logging.FieldEventType, "source_missing"),
			logging.String(logging.FieldErrorHint, "check the source path argument or source_dir setting"),
		)
		return result, failures.Wrap(failures.ErrSourceMissing, "organizer", "scan", opts.Source, err)
	}

	sourceRoot := opts.Source
	if opts.AbsolutePaths {
		if abs, absErr := filepath.Abs(sourceRoot); absErr == nil {
			sourceRoot = abs
		}
		if abs, absErr := filepath.Abs(opts.Output); absErr == nil {
			opts.Output = abs
		}
	}

	entries, err := os.ReadDir(opts.Source)
	if err != nil {
		return result, fmt.Errorf("list source %s: %w", opts.Source, err)
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.Output, 0o755); err != nil {
			return result, fmt.Errorf("create output directory %s: %w", opts.Output, err)
		}
	}

	logger.Info("organize started",
		logging.String("source", opts.Source),
		logging.String("output", opts.Output),
		logging.Bool("dry_run", opts.DryRun),
		logging.Int("entry_count", len(entries)),
	)

	inPlace := sameDirectory(opts.Source, opts.Output)
	for _, entry := range entries {
		if isDirectory(opts.Source, entry) {
			continue
		}
		if inPlace && isBookkeeping(entry.Name()) {
			continue
		}
		result.Scanned++
		o.organizeFile(logger, opts, sourceRoot, entry, result)
	}

	o.printSummary(result)

	if len(result.Records) == 0 {
		o.out.Blank()
		o.out.Plain("No files were moved (dry run or nothing to move).")
		logger.Info("organize finished", logging.Int("scanned", result.Scanned), logging.Int("skipped", result.Skipped))
		return result, nil
	}

	logPath, err := o.store.Append(opts.Output, result.Records)
	if err != nil {
		// Files are already moved; the caller must learn the log is missing.
		return result, failures.Wrap(failures.ErrTransient, "organizer", "save log", opts.Output, err)
	}
	result.LogPath = logPath
	o.out.Blank()
	o.out.Info("Log saved to: %s", logPath)
	o.out.Plain("You can undo this run with: filesort --undo --output %s", opts.Output)

	logger.Info("organize finished",
		logging.Int("scanned", result.Scanned),
		logging.Int("moved", len(result.Records)),
		logging.Int("skipped", result.Skipped),
		logging.Int64("bytes_moved", result.BytesMoved),
		logging.Any("categories", result.Counts),
	)
	return result, nil
}

func (o *Organizer) organizeFile(logger *slog.Logger, opts Options, sourceRoot string, entry fs.DirEntry, result *Result) {
	name := entry.Name()
	category := o.classifier.ClassifyName(name)
	destDir := filepath.Join(opts.Output, category)
	srcPath := filepath.Join(opts.Source, name)

	if !opts.DryRun {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			o.fail(logger, name, srcPath, err, result)
			return
		}
	}
	dest, err := fileutil.UniquePath(destDir, name)
	if err != nil {
		o.fail(logger, name, srcPath, err, result)
		return
	}

	if opts.DryRun {
		o.out.Plain("[DRY RUN] Would move: %s -> %s", srcPath, dest)
		result.Planned = append(result.Planned, PlannedMove{Src: srcPath, Dest: dest, Category: category})
		return
	}

	var size int64
	if info, infoErr := entry.Info(); infoErr == nil {
		size = info.Size()
	}
	if err := fileutil.Move(srcPath, dest); err != nil {
		o.fail(logger, name, srcPath, err, result)
		return
	}

	o.out.OK("Moved: %s -> %s/", name, category)
	logger.Debug("file moved",
		logging.String("src", srcPath),
		logging.String("dest", dest),
		logging.String("category", category),
	)
	result.Records = append(result.Records, movelog.NewRecord(o.now(), filepath.Join(sourceRoot, name), dest, result.RunID))
	result.Counts[category]++
	result.BytesMoved += size
}

func (o *Organizer) fail(logger *slog.Logger, name, srcPath string, err error, result *Result) {
	result.Skipped++
	o.out.Error("Failed to move %s: %v", name, err)
	logging.WarnWithContext(logger, "file move failed", "move_failed",
		logging.String("src", srcPath),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check permissions on the source and output directories"),
		logging.String(logging.FieldImpact, "file left in place"),
	)
}

// isDirectory follows symlinks so a link to a directory is skipped like the
// directory itself, while a dangling link is treated as a file.
func isDirectory(source string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(source, entry.Name()))
	return err == nil && info.IsDir()
}

// sameDirectory reports whether a and b name the same existing directory.
func sameDirectory(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// isBookkeeping matches the files filesort itself keeps in an output directory.
func isBookkeeping(name string) bool {
	if name == movelog.FileName || name == outputlock.FileName {
		return true
	}
	stray, _ := filepath.Match(movelog.TempPattern, name)
	return stray
}

// SortedCategories returns the categories with at least one move, sorted.
func (r *Result) SortedCategories() []string {
	names := make([]string, 0, len(r.Counts))
	for name, count := range r.Counts {
		if count > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
