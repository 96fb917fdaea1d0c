// Package batch converts whole test trees. It discovers candidate test
// files under a root, converts them with bounded parallelism, and
// collects per-file results and errors without letting one bad file
// abort its siblings.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/domain"
	"github.com/testshift/core/pkg/report"
)

const (
	// DefaultWorkers indicates that the runner should use GOMAXPROCS as
	// the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default run timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names that are skipped by
// default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	"build",
	".next",
	"coverage",
	".cache",
}

var (
	// ErrRunCancelled is returned when a run is cancelled via context.
	ErrRunCancelled = errors.New("batch: run cancelled")
	// ErrRunTimeout is returned when a run exceeds the timeout duration.
	ErrRunTimeout = errors.New("batch: run timeout")
)

// Runner converts file trees against one registry.
type Runner struct {
	registry *converter.Registry
	options  *Options
}

// Result contains the outcome of one run.
type Result struct {
	// Files holds one entry per successfully converted file, sorted by
	// path.
	Files []FileResult

	// Errors contains non-fatal per-file errors. A failed file never
	// aborts the rest of the run.
	Errors []FileError

	// Stats provides run totals.
	Stats Stats
}

// Summary aggregates the per-file annotation reports of a run.
func (r *Result) Summary() *report.Summary {
	files := make([]report.FileReport, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, f.Report)
	}
	return report.Build(files)
}

// FileResult is the outcome for one converted file.
type FileResult struct {
	// Path is the file path relative to the run root.
	Path string

	// OutPath is the absolute path the converted file was written to.
	// Empty on a dry run.
	OutPath string

	// Source is the dialect the file was converted from.
	Source domain.Dialect

	// Report lists the annotations left in the converted output.
	Report report.FileReport
}

// FileError represents an error that occurred during a specific phase of
// a run.
type FileError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for
	// non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "read", "detect", "pair", "write"
	Phase string
}

// Error implements the error interface.
func (e FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Stats provides totals for one run.
type Stats struct {
	// FilesDiscovered is the number of candidate files found.
	FilesDiscovered int

	// FilesConverted is the number of files converted successfully.
	FilesConverted int

	// FilesFailed is the number of files that failed in any phase.
	FilesFailed int

	// TotalTodos counts unconvertible-construct annotations across all
	// converted files.
	TotalTodos int

	// TotalWarnings counts risky-translation annotations across all
	// converted files.
	TotalWarnings int

	// Duration is the total run duration.
	Duration time.Duration
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *converter.Registry, opts ...Option) *Runner {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Runner{
		registry: registry,
		options:  options,
	}
}

// Run discovers candidate files under root and converts each from source
// to target. Passing domain.DialectUnknown as source enables per-file
// detection. Configuration errors (unknown target, unregistered pair)
// fail fast before any file is read.
func (r *Runner) Run(ctx context.Context, root string, source, target domain.Dialect) (*Result, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
	defer cancel()

	if err := r.checkPair(source, target); err != nil {
		return nil, err
	}

	result := &Result{}

	files, errs := discover(ctx, root, r.options)
	for _, err := range errs {
		result.Errors = append(result.Errors, FileError{
			Err:   err,
			Phase: "discovery",
		})
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) > 0 {
		r.convertParallel(ctx, root, files, source, target, result)
	}

	r.finish(result, startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrRunTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrRunCancelled
		}
	}

	return result, nil
}

// RunFiles converts specific files (for incremental re-migration). Paths
// must be relative to root. Discovery is bypassed entirely.
func (r *Runner) RunFiles(ctx context.Context, root string, files []string, source, target domain.Dialect) (*Result, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
	defer cancel()

	if err := r.checkPair(source, target); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.FilesDiscovered = len(files)

	if len(files) > 0 {
		r.convertParallel(ctx, root, files, source, target, result)
	}

	r.finish(result, startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrRunTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrRunCancelled
		}
	}

	return result, nil
}

// Discover returns the candidate file paths a Run over root would
// convert, relative to root, without reading or converting anything.
// Callers use it to diff against recorded state before an incremental
// RunFiles.
func (r *Runner) Discover(ctx context.Context, root string) ([]string, []error) {
	return discover(ctx, root, r.options)
}

// checkPair validates the run configuration before any file is touched.
// With an explicit source the full pair must resolve; in detection mode
// only the target can be checked up front.
func (r *Runner) checkPair(source, target domain.Dialect) error {
	if source == domain.DialectUnknown {
		if r.registry.Find(target) == nil {
			return fmt.Errorf("%w: %s", converter.ErrUnknownDialect, target)
		}
		return nil
	}
	_, err := r.registry.New(source, target)
	return err
}

func (r *Runner) convertParallel(ctx context.Context, root string, files []string, source, target domain.Dialect, result *Result) {
	workers := r.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	converters := newPairCache(r.registry, target)

	var mu sync.Mutex

	for _, file := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			fileResult, fileErr := r.convertFile(gCtx, root, file, source, converters)

			mu.Lock()
			defer mu.Unlock()

			if fileErr != nil {
				r.options.Logger.Warn("conversion failed",
					"path", fileErr.Path, "phase", fileErr.Phase, "err", fileErr.Err)
				result.Errors = append(result.Errors, *fileErr)
				return nil
			}
			result.Files = append(result.Files, *fileResult)
			return nil
		})
	}

	_ = g.Wait()

	// Sort by path for deterministic output order. Goroutines complete in
	// variable order based on file size.
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
}

func (r *Runner) convertFile(ctx context.Context, root, path string, source domain.Dialect, converters *pairCache) (*FileResult, *FileError) {
	if err := ctx.Err(); err != nil {
		return nil, &FileError{Err: err, Path: path, Phase: "read"}
	}

	content, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		return nil, &FileError{Err: err, Path: path, Phase: "read"}
	}
	text := string(content)

	if source == domain.DialectUnknown {
		detected := r.registry.Detector().Detect(text)
		if detected.Dialect == domain.DialectUnknown {
			return nil, &FileError{
				Err:   errors.New("no dialect matched"),
				Path:  path,
				Phase: "detect",
			}
		}
		source = detected.Dialect
	}

	conv, err := converters.get(source)
	if err != nil {
		return nil, &FileError{Err: err, Path: path, Phase: "pair"}
	}

	out := conv.Convert(text)

	res := &FileResult{
		Path:   path,
		Source: source,
		Report: report.Parse(path, out),
	}

	if r.options.OutDir != "" {
		outPath := filepath.Join(r.options.OutDir, path)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return nil, &FileError{Err: err, Path: path, Phase: "write"}
		}
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			return nil, &FileError{Err: err, Path: path, Phase: "write"}
		}
		res.OutPath = outPath
	}

	r.options.Logger.Debug("converted",
		"path", path, "source", string(source),
		"todos", len(res.Report.Todos), "warnings", len(res.Report.Warnings))

	return res, nil
}

func (r *Runner) finish(result *Result, startTime time.Time) {
	result.Stats.FilesConverted = len(result.Files)
	for _, e := range result.Errors {
		if e.Phase != "discovery" {
			result.Stats.FilesFailed++
		}
	}
	for _, f := range result.Files {
		result.Stats.TotalTodos += len(f.Report.Todos)
		result.Stats.TotalWarnings += len(f.Report.Warnings)
	}
	result.Stats.Duration = time.Since(startTime)

	r.options.Logger.Info("run complete",
		"discovered", result.Stats.FilesDiscovered,
		"converted", result.Stats.FilesConverted,
		"failed", result.Stats.FilesFailed,
		"todos", result.Stats.TotalTodos,
		"warnings", result.Stats.TotalWarnings,
		"duration", result.Stats.Duration)
}

// pairCache lazily builds one converter per detected source dialect. In
// explicit-source runs only one entry ever exists.
type pairCache struct {
	registry *converter.Registry
	target   domain.Dialect

	mu   sync.Mutex
	byID map[domain.Dialect]*converter.Converter
}

func newPairCache(registry *converter.Registry, target domain.Dialect) *pairCache {
	return &pairCache{
		registry: registry,
		target:   target,
		byID:     make(map[domain.Dialect]*converter.Converter),
	}
}

func (p *pairCache) get(source domain.Dialect) (*converter.Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.byID[source]; ok {
		return c, nil
	}
	c, err := p.registry.New(source, p.target)
	if err != nil {
		return nil, err
	}
	p.byID[source] = c
	return c, nil
}
