package batch

import (
	"log/slog"
	"time"
)

// Options configures runner behavior.
type Options struct {
	// ExcludePatterns specifies directory names to skip during file
	// discovery. These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// Logger receives per-file and summary events. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to process.
	// Files larger than this are skipped.
	MaxFileSize int64

	// OutDir is the directory converted files are written to, mirroring
	// their path relative to the run root. Empty means a dry run: files
	// are converted and reported but nothing is written.
	OutDir string

	// Patterns specifies glob patterns to filter candidate files.
	// Empty means all candidates are processed.
	Patterns []string

	// Timeout is the maximum duration for the entire run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file converters.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithWorkers sets the number of concurrent file converters.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithExcludePatterns adds directory patterns to skip during discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum file size to process.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

// WithPatterns sets glob patterns to filter candidate files.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithOutDir sets the output directory for converted files.
func WithOutDir(dir string) Option {
	return func(o *Options) {
		o.OutDir = dir
	}
}

// WithLogger sets the logger for run events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
}
