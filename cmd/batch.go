package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/testshift/core/internal/ui"
	"github.com/testshift/core/pkg/batch"
	"github.com/testshift/core/pkg/converter/dialects/all"
	"github.com/testshift/core/pkg/domain"
	"github.com/testshift/core/pkg/state"
)

var batchParams BatchParams

var batchCmd = &cobra.Command{
	Use:   "batch <root>",
	Short: "Convert every test file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := batchParams
		p.Root = args[0]
		return RunBatch(cmd.OutOrStdout(), p)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchParams.From, "from", "", "source dialect (per-file detection when omitted)")
	batchCmd.Flags().StringVar(&batchParams.To, "to", "", "target dialect")
	batchCmd.Flags().StringVar(&batchParams.Out, "out", "", "output directory (dry run when omitted)")
	batchCmd.Flags().IntVar(&batchParams.Workers, "workers", 0, "concurrent file converters (0 = GOMAXPROCS)")
	batchCmd.Flags().StringSliceVar(&batchParams.Patterns, "pattern", nil, "glob patterns to include (e.g. 'e2e/**/*.cy.js')")
	batchCmd.Flags().StringSliceVar(&batchParams.Exclude, "exclude", nil, "directory names to skip")
	batchCmd.Flags().StringVar(&batchParams.StatePath, "state", "", "path to the run-history database")
	batchCmd.Flags().BoolVar(&batchParams.ChangedOnly, "changed-only", false, "only convert files changed since the last recorded run (requires --state)")
	_ = batchCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(batchCmd)
}

// BatchParams carries the batch command's flag values.
type BatchParams struct {
	Root        string
	From        string
	To          string
	Out         string
	Workers     int
	Patterns    []string
	Exclude     []string
	StatePath   string
	ChangedOnly bool
}

func RunBatch(w io.Writer, p BatchParams) error {
	target, err := domain.ParseDialect(p.To)
	if err != nil {
		return err
	}

	source := domain.DialectUnknown
	if p.From != "" {
		source, err = domain.ParseDialect(p.From)
		if err != nil {
			return err
		}
	}

	if p.ChangedOnly && p.StatePath == "" {
		return errors.New("--changed-only requires --state")
	}

	// Per-file outcomes are rendered below; the runner's own warn/info
	// events would duplicate them.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	runner := batch.NewRunner(all.NewRegistry(),
		batch.WithOutDir(p.Out),
		batch.WithWorkers(p.Workers),
		batch.WithPatterns(p.Patterns),
		batch.WithExcludePatterns(p.Exclude),
		batch.WithLogger(logger),
	)

	ctx := context.Background()

	var store *state.Store
	if p.StatePath != "" {
		store, err = state.Open(p.StatePath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	hashes := make(map[string]string)

	var result *batch.Result
	if p.ChangedOnly {
		result, err = runChanged(ctx, w, runner, store, p.Root, source, target, hashes)
	} else {
		result, err = runner.Run(ctx, p.Root, source, target)
	}
	if err != nil {
		return err
	}

	if store != nil {
		if err := recordRun(ctx, store, p.Root, source, target, result, hashes); err != nil {
			return err
		}
	}

	for _, f := range result.Files {
		ui.ConvertedLine(w, f.Path, len(f.Report.Todos), len(f.Report.Warnings))
	}
	for _, e := range result.Errors {
		ui.FailedLine(w, e.Path, e.Phase, e.Err)
	}
	ui.SummaryLine(w, result.Stats.FilesConverted, result.Stats.FilesFailed,
		result.Stats.TotalTodos, result.Stats.TotalWarnings)

	if result.Stats.FilesFailed > 0 {
		return fmt.Errorf("%d files failed", result.Stats.FilesFailed)
	}
	return nil
}

// runChanged diffs the current tree against the last recorded run and
// converts only new or modified files.
func runChanged(ctx context.Context, w io.Writer, runner *batch.Runner, store *state.Store, root string, source, target domain.Dialect, hashes map[string]string) (*batch.Result, error) {
	var previous map[string]string
	last, err := store.LastRun(ctx, root)
	switch {
	case errors.Is(err, state.ErrNoRuns):
		// First run: everything counts as changed.
	case err != nil:
		return nil, err
	default:
		previous, err = store.FileHashes(ctx, last.ID)
		if err != nil {
			return nil, err
		}
	}

	candidates, _ := runner.Discover(ctx, root)
	for _, path := range candidates {
		content, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			continue // the conversion pass reports unreadable files
		}
		hashes[path] = state.HashContent(content)
	}

	changed := state.Changed(previous, hashes)
	sort.Strings(changed)

	changedSet := make(map[string]bool, len(changed))
	for _, path := range changed {
		changedSet[path] = true
	}
	for _, path := range candidates {
		if hashes[path] != "" && !changedSet[path] {
			ui.SkippedLine(w, path)
		}
	}

	return runner.RunFiles(ctx, root, changed, source, target)
}

// recordRun persists per-file outcomes and run totals.
func recordRun(ctx context.Context, store *state.Store, root string, source, target domain.Dialect, result *batch.Result, hashes map[string]string) error {
	run, err := store.BeginRun(ctx, root, source, target)
	if err != nil {
		return err
	}

	for _, f := range result.Files {
		hash, ok := hashes[f.Path]
		if !ok {
			content, err := os.ReadFile(filepath.Join(root, f.Path))
			if err != nil {
				continue
			}
			hash = state.HashContent(content)
		}
		if err := store.RecordFile(ctx, state.FileRecord{
			RunID:       run.ID,
			Path:        f.Path,
			ContentHash: hash,
			Source:      f.Source,
			Status:      state.StatusConverted,
			Todos:       len(f.Report.Todos),
			Warnings:    len(f.Report.Warnings),
		}); err != nil {
			return err
		}
	}

	recorded := make(map[string]bool, len(result.Files)+len(result.Errors))
	for _, f := range result.Files {
		recorded[f.Path] = true
	}

	for _, e := range result.Errors {
		if e.Phase == "discovery" || e.Path == "" {
			continue
		}
		recorded[e.Path] = true
		if err := store.RecordFile(ctx, state.FileRecord{
			RunID:  run.ID,
			Path:   e.Path,
			Source: source,
			Status: state.StatusFailed,
		}); err != nil {
			return err
		}
	}

	// In a changed-only run the hash map also covers files skipped as
	// unchanged. Carry them into the new run so the next diff still sees
	// them as converted.
	for path, hash := range hashes {
		if recorded[path] {
			continue
		}
		if err := store.RecordFile(ctx, state.FileRecord{
			RunID:       run.ID,
			Path:        path,
			ContentHash: hash,
			Source:      source,
			Status:      state.StatusConverted,
		}); err != nil {
			return err
		}
	}

	return store.FinishRun(ctx, run.ID,
		result.Stats.FilesConverted, result.Stats.FilesFailed,
		result.Stats.TotalTodos, result.Stats.TotalWarnings)
}
