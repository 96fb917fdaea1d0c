package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// discover walks root and returns candidate test file paths relative to
// root. Skip directories prune whole subtrees; glob patterns and the
// size cap filter individual files.
func discover(ctx context.Context, root string, opts *Options) ([]string, []error) {
	skipSet := buildSkipSet(append(DefaultSkipPatterns, opts.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if path != root && skipSet[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}

		if !isTestFileCandidate(relPath) {
			return nil
		}

		if len(opts.Patterns) > 0 && !matchesAnyPattern(relPath, opts.Patterns) {
			return nil
		}

		if opts.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("stat %s: %w", path, err))
				return nil
			}
			if info.Size() > opts.MaxFileSize {
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})

	if err != nil && ctx.Err() == nil {
		errs = append(errs, err)
	}

	return files, errs
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

// isTestFileCandidate applies JS/TS test file naming conventions across
// all supported dialects: .test./.spec. infixes, Cypress .cy. files and
// e2e directories, Jest __tests__ directories, Playwright setup and
// teardown files.
func isTestFileCandidate(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs":
	default:
		return false
	}

	base := strings.ToLower(filepath.Base(path))

	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") || strings.Contains(base, ".cy.") {
		return true
	}

	name := strings.TrimSuffix(base, ext)
	if strings.HasSuffix(name, ".setup") || strings.HasSuffix(name, ".teardown") {
		return true
	}

	normalized := filepath.ToSlash(path)

	// Fixture and mock directories hold support code, not tests.
	if containsDir(normalized, "__fixtures__") || containsDir(normalized, "__mocks__") {
		return false
	}

	if containsDir(normalized, "__tests__") {
		return true
	}

	if strings.Contains(normalized, "cypress/e2e/") || strings.Contains(normalized, "cypress/component/") {
		return true
	}

	return false
}

func containsDir(normalizedPath, dir string) bool {
	return strings.Contains(normalizedPath, "/"+dir+"/") || strings.HasPrefix(normalizedPath, dir+"/")
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
