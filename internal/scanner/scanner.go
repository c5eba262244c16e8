// Package scanner walks local project directories and produces repository
// summaries. The walk prunes well-known dependency, build-output, and
// VCS-metadata directories, never aborts on a single unreadable entry, and
// reports a partial summary when the traversal fails midway.
package scanner

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/readmegen/internal/source"
	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// skipDirs are directory names never descended into. They hold generated
// code, dependency caches, build output, or editor/VCS metadata.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".idea":        true,
}

// DefaultReadLines caps how many lines ReadLocalFile returns.
const DefaultReadLines = 50

// SkipNote records one entry the walk skipped and why, so callers can
// distinguish an empty result from an unreadable one.
type SkipNote struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the outcome of a directory scan. Summary is always non-nil;
// when the traversal failed partway, Skipped carries the causes and the
// summary holds whatever was collected before the failure.
type Result struct {
	Summary *summary.RepositorySummary `json:"summary"`
	Skipped []SkipNote                 `json:"skipped,omitempty"`
}

// Scanner walks local directories.
type Scanner struct {
	logger *zap.Logger
}

// New creates a directory scanner.
func New(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{logger: logger}
}

// Scan recursively enumerates root and folds every file into a summary.
//
// Deny-listed directories are pruned before descent: their contents never
// reach FileCount and they never appear in the directory sample. Unreadable
// entries are skipped and noted, never fatal. The returned error is non-nil
// only when root itself is unusable; even then a partial Result is returned.
func (sc *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	res := &Result{Summary: summary.New()}
	res.Summary.Local = true

	if err := source.ValidateLocalPath(root); err != nil {
		return res, err
	}

	if branch, err := detectBranch(root); err == nil && branch != "" {
		res.Summary.Branch = branch
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: note it and keep walking.
			res.Skipped = append(res.Skipped, SkipNote{Path: path, Reason: err.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			res.Skipped = append(res.Skipped, SkipNote{Path: path, Reason: relErr.Error()})
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			if rel != "." {
				res.Summary.RecordDirectory(filepath.ToSlash(rel))
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		res.Summary.Record(filepath.ToSlash(rel))
		return nil
	})

	if walkErr != nil {
		// Partial summary stays usable; the failure is summarized, not fatal.
		sc.logger.Warn("directory scan ended early",
			zap.String("root", root),
			zap.Error(walkErr))
		res.Skipped = append(res.Skipped, SkipNote{Path: root, Reason: walkErr.Error()})
	}

	sc.logger.Debug("scanned directory",
		zap.String("root", root),
		zap.Int("files", res.Summary.FileCount),
		zap.Int("skipped", len(res.Skipped)))

	return res, nil
}

// ReadLocalFile returns up to maxLines lines of a local file. Callers using
// it for prompt enrichment treat any error as absence, but the cause is
// still returned for inspection.
func ReadLocalFile(path string, maxLines int) (string, error) {
	if maxLines <= 0 {
		maxLines = DefaultReadLines
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; i < maxLines && sc.Scan(); i++ {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
