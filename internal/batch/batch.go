// Package batch runs the extraction pipeline over every order document in
// a directory tree, writing one result JSON per input file.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/enedis-automation/order-extractor/constants"
	"github.com/enedis-automation/order-extractor/internal/extract"
)

// FileResult is the per-file outcome of a directory run.
type FileResult struct {
	Path      string
	OutPath   string
	Method    string
	LineItems int
	Err       string
}

// DirStats aggregates a directory run.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// Runner walks directories and feeds matching files to the extractor.
type Runner struct {
	extractor *extract.Extractor
	logger    *slog.Logger
}

func NewRunner(extractor *extract.Extractor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{extractor: extractor, logger: logger}
}

// ProcessDirectory walks root, filters by includeExts (or the default
// accepted extensions), skips hidden entries, and extracts each matching
// file. The result JSON lands next to the source as <name>.json, or under
// outDir mirroring the file name when outDir is non-empty. Per-file
// failures are recorded and the walk continues.
func (r *Runner) ProcessDirectory(ctx context.Context, root, outDir string, includeExts []string) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, DirStats{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := exts[constants.ExtFromFilename(path)]; !ok {
			return nil
		}
		stats.Matched++

		res, err := r.processFile(ctx, path, outDir)
		if err != nil {
			r.logger.Warn("batch.file_failed", "path", path, "error", err)
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, res)
		stats.Succeeded++
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk %s: %w", root, err)
	}
	r.logger.Info("batch.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func (r *Runner) processFile(ctx context.Context, path, outDir string) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}

	res := r.extractor.Extract(ctx, content, filepath.Base(path))

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return FileResult{}, err
	}
	outPath := outputPath(path, outDir)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return FileResult{}, err
	}

	return FileResult{
		Path:      path,
		OutPath:   outPath,
		Method:    res.ExtractionMethod,
		LineItems: len(res.LineItems),
	}, nil
}

func outputPath(path, outDir string) string {
	name := filepath.Base(path) + ".json"
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	return filepath.Join(outDir, name)
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
