// Package batch runs a per-file operation across every markdown document
// under a directory tree with bounded concurrency. Discovery, scheduling
// and error accounting live here; what happens to each file's text is the
// caller's closure. One file failing never aborts the batch.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okeanos-nlp/ocrscrub/internal/logger"
)

// Options configures a batch run.
type Options struct {
	// InputDir is walked recursively for *.md files.
	InputDir string `validate:"required"`

	// OutputDir, when set, receives processed file content mirroring the
	// input tree.
	OutputDir string

	// Workers bounds concurrency; 0 means one worker per CPU.
	Workers int `validate:"gte=0"`

	// Include is an optional **-style glob matched against each file's
	// path relative to InputDir.
	Include string

	// MaxFileSize skips files larger than this many bytes; 0 is unlimited.
	MaxFileSize int64 `validate:"gte=0"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	Found     int           `json:"found" yaml:"found"`
	Processed int           `json:"processed" yaml:"processed"`
	Errored   int           `json:"errored" yaml:"errored"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Result is one file's outcome, delivered to the caller's sink.
type Result struct {
	// Rel is the file path relative to the input directory.
	Rel string

	// Output, when non-empty and an output directory is configured, is
	// written to the mirrored path.
	Output string

	// Payload carries whatever the operation produced (metrics, scans).
	Payload any

	Err error
}

// Op processes one file's content. rel is the path relative to the input
// directory.
type Op func(rel, content string) Result

var validate = validator.New()

// Run discovers files, fans them out over a worker pool, applies op to each
// and feeds results to sink from a single goroutine (sink needs no locking).
// Cancellation stops new files from being scheduled; in-flight files finish.
func Run(ctx context.Context, opts Options, op Op, sink func(Result)) (*Summary, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid batch options: %w", err)
	}
	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", opts.InputDir)
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	start := time.Now()
	files, err := discover(opts)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Found: len(files)}
	if len(files) == 0 {
		summary.Duration = time.Since(start)
		return summary, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	results := make(chan Result, workers)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	go func() {
		defer close(results)
		for _, file := range files {
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results <- processFile(opts, path, op)
			}(file)
		}
		wg.Wait()
	}()

	for res := range results {
		switch {
		case res.Err != nil:
			summary.Errored++
			logger.Debug("file failed", "file", res.Rel, "error", res.Err)
		case res.Rel == "":
			summary.Skipped++
		default:
			summary.Processed++
		}
		if sink != nil {
			sink(res)
		}
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// processFile reads one file, applies op and optionally writes the output.
func processFile(opts Options, path string, op Op) Result {
	rel, err := filepath.Rel(opts.InputDir, path)
	if err != nil {
		rel = path
	}

	if opts.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return Result{Rel: rel, Err: err}
		}
		if info.Size() > opts.MaxFileSize {
			logger.Debug("skipping oversized file", "file", rel, "size", info.Size())
			return Result{} // counted as skipped
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Rel: rel, Err: err}
	}

	res := op(rel, string(data))
	res.Rel = rel
	if res.Err != nil {
		return res
	}

	if opts.OutputDir != "" && res.Output != "" {
		target := filepath.Join(opts.OutputDir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			res.Err = err
			return res
		}
		if err := os.WriteFile(target, []byte(res.Output), 0o644); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}
