// Package driver orchestrates engine passes over files and directories:
// listing, parallelism, write-back, caching, and progress events. The
// rule engine itself performs no I/O; everything filesystem-shaped lives
// here.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
	"github.com/rolfedh/adocfix/internal/rules"
	"github.com/rolfedh/adocfix/internal/source"
)

// ErrNoAdocFiles is returned when the target contains nothing to process.
var ErrNoAdocFiles = errors.New("no .adoc files found")

// Options configures one run.
type Options struct {
	// DryRun previews rewrites without writing anything back.
	DryRun bool
	// CheckOnly collects diagnostics and never writes, independent of
	// whether rewrites would apply.
	CheckOnly bool
	// Jobs limits parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, skips unchanged files recorded clean.
	Cache *Cache
	// Engine tunes the rule engine.
	Engine rules.Options
	// Events, when non-nil, receives per-file progress. The driver
	// closes the channel when the run finishes.
	Events chan<- Event
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Status  Status
	Kind    adoc.Kind
	Bag     *diag.Bag
	Err     error
	Skipped string // reason, for StatusSkipped
}

// RunResult aggregates one run.
type RunResult struct {
	Files   []FileResult
	Fixed   int
	Clean   int
	Skipped int
	Errors  int
}

// Diagnostics merges every file's bag into one sorted bag.
func (r *RunResult) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			out.Merge(r.Files[i].Bag)
		}
	}
	out.Sort()
	return out
}

// listAdocFiles returns the sorted list of .adoc files under dir.
func listAdocFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".adoc") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// deterministic order regardless of filesystem
	sort.Strings(files)
	return files, nil
}

// ListTargets resolves a file-or-directory argument to the files a run
// would process, in run order. The UI uses it to size its model.
func ListTargets(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	return listAdocFiles(target)
}

// Run processes a file or a directory tree of .adoc files.
func Run(ctx context.Context, target string, opts Options) (*RunResult, error) {
	defer func() {
		if opts.Events != nil {
			close(opts.Events)
		}
	}()

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	var files []string
	if info.IsDir() {
		files, err = listAdocFiles(target)
		if err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("driver: %s: %w", target, ErrNoAdocFiles)
		}
	} else {
		files = []string{target}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	// one slot per file; no mutex needed
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emit(opts.Events, Event{Path: path, Status: StatusWorking})
			results[i] = processFile(path, opts)
			emit(opts.Events, Event{Path: path, Status: results[i].Status})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &RunResult{Files: results}
	for i := range results {
		switch results[i].Status {
		case StatusFixed:
			run.Fixed++
		case StatusClean:
			run.Clean++
		case StatusSkipped:
			run.Skipped++
		case StatusError:
			run.Errors++
		}
	}
	return run, nil
}

// processFile runs the engine over one file and applies write-back
// policy. Every failure is captured in the result, not returned: one bad
// file must not abort the run.
func processFile(path string, opts Options) FileResult {
	res := FileResult{Path: path}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}
	file := fileSet.Get(id)

	if opts.Cache.IsClean(file.Hash) {
		res.Status = StatusSkipped
		res.Skipped = "unchanged since last clean run"
		return res
	}

	engineRes, err := rules.Process(file.Text(), file.Basename(), adoc.KindUnknown, opts.Engine)
	if err != nil {
		res.Status = StatusError
		res.Err = err
		return res
	}

	bag := diag.NewBag(len(engineRes.Diagnostics))
	for _, d := range engineRes.Diagnostics {
		bag.Add(d)
	}
	bag.StampPath(path)
	res.Bag = bag
	res.Kind = engineRes.Kind

	if !engineRes.Changed {
		res.Status = StatusClean
		if bag.Len() == 0 {
			if err := opts.Cache.MarkClean(file.Hash); err != nil {
				// cache trouble never fails the run
				res.Err = err
			}
		}
		return res
	}

	res.Status = StatusFixed
	if opts.DryRun || opts.CheckOnly {
		return res
	}
	if err := writeBack(path, engineRes.Text); err != nil {
		res.Status = StatusError
		res.Err = err
	}
	return res
}

// writeBack replaces the file content, preserving its permission bits.
func writeBack(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), mode)
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
