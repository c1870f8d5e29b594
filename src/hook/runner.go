package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/sofmeright/hookwright/src/config"
)

// Runner executes prepared hooks over a file set. Hooks run in
// configuration order; files within a built-in hook run in parallel.
type Runner struct {
	RootDir  string
	Cache    *Cache
	FailFast bool
	Verbose  bool
	Jobs     int // parallel file checks per hook; 0 = 2×CPU

	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
}

// Run executes all prepared hooks and returns one Result per hook.
// With FailFast, execution stops after the first failing hook.
func (r *Runner) Run(ctx context.Context, prepared []Prepared, files []File) []Result {
	results := make([]Result, 0, len(prepared))

	for _, p := range prepared {
		res := r.runOne(ctx, p, files)
		results = append(results, res)

		if r.FailFast && res.Failed() {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return results
}

// runOne executes a single hook over its matching files.
func (r *Runner) runOne(ctx context.Context, p Prepared, files []File) Result {
	res := Result{ID: p.Hook.ID, Name: p.Hook.DisplayName()}

	selected := p.Filter.Select(files)
	if len(selected) == 0 && !p.Hook.AlwaysRun {
		res.Skipped = true
		res.SkipReason = "no files to check"
		return res
	}

	start := time.Now()
	if p.Impl != nil {
		r.runBuiltin(ctx, p, selected, &res)
	} else {
		runExternal(ctx, r.RootDir, p, selected, &res)
	}
	res.Duration = time.Since(start)
	res.Files = len(selected)

	sortFindings(res.Findings)
	return res
}

// runBuiltin fans a built-in hook out across files with bounded
// parallelism, consulting the result cache per file.
func (r *Runner) runBuiltin(ctx context.Context, p Prepared, files []File, res *Result) {
	var (
		mu       sync.Mutex
		findings []Finding
		errs     []error
		cached   int
		wg       sync.WaitGroup
	)

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU() * 2
	}
	sem := semaphore.NewWeighted(int64(jobs))
	optionsJSON := optionsKey(p.Hook.Options)

	for _, file := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(f File) {
			defer wg.Done()
			defer sem.Release(1)

			// Read content once for cache keying. Unreadable files run
			// uncached — the hook itself reports the real error.
			var key string
			if r.Cache != nil && r.Cache.Enabled {
				if content, err := os.ReadFile(f.AbsPath); err == nil {
					key = r.Cache.Key(content, p.Hook.ID, optionsJSON)
					if hit, ok := r.Cache.Get(key); ok {
						r.CacheHits.Add(1)
						mu.Lock()
						cached++
						findings = append(findings, hit...)
						mu.Unlock()
						return
					}
					r.CacheMisses.Add(1)
				}
			}

			out, err := p.Impl.Check(ctx, f)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %s: %w", p.Hook.ID, f.Path, err))
				return
			}
			findings = append(findings, out...)

			// Never cache results that rewrote the file: the content the
			// key was computed from is gone.
			if key != "" && !anyFixed(out) {
				if cacheErr := r.Cache.Put(key, out); cacheErr != nil && r.Verbose {
					fmt.Fprintf(os.Stderr, "cache: write failed for %s/%s: %v\n", p.Hook.ID, f.Path, cacheErr)
				}
			}
		}(file)
	}

	wg.Wait()

	// Cross-file pass after the per-file fan-out settles.
	if cf, ok := p.Impl.(CrossFile); ok {
		findings = append(findings, cf.CheckAll(ctx, files)...)
	}

	res.Findings = findings
	res.Cached = cached
	if len(errs) > 0 {
		res.Err = fmt.Errorf("%d file errors (first: %w)", len(errs), errs[0])
	}
}

// runExternal dispatches non-builtin languages.
func runExternal(ctx context.Context, rootDir string, p Prepared, files []File, res *Result) {
	switch p.Hook.Language {
	case config.LanguageFail:
		// A fail hook exists to block matching files outright.
		msg := p.Hook.Entry
		if msg == "" {
			msg = "file not allowed"
		}
		for _, f := range files {
			res.Findings = append(res.Findings, Finding{
				File:    f.Path,
				Hook:    p.Hook.ID,
				Message: msg,
			})
		}
	default:
		runCommand(ctx, rootDir, p, files, res)
	}
}

func anyFixed(findings []Finding) bool {
	for _, f := range findings {
		if f.Fixed {
			return true
		}
	}
	return false
}

// optionsKey renders the options map deterministically for cache keying.
func optionsKey(opts map[string]any) string {
	if len(opts) == 0 {
		return "{}"
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// sortFindings orders findings by file, line, column, message for
// stable output.
func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Message < b.Message
	})
}
