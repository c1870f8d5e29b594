package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/hookwright/src/config"
	"github.com/sofmeright/hookwright/src/gitx"
	"github.com/sofmeright/hookwright/src/hook"
	"github.com/sofmeright/hookwright/src/output"
	"github.com/sofmeright/hookwright/src/store"
)

const runReportDir = ".hookwright/reports"

var (
	runAllFiles  bool
	runFiles     []string
	runStage     string
	runFromRef   string
	runToRef     string
	runCommitMsg string
	runNoCache   bool
	runJobs      int
)

var runCmd = &cobra.Command{
	Use:   "run [hook-id...]",
	Short: "Run hooks against staged or selected files",
	Long: `Run executes the configured hooks. By default only staged files are
checked; --all-files widens the set to everything git tracks, --files
names files explicitly, and --from-ref/--to-ref checks a revision range.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runAllFiles, "all-files", "a", false, "run on all tracked files")
	runCmd.Flags().StringSliceVar(&runFiles, "files", nil, "run on these files only")
	runCmd.Flags().StringVar(&runStage, "hook-stage", config.StagePreCommit, "hook stage to run")
	runCmd.Flags().StringVar(&runFromRef, "from-ref", "", "check files changed since this ref")
	runCmd.Flags().StringVar(&runToRef, "to-ref", "HEAD", "upper bound for --from-ref")
	runCmd.Flags().StringVar(&runCommitMsg, "commit-msg-filename", "", "commit message file (message stages)")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "bypass the result cache")
	runCmd.Flags().IntVar(&runJobs, "jobs", 0, "parallel file checks per hook (0 = 2x CPU)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	start := time.Now()

	if !config.ValidStage(runStage) {
		return fmt.Errorf("unknown hook stage %q", runStage)
	}

	root, err := gitx.FindRoot(".")
	if err != nil {
		return err
	}

	if warnings, err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	} else if verbose {
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	topLevel, err := config.CompileFilePattern(cfg.Files, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("top-level file pattern: %w", err)
	}

	files, err := collectFiles(cmd, root, topLevel)
	if err != nil {
		return err
	}

	src, err := store.Default()
	if err != nil {
		return fmt.Errorf("hook store: %w", err)
	}
	src.Verbose = verbose

	skip := skipSet()
	prepared, err := hook.Plan(ctx, cfg, hook.PlanOptions{
		Stage:  runStage,
		Only:   args,
		Skip:   skip,
		Source: src,
	})
	if err != nil {
		return err
	}
	if len(prepared) == 0 {
		fmt.Fprintln(os.Stdout, "no hooks to run for stage "+runStage)
		return nil
	}

	cache := &hook.Cache{RootDir: root, Enabled: !runNoCache}
	if cache.Enabled {
		hook.EnsureGitignore(root)
	}

	runner := &hook.Runner{
		RootDir:  root,
		Cache:    cache,
		FailFast: cfg.FailFast,
		Verbose:  verbose,
		Jobs:     runJobs,
	}

	color := output.UseColor()
	output.SectionStart(os.Stdout, "hookwright_run", "hookwright run")
	results := runner.Run(ctx, prepared, files)

	for _, r := range results {
		output.StatusLine(os.Stdout, r, color)
		if r.Failed() || (verbose && !r.Skipped) {
			output.HookDetail(os.Stdout, r, color)
		}
	}
	output.SectionEnd(os.Stdout, "hookwright_run")

	if output.IsCI() {
		dir := filepath.Join(root, runReportDir)
		if err := output.WriteRunJUnit(dir, results); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "warning: writing JUnit report: %v\n", err)
		}
	}

	if verbose {
		sec := output.NewSection(os.Stdout, "Run", time.Since(start), color)
		sec.Row("files checked: %d", len(files))
		sec.Row("cache: %d hits, %d misses", runner.CacheHits.Load(), runner.CacheMisses.Load())
		sec.Close()
	}

	fmt.Fprintln(os.Stdout, output.SummaryLine(results, color))

	if failed, _, _ := hook.Tally(results); failed > 0 {
		return fmt.Errorf("hook run failed")
	}
	return nil
}

// collectFiles resolves the file set the run covers, from the most
// specific selector given.
func collectFiles(cmd *cobra.Command, root string, topLevel *config.FilePattern) ([]hook.File, error) {
	switch {
	case runCommitMsg != "":
		// Message stages check exactly the commit message file.
		abs, err := filepath.Abs(runCommitMsg)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			rel = runCommitMsg
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("commit message file: %w", err)
		}
		return []hook.File{{Path: filepath.ToSlash(rel), AbsPath: abs, Size: info.Size()}}, nil

	case len(runFiles) > 0:
		return hook.FromPaths(root, runFiles, topLevel), nil

	case runFromRef != "":
		paths, err := gitx.ChangedFiles(cmd.Context(), root, runFromRef, runToRef)
		if err != nil {
			return nil, err
		}
		return hook.FromPaths(root, paths, topLevel), nil

	case runAllFiles:
		paths, err := gitx.TrackedFiles(root)
		if err != nil {
			return nil, err
		}
		return hook.FromPaths(root, paths, topLevel), nil

	default:
		paths, err := gitx.StagedFiles(root)
		if err != nil {
			return nil, err
		}
		return hook.FromPaths(root, paths, topLevel), nil
	}
}

// skipSet merges the SKIP environment variable with ci.skip (the latter
// only inside CI, matching the hosted service's behavior).
func skipSet() map[string]bool {
	skip := make(map[string]bool)
	for _, id := range strings.Split(os.Getenv("SKIP"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			skip[id] = true
		}
	}
	if output.IsCI() {
		for _, id := range cfg.CI.Skip {
			skip[id] = true
		}
	}
	return skip
}
