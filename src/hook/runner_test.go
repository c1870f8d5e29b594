package hook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/hookwright/src/config"
)

// fixingHook flags every file and marks the finding fixed, like the
// rewriting builtins do.
type fixingHook struct{}

func (h *fixingHook) ID() string { return "fixing" }
func (h *fixingHook) Check(ctx context.Context, file File) ([]Finding, error) {
	return []Finding{{File: file.Path, Hook: "fixing", Message: "rewrote", Fixed: true}}, nil
}

func runnerFiles(t *testing.T, names ...string) (string, []File) {
	t.Helper()
	root := t.TempDir()
	var files []File
	for _, name := range names {
		abs := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(abs, []byte(name+"\n"), 0o644))
		files = append(files, File{Path: name, AbsPath: abs, Size: int64(len(name) + 1)})
	}
	return root, files
}

func preparedFake(id string) Prepared {
	return Prepared{
		Hook: config.HookConfig{ID: id, Name: id},
		Impl: &fakeHook{id: id},
	}
}

func TestRunner_BuiltinFindings(t *testing.T) {
	root, files := runnerFiles(t, "good.txt", "bad.txt")
	r := &Runner{RootDir: root}

	results := r.Run(context.Background(), []Prepared{preparedFake("fake")}, files)
	require.Len(t, results, 1)

	res := results[0]
	assert.True(t, res.Failed())
	assert.Equal(t, 2, res.Files)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "bad.txt", res.Findings[0].File)
}

func TestRunner_CacheHitsOnSecondRun(t *testing.T) {
	root, files := runnerFiles(t, "good.txt", "also-good.txt")
	cache := &Cache{RootDir: root, Enabled: true}
	r := &Runner{RootDir: root, Cache: cache}

	first := r.Run(context.Background(), []Prepared{preparedFake("fake")}, files)
	require.Len(t, first, 1)
	assert.Equal(t, int64(0), r.CacheHits.Load())
	assert.Equal(t, int64(2), r.CacheMisses.Load())
	assert.Equal(t, 0, first[0].Cached)

	second := r.Run(context.Background(), []Prepared{preparedFake("fake")}, files)
	require.Len(t, second, 1)
	assert.Equal(t, int64(2), r.CacheHits.Load())
	assert.Equal(t, 2, second[0].Cached)
	assert.False(t, second[0].Failed())
}

func TestRunner_FixedResultsNotCached(t *testing.T) {
	root, files := runnerFiles(t, "any.txt")
	cache := &Cache{RootDir: root, Enabled: true}
	r := &Runner{RootDir: root, Cache: cache}

	p := Prepared{Hook: config.HookConfig{ID: "fixing", Name: "fixing"}, Impl: &fixingHook{}}

	r.Run(context.Background(), []Prepared{p}, files)
	results := r.Run(context.Background(), []Prepared{p}, files)

	// The file content key did not change, but the fixer's result must
	// not have been cached against it.
	assert.Equal(t, int64(0), r.CacheHits.Load())
	require.Len(t, results, 1)
	require.Len(t, results[0].Findings, 1)
	assert.True(t, results[0].Findings[0].Fixed)
}

func TestRunner_SkipsWithoutFiles(t *testing.T) {
	root, _ := runnerFiles(t)
	r := &Runner{RootDir: root}

	results := r.Run(context.Background(), []Prepared{preparedFake("fake")}, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.Equal(t, "no files to check", results[0].SkipReason)
}

func TestRunner_AlwaysRunWithoutFiles(t *testing.T) {
	root, _ := runnerFiles(t)
	r := &Runner{RootDir: root}

	p := preparedFake("fake")
	p.Hook.AlwaysRun = true
	results := r.Run(context.Background(), []Prepared{p}, nil)
	require.Len(t, results, 1)
	assert.False(t, results[0].Skipped)
	assert.False(t, results[0].Failed())
}

func TestRunner_FailFastStops(t *testing.T) {
	root, files := runnerFiles(t, "bad.txt")
	r := &Runner{RootDir: root, FailFast: true}

	prepared := []Prepared{preparedFake("first"), preparedFake("second")}
	results := r.Run(context.Background(), prepared, files)
	require.Len(t, results, 1)
	assert.Equal(t, "first", results[0].ID)
}

func TestRunner_FailLanguage(t *testing.T) {
	root, files := runnerFiles(t, "forbidden.env")
	r := &Runner{RootDir: root}

	p := Prepared{Hook: config.HookConfig{
		ID:       "no-env-files",
		Name:     "no-env-files",
		Entry:    "env files must not be committed",
		Language: config.LanguageFail,
	}}
	results := r.Run(context.Background(), []Prepared{p}, files)
	require.Len(t, results, 1)
	require.Len(t, results[0].Findings, 1)
	assert.Equal(t, "env files must not be committed", results[0].Findings[0].Message)
}

func TestRunner_FindingsSorted(t *testing.T) {
	root, files := runnerFiles(t, "bad-b.txt", "bad-a.txt")
	r := &Runner{RootDir: root}

	results := r.Run(context.Background(), []Prepared{preparedFake("fake")}, files)
	require.Len(t, results, 1)
	require.Len(t, results[0].Findings, 2)
	assert.Equal(t, "bad-a.txt", results[0].Findings[0].File)
	assert.Equal(t, "bad-b.txt", results[0].Findings[1].File)
}

func TestTally(t *testing.T) {
	results := []Result{
		{ID: "a"},
		{ID: "b", Findings: []Finding{{Message: "x"}, {File: "f", Message: "y", Fixed: true}}},
		{ID: "c", Skipped: true},
	}
	failed, fixed, findings := Tally(results)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, 2, findings)
}
