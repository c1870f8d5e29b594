package output

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/hookwright/src/hook"
)

func TestStatusLine(t *testing.T) {
	var b strings.Builder
	StatusLine(&b, hook.Result{ID: "h", Name: "Trim trailing whitespace"}, false)
	line := b.String()
	assert.True(t, strings.HasPrefix(line, "Trim trailing whitespace..."))
	assert.True(t, strings.HasSuffix(strings.TrimRight(line, "\n"), "Passed"))

	b.Reset()
	StatusLine(&b, hook.Result{Name: "Check YAML", Findings: []hook.Finding{{Message: "x"}}}, false)
	assert.Contains(t, b.String(), "Failed")

	b.Reset()
	StatusLine(&b, hook.Result{Name: "Check YAML", Skipped: true, SkipReason: "no files to check"}, false)
	assert.Contains(t, b.String(), "Skipped")
	assert.Contains(t, b.String(), "no files to check")
}

func TestHookDetail(t *testing.T) {
	var b strings.Builder
	r := hook.Result{
		Name: "Fixer",
		Err:  errors.New("exec blew up"),
		Findings: []hook.Finding{
			{File: "b.txt", Line: 2, Message: "late", Fixed: true},
			{File: "a.txt", Line: 9, Column: 3, Message: "early"},
			{File: "a.txt", Line: 1, Message: "first"},
		},
	}
	HookDetail(&b, r, false)
	out := b.String()

	assert.Contains(t, out, "exec blew up")
	assert.Contains(t, out, "files were modified by this hook (1)")

	// Grouped by file, files sorted, lines sorted within.
	aIdx := strings.Index(out, "a.txt")
	bIdx := strings.Index(out, "b.txt")
	require.GreaterOrEqual(t, aIdx, 0)
	require.Greater(t, bIdx, aIdx)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "early"))
	assert.Contains(t, out, "9:3 early")
	assert.Contains(t, out, "[fixed]")
}

func TestSummaryLine(t *testing.T) {
	pass := []hook.Result{{ID: "a"}, {ID: "b"}, {ID: "c", Skipped: true}}
	assert.Equal(t, "2 hooks passed", SummaryLine(pass, false))

	fail := []hook.Result{
		{ID: "a"},
		{ID: "b", Findings: []hook.Finding{{File: "f", Message: "x", Fixed: true}, {Message: "y"}}},
	}
	assert.Equal(t, "1 of 2 hooks failed, 2 findings, 1 files fixed", SummaryLine(fail, false))
}

func TestSection(t *testing.T) {
	var b strings.Builder
	s := NewSection(&b, "Run", 0, false)
	s.Row("files checked: %d", 7)
	s.Separator()
	s.Row("cache: %d hits", 3)
	s.Close()

	out := b.String()
	assert.Contains(t, out, "── Run ")
	assert.Contains(t, out, "│ files checked: 7")
	assert.Contains(t, out, "├")
	assert.Contains(t, out, "└")
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{480, "480ms"},
		{2300, "2.3s"},
		{64000, "1m04s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatElapsed(time.Duration(tt.ms)*time.Millisecond))
	}
}
