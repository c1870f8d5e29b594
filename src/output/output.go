package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sofmeright/hookwright/src/hook"
)

// Colors for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// statusWidth is the column the Passed/Failed/Skipped label ends at.
const statusWidth = 79

// StatusLine writes one dotted per-hook status row:
//
//	Trim trailing whitespace..............................Passed
func StatusLine(w io.Writer, r hook.Result, color bool) {
	var label, tint string
	switch {
	case r.Skipped:
		label, tint = "Skipped", colorGray
	case r.Failed():
		label, tint = "Failed", colorRed
	default:
		label, tint = "Passed", colorGreen
	}

	name := r.Name
	dots := statusWidth - len(name) - len(label)
	if dots < 3 {
		dots = 3
	}

	if color {
		label = tint + label + colorReset
	}
	fmt.Fprintf(w, "%s%s%s\n", name, strings.Repeat(".", dots), label)

	if r.Skipped && r.SkipReason != "" {
		fmt.Fprintf(w, "- %s\n", maybeColor(r.SkipReason, colorGray, color))
	}
}

// HookDetail writes the failure details under a status line: execution
// errors, external command output, and findings grouped by file.
func HookDetail(w io.Writer, r hook.Result, color bool) {
	if r.Err != nil {
		fmt.Fprintf(w, "- %s\n", maybeColor(r.Err.Error(), colorRed, color))
	}
	if fixed := r.FixedFiles(); fixed > 0 {
		fmt.Fprintf(w, "- files were modified by this hook (%d)\n", fixed)
	}
	if len(r.Output) > 0 && r.Failed() {
		for _, line := range strings.Split(strings.TrimRight(string(r.Output), "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	Findings(w, r.Findings, color)
}

// Findings writes findings grouped by file, sorted for stable output.
func Findings(w io.Writer, findings []hook.Finding, color bool) {
	if len(findings) == 0 {
		return
	}

	byFile := map[string][]hook.Finding{}
	for _, f := range findings {
		byFile[f.File] = append(byFile[f.File], f)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		ff := byFile[file]
		sort.Slice(ff, func(i, j int) bool {
			if ff[i].Line != ff[j].Line {
				return ff[i].Line < ff[j].Line
			}
			return ff[i].Column < ff[j].Column
		})

		name := file
		if name == "" {
			name = "(run)"
		}
		fmt.Fprintf(w, "  %s\n", maybeColor(name, colorBold, color))

		for _, f := range ff {
			loc := "-"
			switch {
			case f.Line > 0 && f.Column > 0:
				loc = fmt.Sprintf("%d:%d", f.Line, f.Column)
			case f.Line > 0:
				loc = fmt.Sprintf("%d", f.Line)
			}

			msg := f.Message
			if f.Fixed {
				msg += maybeColor(" [fixed]", colorCyan, color)
			}
			fmt.Fprintf(w, "    %s %s\n", maybeColor(loc, colorGray, color), msg)
		}
	}
}

// SummaryLine returns the one-line run summary.
func SummaryLine(results []hook.Result, color bool) string {
	failed, fixed, findings := hook.Tally(results)

	ran := 0
	for _, r := range results {
		if !r.Skipped {
			ran++
		}
	}

	if failed == 0 {
		s := fmt.Sprintf("%d hooks passed", ran)
		if color {
			s = colorGreen + s + colorReset
		}
		return s
	}

	parts := []string{fmt.Sprintf("%d of %d hooks failed", failed, ran)}
	if findings > 0 {
		parts = append(parts, fmt.Sprintf("%d findings", findings))
	}
	if fixed > 0 {
		parts = append(parts, fmt.Sprintf("%d files fixed", fixed))
	}
	s := strings.Join(parts, ", ")
	if color {
		s = colorRed + s + colorReset
	}
	return s
}

func maybeColor(text, tint string, color bool) string {
	if !color {
		return text
	}
	return tint + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
