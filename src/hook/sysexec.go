package hook

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sofmeright/hookwright/src/config"
)

// runCommand executes a system or script hook: the configured entry plus
// args, with matched filenames appended unless pass_filenames is false.
func runCommand(ctx context.Context, rootDir string, p Prepared, files []File, res *Result) {
	argv, err := splitCommand(p.Hook.Entry)
	if err != nil {
		res.Err = fmt.Errorf("hook %s: %w", p.Hook.ID, err)
		return
	}
	if len(argv) == 0 {
		res.Err = fmt.Errorf("hook %s: empty entry", p.Hook.ID)
		return
	}

	// Script hooks ship with their source repo; the entry is a path
	// inside the materialized clone.
	if p.Hook.Language == config.LanguageScript && p.RunDir != "" {
		argv[0] = filepath.Join(p.RunDir, argv[0])
	}

	argv = append(argv, p.Hook.Args...)
	if p.Hook.PassesFilenames() {
		for _, f := range files {
			argv = append(argv, f.Path)
		}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = rootDir
	cmd.Env = append(os.Environ(), "HOOKWRIGHT=1")

	out, err := cmd.CombinedOutput()
	res.Output = out
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Nonzero exit is the hook reporting failure, not a runner error.
			res.Findings = append(res.Findings, Finding{
				Hook:    p.Hook.ID,
				Message: fmt.Sprintf("exit status from %s: %v", argv[0], err),
			})
			return
		}
		res.Err = fmt.Errorf("hook %s: running %s: %w", p.Hook.ID, argv[0], err)
	}
}

// splitCommand splits an entry string into argv, honoring single and
// double quotes. No variable expansion — entries are commands, not
// shell scripts.
func splitCommand(entry string) ([]string, error) {
	var (
		argv    []string
		current strings.Builder
		quote   rune
		started bool
	)

	for _, r := range entry {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t':
			if started {
				argv = append(argv, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unbalanced quote in entry %q", entry)
	}
	if started {
		argv = append(argv, current.String())
	}
	return argv, nil
}
