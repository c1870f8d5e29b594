package builtins

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "check-merge-conflict",
		Name:        "Check for merge conflicts",
		Description: "Detects files containing merge conflict markers.",
		Types:       []string{"text"},
		New:         func() hook.Hook { return &conflictsHook{} },
	})
}

type conflictsHook struct{}

// Markers as git writes them: at column 0, with the divider standing
// alone. Requiring that keeps RST section underlines from matching.
var conflictMarkers = []string{
	"<<<<<<< ",
	">>>>>>> ",
	"=======",
}

func (h *conflictsHook) ID() string { return "check-merge-conflict" }

func (h *conflictsHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	f, err := os.Open(file.AbsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var findings []hook.Finding
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		for _, marker := range conflictMarkers {
			hit := strings.HasPrefix(line, marker)
			if marker == "=======" {
				hit = line == marker
			}
			if hit {
				findings = append(findings, hook.Finding{
					File:    file.Path,
					Line:    lineNum,
					Hook:    h.ID(),
					Message: "merge conflict marker: " + strings.TrimSpace(marker),
				})
				break
			}
		}
	}

	return findings, scanner.Err()
}
