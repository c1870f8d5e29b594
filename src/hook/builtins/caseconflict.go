package builtins

import (
	"context"
	"strings"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "check-case-conflict",
		Name:        "Check for case conflicts",
		Description: "Detects filenames that collide on case-insensitive filesystems.",
		New:         func() hook.Hook { return &caseConflictHook{} },
	})
}

// caseConflictHook only looks at the file set as a whole; the per-file
// pass has nothing to do.
type caseConflictHook struct{}

func (h *caseConflictHook) ID() string { return "check-case-conflict" }

func (h *caseConflictHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	return nil, nil
}

func (h *caseConflictHook) CheckAll(ctx context.Context, files []hook.File) []hook.Finding {
	seen := make(map[string]string) // lowercase path -> original path
	var findings []hook.Finding

	for _, f := range files {
		lower := strings.ToLower(f.Path)
		if original, exists := seen[lower]; exists && original != f.Path {
			findings = append(findings, hook.Finding{
				File:    f.Path,
				Hook:    h.ID(),
				Message: "case-insensitive filename collision with " + original,
			})
		} else {
			seen[lower] = f.Path
		}
	}

	return findings
}
