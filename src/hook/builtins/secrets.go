package builtins

import (
	"context"
	"errors"
	"os"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/sofmeright/hookwright/src/hook"
)

func init() {
	hook.Register(hook.Spec{
		ID:          "detect-secrets",
		Name:        "Detect secrets",
		Description: "Scans file contents for leaked credentials using the gitleaks ruleset.",
		New:         func() hook.Hook { return &secretsHook{} },
	})
}

type secretsHook struct {
	detector *detect.Detector
}

func (h *secretsHook) ID() string { return "detect-secrets" }

// Configure builds the detector up front; Check runs concurrently across
// files and must not mutate the hook.
func (h *secretsHook) Configure(opts map[string]any) error {
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return err
	}
	h.detector = d
	return nil
}

func (h *secretsHook) Check(ctx context.Context, file hook.File) ([]hook.Finding, error) {
	// Check runs concurrently across files on one hook instance; the
	// detector must already be in place, never built here.
	if h.detector == nil {
		return nil, errors.New("detect-secrets: Configure not called")
	}

	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}

	hits := h.detector.DetectBytes(data)
	if len(hits) == 0 {
		return nil, nil
	}

	findings := make([]hook.Finding, 0, len(hits))
	for _, hit := range hits {
		findings = append(findings, hook.Finding{
			File:    file.Path,
			Line:    hit.StartLine + 1, // gitleaks is 0-indexed
			Hook:    h.ID(),
			Message: hit.Description + " (" + hit.RuleID + ")",
		})
	}
	return findings, nil
}
