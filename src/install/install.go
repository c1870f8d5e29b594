// Package install writes the git hook scripts that hand control to the
// runner on commit, push, and friends.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/hookwright/src/config"
	"github.com/sofmeright/hookwright/src/gitx"
)

// marker identifies scripts we own; anything without it is somebody
// else's hook and gets preserved as .legacy instead of overwritten.
const marker = "# installed by hookwright"

const scriptTemplate = `#!/usr/bin/env sh
%s
exec hookwright run --hook-stage %s%s
`

// buildScript renders the hook script for a stage. Message-editing
// stages receive the commit message file as their first argument and
// pass it through.
func buildScript(stage string) string {
	extra := ""
	switch stage {
	case config.StageCommitMsg, config.StagePrepareCommitMsg:
		extra = ` --commit-msg-filename "$1"`
	}
	return fmt.Sprintf(scriptTemplate, marker, stage, extra)
}

// Install writes hook scripts for the given stages into the repository's
// hooks directory. Returns the paths written.
func Install(root string, stages []string) ([]string, error) {
	if len(stages) == 0 {
		stages = []string{config.StagePreCommit}
	}
	for _, stage := range stages {
		if !config.ValidStage(stage) || stage == config.StageManual {
			return nil, fmt.Errorf("cannot install for stage %q", stage)
		}
	}

	hooksDir, err := hooksDir(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return nil, err
	}

	var written []string
	for _, stage := range stages {
		path := filepath.Join(hooksDir, stage)

		if existing, err := os.ReadFile(path); err == nil && !ours(existing) {
			legacy := path + ".legacy"
			if err := os.Rename(path, legacy); err != nil {
				return written, fmt.Errorf("preserving existing %s hook: %w", stage, err)
			}
		}

		if err := os.WriteFile(path, []byte(buildScript(stage)), 0o755); err != nil {
			return written, fmt.Errorf("writing %s hook: %w", stage, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// Uninstall removes our hook scripts and restores any .legacy hooks
// that were displaced at install time.
func Uninstall(root string, stages []string) ([]string, error) {
	if len(stages) == 0 {
		stages = config.InstallableStages
	}

	hooksDir, err := hooksDir(root)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, stage := range stages {
		path := filepath.Join(hooksDir, stage)

		existing, err := os.ReadFile(path)
		if err != nil {
			continue // nothing installed for this stage
		}
		if !ours(existing) {
			continue // not our script; leave it alone
		}

		if err := os.Remove(path); err != nil {
			return removed, err
		}
		removed = append(removed, path)

		legacy := path + ".legacy"
		if _, err := os.Stat(legacy); err == nil {
			if err := os.Rename(legacy, path); err != nil {
				return removed, fmt.Errorf("restoring legacy %s hook: %w", stage, err)
			}
		}
	}

	return removed, nil
}

// Installed returns the stages that currently carry our script.
func Installed(root string) ([]string, error) {
	hooksDir, err := hooksDir(root)
	if err != nil {
		return nil, err
	}

	var stages []string
	for _, stage := range config.InstallableStages {
		data, err := os.ReadFile(filepath.Join(hooksDir, stage))
		if err == nil && ours(data) {
			stages = append(stages, stage)
		}
	}
	return stages, nil
}

func hooksDir(root string) (string, error) {
	gitDir, err := gitx.GitDir(root)
	if err != nil {
		return "", fmt.Errorf("resolving git dir: %w", err)
	}
	return filepath.Join(gitDir, "hooks"), nil
}

func ours(script []byte) bool {
	return strings.Contains(string(script), marker)
}
