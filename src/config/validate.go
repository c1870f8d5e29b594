package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/hookwright/src/identify"
	"github.com/sofmeright/hookwright/src/version"
)

var validLanguages = map[string]bool{
	LanguageBuiltin: true,
	LanguageSystem:  true,
	LanguageScript:  true,
	LanguageFail:    true,
}

var validSchedules = map[string]bool{
	"weekly":    true,
	"monthly":   true,
	"quarterly": true,
}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Document level ────────────────────────────────────────────────────

	if cfg.MinimumVersion != "" {
		min, perr := semver.NewVersion(cfg.MinimumVersion)
		if perr != nil {
			errs = append(errs, fmt.Sprintf("minimum_version: %q is not a valid version", cfg.MinimumVersion))
		} else if cur, cerr := semver.NewVersion(version.Version); cerr == nil && cur.LessThan(min) {
			errs = append(errs, fmt.Sprintf("minimum_version: config requires %s, running %s", min, cur))
		}
		// Dev builds ("dev") skip the comparison.
	}

	for _, s := range cfg.DefaultStages {
		if !ValidStage(s) {
			errs = append(errs, fmt.Sprintf("default_stages: unknown stage %q", s))
		}
	}

	if _, perr := CompileFilePattern(cfg.Files, cfg.Exclude); perr != nil {
		errs = append(errs, perr.Error())
	}

	if cfg.CI.AutoupdateSchedule != "" && !validSchedules[cfg.CI.AutoupdateSchedule] {
		errs = append(errs, fmt.Sprintf("ci.autoupdate_schedule: unknown schedule %q (supported: weekly, monthly, quarterly)", cfg.CI.AutoupdateSchedule))
	}

	if len(cfg.Repos) == 0 {
		warnings = append(warnings, "repos: no hook sources configured; nothing will run")
	}

	// ── Repos ─────────────────────────────────────────────────────────────

	for ri, repo := range cfg.Repos {
		rpath := fmt.Sprintf("repos[%d]", ri)

		if repo.Repo == "" {
			errs = append(errs, fmt.Sprintf("%s: repo is required", rpath))
		}

		// Revision pins are opaque strings; the only invariant is presence
		// for remote sources and absence for the special ones.
		if repo.Remote() {
			if repo.Rev == "" {
				errs = append(errs, fmt.Sprintf("%s: rev is required for remote repo %q", rpath, repo.Repo))
			}
			if !strings.Contains(repo.Repo, "://") && !strings.Contains(repo.Repo, "@") {
				errs = append(errs, fmt.Sprintf("%s: repo %q does not look like a clone URL", rpath, repo.Repo))
			}
		} else if repo.Rev != "" {
			warnings = append(warnings, fmt.Sprintf("%s: rev has no effect for %s repos", rpath, repo.Repo))
		}

		if len(repo.Hooks) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: repo %q lists no hooks", rpath, repo.Repo))
		}

		hookIDs := make(map[string]bool)
		for hi, hook := range repo.Hooks {
			hpath := fmt.Sprintf("%s.hooks[%d]", rpath, hi)

			if hook.ID == "" {
				errs = append(errs, fmt.Sprintf("%s: id is required", hpath))
			} else if hookIDs[hook.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate hook id %q", hpath, hook.ID))
			} else {
				hookIDs[hook.ID] = true
			}

			errs = append(errs, validateHook(hook, hpath, repo)...)
		}
	}

	// ── ci.skip references ────────────────────────────────────────────────

	configured := make(map[string]bool)
	for _, repo := range cfg.Repos {
		for _, hook := range repo.Hooks {
			configured[hook.ID] = true
		}
	}
	for _, id := range cfg.CI.Skip {
		if !configured[id] {
			warnings = append(warnings, fmt.Sprintf("ci.skip: hook %q is not configured", id))
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

// validateHook checks per-hook field constraints.
func validateHook(hook HookConfig, path string, repo RepoConfig) []string {
	var errs []string

	if _, err := CompileFilePattern(hook.Files, hook.Exclude); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", path, err))
	}

	for _, s := range hook.Stages {
		if !ValidStage(s) {
			errs = append(errs, fmt.Sprintf("%s.stages: unknown stage %q", path, s))
		}
	}

	for _, t := range hook.Types {
		if !identify.Known(t) {
			errs = append(errs, fmt.Sprintf("%s.types: unknown type tag %q", path, t))
		}
	}
	for _, t := range hook.ExcludeTypes {
		if !identify.Known(t) {
			errs = append(errs, fmt.Sprintf("%s.exclude_types: unknown type tag %q", path, t))
		}
	}

	if hook.Language != "" && !validLanguages[hook.Language] {
		errs = append(errs, fmt.Sprintf("%s: unknown language %q (supported: builtin, system, script, fail)", path, hook.Language))
	}

	// Local hooks carry their full definition inline; there is no
	// manifest to fill in entry or language.
	if repo.Repo == RepoLocal {
		if hook.Entry == "" {
			errs = append(errs, fmt.Sprintf("%s: entry is required for local hooks", path))
		}
		if hook.Language == "" {
			errs = append(errs, fmt.Sprintf("%s: language is required for local hooks", path))
		}
	}

	if hook.Language == LanguageBuiltin && hook.Entry != "" {
		errs = append(errs, fmt.Sprintf("%s: entry is not valid for builtin hooks", path))
	}

	return errs
}
