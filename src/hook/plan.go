package hook

import (
	"context"
	"fmt"

	"github.com/sofmeright/hookwright/src/config"
)

// Prepared binds one configured hook entry to something the runner can
// execute: a built-in implementation or an external command.
type Prepared struct {
	Repo   config.RepoConfig
	Hook   config.HookConfig // fully merged (manifest defaults + overrides)
	Impl   Hook              // nil for system/script/fail hooks
	Filter *Filter
	RunDir string // working directory for script hooks from remote sources
}

// Source resolves hooks from remote repositories. It returns the hook's
// manifest definition merged with the user's overrides, plus the
// directory the source was materialized into.
type Source interface {
	Resolve(ctx context.Context, repo config.RepoConfig, hook config.HookConfig) (config.HookConfig, string, error)
}

// PlanOptions narrows which configured hooks get prepared.
type PlanOptions struct {
	Stage  string          // hook stage being run (default pre-commit)
	Only   []string        // restrict to these hook ids (run [hook-id])
	Skip   map[string]bool // hook ids to skip (ci.skip in CI)
	Source Source          // remote repo resolver; nil forbids remote repos
}

// Plan walks the configuration in document order and prepares every
// hook that participates in the requested stage. Order is preserved:
// hooks run in the sequence the configuration lists them.
func Plan(ctx context.Context, cfg *config.Config, opts PlanOptions) ([]Prepared, error) {
	stage := opts.Stage
	if stage == "" {
		stage = config.StagePreCommit
	}

	only := make(map[string]bool, len(opts.Only))
	for _, id := range opts.Only {
		only[id] = true
	}
	matched := make(map[string]bool, len(opts.Only))

	var prepared []Prepared
	for _, repo := range cfg.Repos {
		for _, hc := range repo.Hooks {
			if len(only) > 0 && !only[hc.ID] {
				continue
			}
			matched[hc.ID] = true
			if opts.Skip[hc.ID] {
				continue
			}
			if !hc.RunsAtStage(stage, cfg.DefaultStages) {
				continue
			}

			p, err := prepare(ctx, repo, hc, opts.Source)
			if err != nil {
				return nil, err
			}
			prepared = append(prepared, p)
		}
	}

	for _, id := range opts.Only {
		if !matched[id] {
			return nil, fmt.Errorf("no hook with id %q in config", id)
		}
	}

	return prepared, nil
}

// prepare resolves one hook entry into its executable form.
func prepare(ctx context.Context, repo config.RepoConfig, hc config.HookConfig, source Source) (Prepared, error) {
	p := Prepared{Repo: repo, Hook: hc}

	switch {
	case repo.Repo == config.RepoBuiltin || repo.Repo == config.RepoMeta:
		spec, ok := Lookup(hc.ID)
		if !ok {
			return p, fmt.Errorf("repo %s: unknown builtin hook %q", repo.Repo, hc.ID)
		}
		p.Hook = mergeSpec(spec, hc)
		impl := spec.New()
		if err := configure(impl, p.Hook.Options); err != nil {
			return p, fmt.Errorf("hook %s: %w", hc.ID, err)
		}
		p.Impl = impl

	case repo.Repo == config.RepoLocal:
		if hc.Language == config.LanguageBuiltin {
			impl, err := New(hc.ID)
			if err != nil {
				return p, err
			}
			if err := configure(impl, hc.Options); err != nil {
				return p, fmt.Errorf("hook %s: %w", hc.ID, err)
			}
			p.Impl = impl
		}
		// Other languages execute the entry as-is.

	default: // remote source
		if source == nil {
			return p, fmt.Errorf("repo %s: remote hook sources are not available here", repo.Repo)
		}
		merged, runDir, err := source.Resolve(ctx, repo, hc)
		if err != nil {
			return p, fmt.Errorf("repo %s: %w", repo.Repo, err)
		}
		p.Hook = merged
		p.RunDir = runDir
		if merged.Language == config.LanguageBuiltin {
			impl, err := New(merged.ID)
			if err != nil {
				return p, err
			}
			if err := configure(impl, merged.Options); err != nil {
				return p, fmt.Errorf("hook %s: %w", hc.ID, err)
			}
			p.Impl = impl
		}
	}

	filter, err := NewFilter(p.Hook.Files, p.Hook.Exclude, p.Hook.Types, p.Hook.ExcludeTypes)
	if err != nil {
		return p, fmt.Errorf("hook %s: %w", hc.ID, err)
	}
	p.Filter = filter

	return p, nil
}

// mergeSpec fills unset hook fields from the builtin's spec defaults.
func mergeSpec(spec Spec, hc config.HookConfig) config.HookConfig {
	if hc.Name == "" {
		hc.Name = spec.Name
	}
	if hc.Files == "" {
		hc.Files = spec.Files
	}
	if len(hc.Types) == 0 {
		hc.Types = spec.Types
	}
	hc.Language = config.LanguageBuiltin
	return hc
}

// configure passes the options map to hooks that accept one.
func configure(h Hook, opts map[string]any) error {
	c, ok := h.(Configurable)
	if !ok {
		return nil
	}
	// Called with a nil map too, so hooks can apply defaults.
	return c.Configure(opts)
}
