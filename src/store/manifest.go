package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sofmeright/hookwright/src/config"
)

// Manifest file names a hook source may ship, tried in order.
var manifestCandidates = []string{
	".hookwright-hooks.yaml",
	".pre-commit-hooks.yaml",
}

// Entry is one hook a source declares in its manifest.
type Entry struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Entry           string   `yaml:"entry"`
	Language        string   `yaml:"language"`
	LanguageVersion string   `yaml:"language_version"`
	Args            []string `yaml:"args"`
	Files           string   `yaml:"files"`
	Exclude         string   `yaml:"exclude"`
	Types           []string `yaml:"types"`
	ExcludeTypes    []string `yaml:"exclude_types"`
	Stages          []string `yaml:"stages"`
	AlwaysRun       bool     `yaml:"always_run"`
	PassFilenames   *bool    `yaml:"pass_filenames"`
	MinimumVersion  string   `yaml:"minimum_version"`
}

// Manifest is the ordered hook list a source provides.
type Manifest []Entry

// ParseManifest decodes manifest bytes and checks the entries carry the
// fields the runner needs.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for i, e := range m {
		if e.ID == "" {
			return nil, fmt.Errorf("manifest entry %d: missing id", i)
		}
		if e.Entry == "" && e.Language != config.LanguageBuiltin {
			return nil, fmt.Errorf("manifest entry %s: missing entry", e.ID)
		}
	}
	return m, nil
}

// LoadManifest reads the manifest from a materialized source directory.
func LoadManifest(dir string) (Manifest, error) {
	for _, name := range manifestCandidates {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		m, err := ParseManifest(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("no hook manifest in %s (expected %s)", dir, manifestCandidates[0])
}

// Lookup finds a hook entry by id.
func (m Manifest) Lookup(id string) (Entry, bool) {
	for _, e := range m {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// mergeManifest overlays the user's configuration on the manifest
// defaults. The user may narrow file selection, rename the hook, or
// replace the entry command; everything left unset comes from the
// manifest.
func mergeManifest(e Entry, hc config.HookConfig) config.HookConfig {
	merged := config.HookConfig{
		ID:              e.ID,
		Name:            e.Name,
		Entry:           e.Entry,
		Language:        e.Language,
		LanguageVersion: e.LanguageVersion,
		Args:            e.Args,
		Files:           e.Files,
		Exclude:         e.Exclude,
		Types:           e.Types,
		ExcludeTypes:    e.ExcludeTypes,
		Stages:          e.Stages,
		AlwaysRun:       e.AlwaysRun,
		PassFilenames:   e.PassFilenames,
	}

	if hc.Name != "" {
		merged.Name = hc.Name
	}
	if hc.Entry != "" {
		merged.Entry = hc.Entry
	}
	if hc.LanguageVersion != "" {
		merged.LanguageVersion = hc.LanguageVersion
	}
	if len(hc.Args) > 0 {
		merged.Args = hc.Args
	}
	if hc.Files != "" {
		merged.Files = hc.Files
	}
	if hc.Exclude != "" {
		merged.Exclude = hc.Exclude
	}
	if len(hc.Types) > 0 {
		merged.Types = hc.Types
	}
	if len(hc.ExcludeTypes) > 0 {
		merged.ExcludeTypes = hc.ExcludeTypes
	}
	if len(hc.Stages) > 0 {
		merged.Stages = hc.Stages
	}
	if hc.AlwaysRun {
		merged.AlwaysRun = true
	}
	if hc.PassFilenames != nil {
		merged.PassFilenames = hc.PassFilenames
	}
	merged.AdditionalDependencies = hc.AdditionalDependencies
	merged.Verbose = hc.Verbose
	merged.Options = hc.Options

	return merged
}
