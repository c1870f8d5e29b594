package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config file names tried in order when no explicit path is given.
var configFileCandidates = []string{
	".hookwright.yaml",
	".hookwright.yml",
	".pre-commit-config.yaml",
}

// Special repo source identifiers.
const (
	RepoBuiltin = "builtin"
	RepoLocal   = "local"
	RepoMeta    = "meta"
)

// Hook languages the runner can execute.
const (
	LanguageBuiltin = "builtin"
	LanguageSystem  = "system"
	LanguageScript  = "script"
	LanguageFail    = "fail"
)

// Config is the top-level hook configuration document.
type Config struct {
	MinimumVersion string       `yaml:"minimum_version"`
	DefaultStages  []string     `yaml:"default_stages"`
	FailFast       bool         `yaml:"fail_fast"`
	Files          string       `yaml:"files"`
	Exclude        string       `yaml:"exclude"`
	CI             CIConfig     `yaml:"ci"`
	Repos          []RepoConfig `yaml:"repos"`

	// Path is the file the config was loaded from ("" for defaults).
	Path string `yaml:"-"`
}

// CIConfig holds directives consumed by the hosted CI service, not the
// local runner: the dependency auto-update cadence and whether fix
// commits get pushed to pull requests.
type CIConfig struct {
	AutoupdateSchedule string   `yaml:"autoupdate_schedule"`
	AutofixPRs         *bool    `yaml:"autofix_prs"`
	Skip               []string `yaml:"skip"`
}

// RepoConfig is one hook source: where its hooks come from, the pinned
// revision, and the hooks taken from it.
type RepoConfig struct {
	Repo  string       `yaml:"repo"`
	Rev   string       `yaml:"rev"`
	Hooks []HookConfig `yaml:"hooks"`
}

// Remote reports whether the source is an actual repository URL rather
// than one of the special identifiers.
func (r RepoConfig) Remote() bool {
	return r.Repo != RepoBuiltin && r.Repo != RepoLocal && r.Repo != RepoMeta
}

// HookConfig is a single hook entry under a repo.
type HookConfig struct {
	ID                     string         `yaml:"id"`
	Name                   string         `yaml:"name"`
	Entry                  string         `yaml:"entry"`
	Language               string         `yaml:"language"`
	LanguageVersion        string         `yaml:"language_version"`
	Args                   []string       `yaml:"args"`
	Files                  string         `yaml:"files"`
	Exclude                string         `yaml:"exclude"`
	Types                  []string       `yaml:"types"`
	ExcludeTypes           []string       `yaml:"exclude_types"`
	Stages                 []string       `yaml:"stages"`
	AdditionalDependencies []string       `yaml:"additional_dependencies"`
	AlwaysRun              bool           `yaml:"always_run"`
	PassFilenames          *bool          `yaml:"pass_filenames"`
	Verbose                bool           `yaml:"verbose"`
	Options                map[string]any `yaml:"options"`
}

// DisplayName returns the name shown in run output.
func (h HookConfig) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// PassesFilenames reports whether matched filenames are appended to the
// hook's command line. Defaults to true, as the external runner does.
func (h HookConfig) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// Load reads the configuration from path. If path is empty, the default
// file names are tried in order; a missing file yields defaults so
// commands like sample-config still work outside a configured repo.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path, true)
	}
	for _, candidate := range configFileCandidates {
		cfg, err := loadFile(candidate, false)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	return defaults(), nil
}

// loadFile reads one config file. When required is false a missing file
// returns (nil, nil) so the caller can try the next candidate.
func loadFile(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		DefaultStages: []string{StagePreCommit},
	}
}
