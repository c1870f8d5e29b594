package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/hookwright/src/config"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sourceManifest))
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, "shipped-lint", m[0].ID)

	_, err = ParseManifest([]byte("- name: nameless\n  entry: ./x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")

	_, err = ParseManifest([]byte("- id: no-entry\n  language: system\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing entry")

	// Builtin entries need no command.
	_, err = ParseManifest([]byte("- id: native\n  language: builtin\n"))
	require.NoError(t, err)
}

func TestLoadManifest_TriesCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pre-commit-hooks.yaml"), []byte(sourceManifest), 0o644))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Len(t, m, 1)

	_, err = LoadManifest(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hook manifest")
}

func TestMergeManifest(t *testing.T) {
	entry := Entry{
		ID:       "lint",
		Name:     "Manifest name",
		Entry:    "./lint.sh",
		Language: config.LanguageScript,
		Files:    `\.go$`,
		Types:    []string{"text"},
		Stages:   []string{config.StagePreCommit},
	}

	// No overrides: manifest wins wholesale.
	merged := mergeManifest(entry, config.HookConfig{ID: "lint"})
	assert.Equal(t, "Manifest name", merged.Name)
	assert.Equal(t, "./lint.sh", merged.Entry)
	assert.Equal(t, []string{"text"}, merged.Types)

	// User overrides narrow or replace.
	userSet := config.HookConfig{
		ID:      "lint",
		Name:    "My lint",
		Files:   `^src/.*\.go$`,
		Args:    []string{"--strict"},
		Stages:  []string{config.StagePrePush},
		Options: map[string]any{"level": "high"},
	}
	merged = mergeManifest(entry, userSet)
	assert.Equal(t, "My lint", merged.Name)
	assert.Equal(t, `^src/.*\.go$`, merged.Files)
	assert.Equal(t, []string{"--strict"}, merged.Args)
	assert.Equal(t, []string{config.StagePrePush}, merged.Stages)
	assert.Equal(t, map[string]any{"level": "high"}, merged.Options)
	assert.Equal(t, "./lint.sh", merged.Entry, "entry still from manifest")
}

func TestManifestLookup(t *testing.T) {
	m := Manifest{{ID: "a"}, {ID: "b"}}

	e, ok := m.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "b", e.ID)

	_, ok = m.Lookup("c")
	assert.False(t, ok)
}
