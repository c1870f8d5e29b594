package autoupdate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const pinnedConfig = `# project hooks
fail_fast: true
repos:
  # first source
  - repo: https://example.com/one.git
    rev: v1.0.0
    hooks:
      - id: lint-one
  - repo: https://example.com/two.git
    rev: "2.0"
    hooks:
      - id: lint-two
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".hookwright.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApply_RewritesPins(t *testing.T) {
	path := writeConfig(t, pinnedConfig)

	err := Apply(path, []Update{
		{Repo: "https://example.com/one.git", OldRev: "v1.0.0", NewRev: "v1.4.0"},
		{Repo: "https://example.com/two.git", OldRev: "2.0", NewRev: "2.0"}, // unchanged
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "rev: v1.4.0")
	assert.NotContains(t, out, "v1.0.0")
	assert.Contains(t, out, "# project hooks", "comments survive")
	assert.Contains(t, out, "# first source")

	// The document still decodes to the same shape.
	var doc struct {
		FailFast bool `yaml:"fail_fast"`
		Repos    []struct {
			Repo string `yaml:"repo"`
			Rev  string `yaml:"rev"`
		} `yaml:"repos"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.True(t, doc.FailFast)
	require.Len(t, doc.Repos, 2)
	assert.Equal(t, "v1.4.0", doc.Repos[0].Rev)
	assert.Equal(t, "2.0", doc.Repos[1].Rev)
}

func TestApply_NumericPinStaysString(t *testing.T) {
	path := writeConfig(t, pinnedConfig)

	err := Apply(path, []Update{
		{Repo: "https://example.com/two.git", OldRev: "2.0", NewRev: "2.1"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Repos []struct {
			Rev string `yaml:"rev"`
		} `yaml:"repos"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "2.1", doc.Repos[1].Rev)
}

func TestApply_NoChangesLeavesFileAlone(t *testing.T) {
	path := writeConfig(t, pinnedConfig)

	err := Apply(path, []Update{
		{Repo: "https://example.com/one.git", OldRev: "v1.0.0", NewRev: "v1.0.0"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pinnedConfig, string(data))
}

func TestApply_MissingRev(t *testing.T) {
	path := writeConfig(t, "repos:\n  - repo: https://example.com/one.git\n    hooks: []\n")

	err := Apply(path, []Update{
		{Repo: "https://example.com/one.git", OldRev: "", NewRev: "v1.0.0"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rev to update")
}
