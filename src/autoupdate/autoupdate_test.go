package autoupdate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taggedRepo builds a local repository carrying the given tags on one
// commit, usable as a remote by path.
func taggedRepo(t *testing.T, tags ...string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("f.txt")
	require.NoError(t, err)
	hash, err := wt.Commit("c", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	for _, tag := range tags {
		_, err = repo.CreateTag(tag, hash, nil)
		require.NoError(t, err)
	}
	return dir
}

func TestLatestTag(t *testing.T) {
	url := taggedRepo(t, "v1.0.0", "v1.2.0", "v1.10.0", "v2.0.0-rc.1", "not-a-version")

	latest, err := LatestTag(context.Background(), url, false)
	require.NoError(t, err)
	assert.Equal(t, "v1.10.0", latest, "semver ordering, prereleases skipped")

	latest, err = LatestTag(context.Background(), url, true)
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0-rc.1", latest)
}

func TestLatestTag_NoVersionTags(t *testing.T) {
	url := taggedRepo(t, "snapshot", "release-candidate")

	latest, err := LatestTag(context.Background(), url, false)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestUpdateChanged(t *testing.T) {
	assert.True(t, Update{Repo: "r", OldRev: "v1.0.0", NewRev: "v1.1.0"}.Changed())
	assert.False(t, Update{Repo: "r", OldRev: "v1.0.0", NewRev: "v1.0.0"}.Changed())
	assert.False(t, Update{Repo: "r", OldRev: "v1.0.0", NewRev: ""}.Changed())
}
