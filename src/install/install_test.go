package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/hookwright/src/config"
)

// fakeRepo lays out a bare-bones .git directory; install only needs the
// hooks dir, not a working repository.
func fakeRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "hooks"), 0o755))
	return root
}

func TestInstall_DefaultStage(t *testing.T) {
	root := fakeRepo(t)

	written, err := Install(root, nil)
	require.NoError(t, err)
	require.Len(t, written, 1)

	path := filepath.Join(root, ".git", "hooks", "pre-commit")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), marker)
	assert.Contains(t, string(data), "--hook-stage pre-commit")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "hook script must be executable")
}

func TestInstall_CommitMsgPassesFilename(t *testing.T) {
	root := fakeRepo(t)

	_, err := Install(root, []string{config.StageCommitMsg})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, ".git", "hooks", "commit-msg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `--commit-msg-filename "$1"`)
}

func TestInstall_RejectsManualStage(t *testing.T) {
	_, err := Install(fakeRepo(t), []string{config.StageManual})
	require.Error(t, err)

	_, err = Install(fakeRepo(t), []string{"before-lunch"})
	require.Error(t, err)
}

func TestInstall_PreservesForeignHook(t *testing.T) {
	root := fakeRepo(t)
	path := filepath.Join(root, ".git", "hooks", "pre-commit")
	foreign := "#!/bin/sh\necho somebody else\n"
	require.NoError(t, os.WriteFile(path, []byte(foreign), 0o755))

	_, err := Install(root, nil)
	require.NoError(t, err)

	legacy, err := os.ReadFile(path + ".legacy")
	require.NoError(t, err)
	assert.Equal(t, foreign, string(legacy))

	// Reinstalling over our own script does not stack .legacy copies.
	_, err = Install(root, nil)
	require.NoError(t, err)
	data, err := os.ReadFile(path + ".legacy")
	require.NoError(t, err)
	assert.Equal(t, foreign, string(data))
}

func TestUninstall_RestoresLegacy(t *testing.T) {
	root := fakeRepo(t)
	path := filepath.Join(root, ".git", "hooks", "pre-commit")
	foreign := "#!/bin/sh\necho somebody else\n"
	require.NoError(t, os.WriteFile(path, []byte(foreign), 0o755))

	_, err := Install(root, nil)
	require.NoError(t, err)

	removed, err := Uninstall(root, nil)
	require.NoError(t, err)
	require.Len(t, removed, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, foreign, string(data), "displaced hook restored")
	assert.NoFileExists(t, path+".legacy")
}

func TestUninstall_LeavesForeignHooksAlone(t *testing.T) {
	root := fakeRepo(t)
	path := filepath.Join(root, ".git", "hooks", "pre-commit")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	removed, err := Uninstall(root, nil)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.FileExists(t, path)
}

func TestInstalled(t *testing.T) {
	root := fakeRepo(t)

	stages, err := Installed(root)
	require.NoError(t, err)
	assert.Empty(t, stages)

	_, err = Install(root, []string{config.StagePreCommit, config.StagePrePush})
	require.NoError(t, err)

	stages, err = Installed(root)
	require.NoError(t, err)
	assert.Equal(t, []string{config.StagePreCommit, config.StagePrePush}, stages)
}
