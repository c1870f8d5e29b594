// Package gitx wraps the git queries the runner needs: repository
// discovery, the staged file set, tracked files, and ref-to-ref diffs.
package gitx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// FindRoot locates the repository root at or above dir.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for d := abs; ; d = filepath.Dir(d) {
		if _, err := os.Lstat(filepath.Join(d, ".git")); err == nil {
			return d, nil
		}
		if filepath.Dir(d) == d {
			return "", fmt.Errorf("not in a git repository (searched from %s)", abs)
		}
	}
}

// GitDir resolves the .git directory for a repository root, following
// the gitdir indirection worktrees and submodules use.
func GitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("unrecognized .git file at %s", dotGit)
	}
	target := strings.TrimPrefix(line, prefix)
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	return filepath.Clean(target), nil
}

// StagedFiles returns paths with staged changes, relative to the repo
// root. Staged deletions are excluded — there is no content to check.
func StagedFiles(root string) ([]string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var paths []string
	for path, s := range status {
		switch s.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// TrackedFiles returns every path in HEAD's tree plus newly staged
// additions. This is the file universe for --all-files.
func TrackedFiles(root string) ([]string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repo: %w", err)
	}

	set := make(map[string]bool)

	headRef, err := repo.Head()
	if err == nil {
		commit, err := repo.CommitObject(headRef.Hash())
		if err != nil {
			return nil, err
		}
		tree, err := commit.Tree()
		if err != nil {
			return nil, err
		}
		files := tree.Files()
		err = files.ForEach(func(f *object.File) error {
			set[f.Name] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Unborn HEAD (fresh repo): only staged files exist.

	staged, err := StagedFiles(root)
	if err != nil {
		return nil, err
	}
	for _, p := range staged {
		set[p] = true
	}

	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// ChangedFiles returns paths that differ between two revisions
// (--from-ref/--to-ref runs).
func ChangedFiles(ctx context.Context, root, fromRef, toRef string) ([]string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repo: %w", err)
	}

	fromTree, err := revTree(repo, fromRef)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", fromRef, err)
	}
	toTree, err := revTree(repo, toRef)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", toRef, err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	set := make(map[string]bool)
	for _, change := range changes {
		if name := changeName(change); name != "" {
			set[name] = true
		}
	}

	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func revTree(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

// changeName extracts the file path from a tree change.
func changeName(change *object.Change) string {
	action, err := change.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return change.To.Name
	case merkletrie.Delete:
		return change.From.Name
	}
	return ""
}
