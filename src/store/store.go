// Package store materializes remote hook sources: each repo URL + rev
// pair is cloned once into a content-keyed cache directory and reused
// across runs.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/sofmeright/hookwright/src/config"
)

const readyMarker = ".hookwright-ready"

// Store is the on-disk cache of cloned hook sources.
type Store struct {
	Dir     string
	Verbose bool
}

// Default returns the store under the user cache directory.
func Default() (*Store, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache dir: %w", err)
	}
	return &Store{Dir: filepath.Join(base, "hookwright", "repos")}, nil
}

// Clone materializes url at rev and returns the clone directory.
// A completed clone is detected by its marker file and reused; a
// half-finished one (interrupted clone) is discarded and redone.
func (s *Store) Clone(ctx context.Context, url, rev string) (string, error) {
	dir := filepath.Join(s.Dir, cloneKey(url, rev))

	if _, err := os.Stat(filepath.Join(dir, readyMarker)); err == nil {
		return dir, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("clearing stale clone: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	if s.Verbose {
		fmt.Fprintf(os.Stderr, "store: cloning %s at %s\n", url, rev)
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("cloning %s: %w", url, err)
	}

	if err := checkout(repo, rev); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("checking out %s at %s: %w", url, rev, err)
	}

	if err := os.WriteFile(filepath.Join(dir, readyMarker), []byte(url+"@"+rev+"\n"), 0o644); err != nil {
		return "", err
	}
	return dir, nil
}

// Resolve implements the runner's Source: clone the repo, look the hook
// up in its manifest, and merge the user's overrides over the manifest
// defaults.
func (s *Store) Resolve(ctx context.Context, repo config.RepoConfig, hc config.HookConfig) (config.HookConfig, string, error) {
	dir, err := s.Clone(ctx, repo.Repo, repo.Rev)
	if err != nil {
		return hc, "", err
	}

	manifest, err := LoadManifest(dir)
	if err != nil {
		return hc, "", err
	}

	entry, ok := manifest.Lookup(hc.ID)
	if !ok {
		return hc, "", fmt.Errorf("hook %q not found in manifest of %s", hc.ID, repo.Repo)
	}

	return mergeManifest(entry, hc), dir, nil
}

// Clear removes every cached clone.
func (s *Store) Clear() error {
	return os.RemoveAll(s.Dir)
}

// cloneKey derives a stable directory name from the source identity.
// Rev is part of the key: pins are opaque and compared only for
// equality, so each pin gets its own clone.
func cloneKey(url, rev string) string {
	sum := sha256.Sum256([]byte(url + "@" + rev))
	return hex.EncodeToString(sum[:])[:16]
}

// checkout moves the worktree to rev (tag, branch, or commit hash).
func checkout(repo *git.Repository, rev string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash})
}
