// Package autoupdate moves revision pins in the configuration to the
// latest released tag of each hook source.
package autoupdate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/sofmeright/hookwright/src/config"
)

// Update describes one pin change.
type Update struct {
	Repo   string
	OldRev string
	NewRev string
}

// Changed reports whether the pin actually moves.
func (u Update) Changed() bool { return u.NewRev != "" && u.NewRev != u.OldRev }

// Plan resolves the latest tag for every remote source in the config.
// With bleedingEdge, prerelease tags are eligible too.
func Plan(ctx context.Context, cfg *config.Config, bleedingEdge bool) ([]Update, error) {
	var updates []Update
	for _, repo := range cfg.Repos {
		if !repo.Remote() {
			continue
		}

		latest, err := LatestTag(ctx, repo.Repo, bleedingEdge)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", repo.Repo, err)
		}

		updates = append(updates, Update{
			Repo:   repo.Repo,
			OldRev: repo.Rev,
			NewRev: latest,
		})
	}
	return updates, nil
}

// LatestTag lists the remote's tags and returns the highest semantic
// version. Returns "" when the remote has no version-shaped tags —
// the pin is left alone rather than guessed.
func LatestTag(ctx context.Context, url string, bleedingEdge bool) (string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	type candidate struct {
		tag string
		ver *semver.Version
	}
	var candidates []candidate

	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		tag := ref.Name().Short()
		if strings.HasSuffix(tag, "^{}") {
			continue // peeled duplicate
		}

		ver, err := semver.NewVersion(tag)
		if err != nil {
			continue // not a version tag
		}
		if ver.Prerelease() != "" && !bleedingEdge {
			continue
		}
		candidates = append(candidates, candidate{tag: tag, ver: ver})
	}

	if len(candidates) == 0 {
		return "", nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ver.LessThan(candidates[j].ver)
	})
	return candidates[len(candidates)-1].tag, nil
}
