package gitrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

const fetcherName = "git"

// Fetcher reads files from a local clone at the revision named by the
// location, so parent lookups work offline. The clone must contain the ref.
type Fetcher struct {
	repoDir string
}

// NewFetcher creates a fetcher backed by the clone in repoDir.
func NewFetcher(repoDir string) repositories.ContentFetcher {
	return &Fetcher{repoDir: repoDir}
}

func (f *Fetcher) Name() string { return fetcherName }

// Fetch ignores the timeout: reads are local and do not block on the network.
func (f *Fetcher) Fetch(ctx context.Context, location entities.SourceLocation, _ time.Duration) (string, error) {
	if !location.Parsed() {
		return "", fmt.Errorf("%w: %s", entities.ErrUnsupportedLocation, location)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(f.repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", f.repoDir, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(location.Ref))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", location.Ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	file, err := commit.File(location.Path)
	if err != nil {
		return "", fmt.Errorf("failed to find %q at %s: %w", location.Path, hash, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", location.Path, err)
	}
	return content, nil
}
