package gitsource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

const (
	remoteName = "origin"
	localOwner = "local"
)

var githubRemotePattern = regexp.MustCompile(`github\.com[:/]([-a-zA-Z0-9_.]+)/([-a-zA-Z0-9_.]+?)(?:\.git)?/?$`)

// CandidateSource lists the build files of the HEAD commit of a local clone.
// Only committed content is considered, so uncommitted edits never leak
// into a batch.
type CandidateSource struct{}

// NewCandidateSource creates a git-backed candidate source.
func NewCandidateSource() repositories.CandidateSource {
	return &CandidateSource{}
}

func (it *CandidateSource) Candidates(ctx context.Context, repoDir string) ([]entities.RawCandidate, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", repoDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD of %s: %w", repoDir, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit of %s: %w", repoDir, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", repoDir, err)
	}

	owner, name := repositoryIdentity(repo, repoDir)
	ref := head.Hash().String()

	var candidates []entities.RawCandidate
	err = tree.Files().ForEach(func(file *object.File) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		dialect, ok := entities.DialectForFile(file.Name)
		if !ok {
			return nil
		}
		content, readErr := file.Contents()
		if readErr != nil {
			logger.Warnf("[gitsource] skipping %s: %v", file.Name, readErr)
			return nil
		}
		if !strings.Contains(content, entities.TargetGroup) {
			return nil
		}
		candidates = append(candidates, entities.RawCandidate{
			Text:     content,
			Location: entities.NewSourceLocation(owner, name, ref, file.Name),
			Dialect:  dialect,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree of %s: %w", repoDir, err)
	}

	hosting := entities.NewSourceLocation(owner, name, ref, "").Repository()
	logger.Debugf("[gitsource] %d candidate files in %s at %s", len(candidates), hosting.RemoteURL, ref)
	return candidates, nil
}

// repositoryIdentity derives owner and name from the GitHub origin remote,
// falling back to the directory name for clones hosted elsewhere.
func repositoryIdentity(repo *git.Repository, repoDir string) (string, string) {
	fallback := filepath.Base(absolute(repoDir))

	remote, err := repo.Remote(remoteName)
	if err != nil {
		if !errors.Is(err, git.ErrRemoteNotFound) {
			logger.Warnf("[gitsource] failed to read remote of %s: %v", repoDir, err)
		}
		return localOwner, fallback
	}
	for _, url := range remote.Config().URLs {
		if m := githubRemotePattern.FindStringSubmatch(url); m != nil {
			return m[1], m[2]
		}
	}
	return localOwner, fallback
}

func absolute(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
