package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

const fetcherName = "github"

// Fetcher reads files through the GitHub contents API at the location's ref.
// Authenticated requests get a much higher rate limit than raw downloads.
type Fetcher struct {
	client *gh.Client
}

// NewFetcher creates a fetcher, authenticated when token is not empty.
func NewFetcher(token string) repositories.ContentFetcher {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return NewFetcherWithClient(client)
}

// NewFetcherWithClient wraps an already configured client.
func NewFetcherWithClient(client *gh.Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) Name() string { return fetcherName }

func (f *Fetcher) Fetch(ctx context.Context, location entities.SourceLocation, timeout time.Duration) (string, error) {
	if !location.Parsed() {
		return "", fmt.Errorf("%w: %s", entities.ErrUnsupportedLocation, location)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fileContent, _, _, err := f.client.Repositories.GetContents(
		ctx, location.Owner, location.Repo, location.Path,
		&gh.RepositoryContentGetOptions{Ref: location.Ref},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", location.Path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", location.Path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}
	return content, nil
}
