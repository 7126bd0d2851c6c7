package rawhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

const (
	fetcherName    = "raw"
	defaultBaseURL = "https://raw.githubusercontent.com"
	retryMax       = 2
	retryWaitMin   = 200 * time.Millisecond
	retryWaitMax   = 2 * time.Second
)

// Fetcher downloads files from the raw-content host of GitHub. Transient
// failures (connection errors, 5xx) are retried, a 404 is not.
type Fetcher struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewFetcher creates a fetcher for raw.githubusercontent.com.
func NewFetcher() repositories.ContentFetcher {
	return NewFetcherWithBaseURL(defaultBaseURL)
}

// NewFetcherWithBaseURL points the fetcher at another raw-content host.
func NewFetcherWithBaseURL(baseURL string) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil
	return &Fetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (f *Fetcher) Name() string { return fetcherName }

func (f *Fetcher) Fetch(ctx context.Context, location entities.SourceLocation, timeout time.Duration) (string, error) {
	if !location.Parsed() {
		return "", fmt.Errorf("%w: %s", entities.ErrUnsupportedLocation, location)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/%s/%s/%s", f.baseURL, location.Owner, location.Repo, location.Ref, location.Path)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return string(body), nil
}
