//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// SpyContentFetcher implements repositories.ContentFetcher as a configurable spy.
// Contents is keyed by the raw-content URL of the requested location.
type SpyContentFetcher struct {
	FetcherName string
	Contents    map[string]string
	FetchErr    error

	mu         sync.Mutex
	FetchCalls []entities.SourceLocation
	Timeouts   []time.Duration
}

var _ repositories.ContentFetcher = (*SpyContentFetcher)(nil)

func (f *SpyContentFetcher) Name() string {
	if f.FetcherName == "" {
		return "spy"
	}
	return f.FetcherName
}

func (f *SpyContentFetcher) Fetch(
	_ context.Context, location entities.SourceLocation, timeout time.Duration,
) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchCalls = append(f.FetchCalls, location)
	f.Timeouts = append(f.Timeouts, timeout)
	if f.FetchErr != nil {
		return "", f.FetchErr
	}
	content, ok := f.Contents[location.RawURL()]
	if !ok {
		return "", fmt.Errorf("no content for %s", location.RawURL())
	}
	return content, nil
}

// Calls returns a copy of the requested locations.
func (f *SpyContentFetcher) Calls() []entities.SourceLocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entities.SourceLocation(nil), f.FetchCalls...)
}
