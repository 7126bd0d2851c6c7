package repositories

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	domainRepos "github.com/rios0rios0/depscan/internal/domain/repositories"
)

// FetcherFactory is a constructor function that creates a ContentFetcher from the settings.
type FetcherFactory func(settings *entities.Settings) domainRepos.ContentFetcher

// FetcherRegistry manages all registered parent-file fetchers.
type FetcherRegistry struct {
	fetchers map[string]FetcherFactory
	metrics  domainRepos.MetricsRepository
}

// NewFetcherRegistry creates an empty fetcher registry. Every fetcher it
// hands out reports its calls to metrics.
func NewFetcherRegistry(metrics domainRepos.MetricsRepository) *FetcherRegistry {
	return &FetcherRegistry{
		fetchers: make(map[string]FetcherFactory),
		metrics:  metrics,
	}
}

// Register adds a fetcher factory under the given name (e.g. "raw").
func (r *FetcherRegistry) Register(name string, factory FetcherFactory) {
	r.fetchers[name] = factory
}

// Get returns a configured fetcher for the given name.
func (r *FetcherRegistry) Get(name string, settings *entities.Settings) (domainRepos.ContentFetcher, error) {
	factory, ok := r.fetchers[name]
	if !ok {
		return nil, fmt.Errorf("unknown fetcher type: %q", name)
	}
	return &observedFetcher{inner: factory(settings), metrics: r.metrics}, nil
}

// Names returns the list of registered fetcher names.
func (r *FetcherRegistry) Names() []string {
	names := make([]string, 0, len(r.fetchers))
	for name := range r.fetchers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type observedFetcher struct {
	inner   domainRepos.ContentFetcher
	metrics domainRepos.MetricsRepository
}

func (f *observedFetcher) Name() string { return f.inner.Name() }

func (f *observedFetcher) Fetch(
	ctx context.Context,
	location entities.SourceLocation,
	timeout time.Duration,
) (string, error) {
	content, err := f.inner.Fetch(ctx, location, timeout)
	f.metrics.ObserveFetch(f.inner.Name(), err)
	return content, err
}
