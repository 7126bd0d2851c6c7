//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// SpyMetricsRepository implements repositories.MetricsRepository and records
// every observation. It is safe for use from the scan worker pool.
type SpyMetricsRepository struct {
	FlushErr error

	mu          sync.Mutex
	Extractions map[entities.Dialect]map[entities.Outcome]int
	Malformed   map[entities.Dialect]int
	Fetches     []FetchObservation
	FlushPaths  []string
}

// FetchObservation records a single ObserveFetch call.
type FetchObservation struct {
	Fetcher string
	Err     error
}

var _ repositories.MetricsRepository = (*SpyMetricsRepository)(nil)

func NewSpyMetricsRepository() *SpyMetricsRepository {
	return &SpyMetricsRepository{
		Extractions: make(map[entities.Dialect]map[entities.Outcome]int),
		Malformed:   make(map[entities.Dialect]int),
	}
}

func (m *SpyMetricsRepository) ObserveExtraction(dialect entities.Dialect, outcome entities.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Extractions[dialect] == nil {
		m.Extractions[dialect] = make(map[entities.Outcome]int)
	}
	m.Extractions[dialect][outcome]++
}

func (m *SpyMetricsRepository) ObserveMalformed(dialect entities.Dialect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Malformed[dialect]++
}

func (m *SpyMetricsRepository) ObserveFetch(fetcher string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches = append(m.Fetches, FetchObservation{Fetcher: fetcher, Err: err})
}

func (m *SpyMetricsRepository) Flush(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushPaths = append(m.FlushPaths, path)
	return m.FlushErr
}
