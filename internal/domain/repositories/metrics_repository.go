package repositories

import "github.com/rios0rios0/depscan/internal/domain/entities"

// MetricsRepository counts scan events and persists them at the end of a run.
type MetricsRepository interface {
	ObserveExtraction(dialect entities.Dialect, outcome entities.Outcome)
	ObserveMalformed(dialect entities.Dialect)
	ObserveFetch(fetcher string, err error)
	Flush(path string) error
}
