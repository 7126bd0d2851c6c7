package repositories

import (
	"fmt"
	"slices"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	domainRepos "github.com/rios0rios0/depscan/internal/domain/repositories"
)

// ExtractorRegistry manages the dialect extractors, keyed by dialect.
type ExtractorRegistry struct {
	extractors map[entities.Dialect]domainRepos.DialectExtractor
}

// NewExtractorRegistry creates an empty extractor registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: make(map[entities.Dialect]domainRepos.DialectExtractor),
	}
}

// Register adds an extractor under its dialect.
func (r *ExtractorRegistry) Register(e domainRepos.DialectExtractor) {
	r.extractors[e.Dialect()] = e
}

// Get returns the extractor for the given dialect.
func (r *ExtractorRegistry) Get(dialect entities.Dialect) (domainRepos.DialectExtractor, error) {
	extractor, ok := r.extractors[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnsupportedDialect, dialect)
	}
	return extractor, nil
}

// Dialects returns the registered dialects in sorted order.
func (r *ExtractorRegistry) Dialects() []entities.Dialect {
	dialects := make([]entities.Dialect, 0, len(r.extractors))
	for dialect := range r.extractors {
		dialects = append(dialects, dialect)
	}
	slices.Sort(dialects)
	return dialects
}
