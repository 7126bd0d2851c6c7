package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ContentFetcher returns the text of a file addressed by a SourceLocation.
// It is only used to read parent build files during variable resolution.
type ContentFetcher interface {
	// Name returns the fetcher identifier (e.g. "raw", "github", "git").
	Name() string

	// Fetch reads the file within the given timeout. Any failure means the
	// file is treated as unavailable.
	Fetch(ctx context.Context, location entities.SourceLocation, timeout time.Duration) (string, error)
}
