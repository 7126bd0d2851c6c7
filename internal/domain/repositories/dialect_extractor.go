package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ParentLookup bounds the walk to parent build files when a variable is not
// defined in the file that uses it. A nil Fetcher disables the walk.
type ParentLookup struct {
	Fetcher  ContentFetcher
	MaxDepth int
	Timeout  time.Duration
}

// DialectExtractor pulls the target library's version out of one build-file
// dialect (Gradle scripts, Maven POMs). Implementations hold only compiled
// patterns and are safe for concurrent use.
type DialectExtractor interface {
	// Dialect returns the dialect this extractor understands.
	Dialect() entities.Dialect

	// Filter removes every declaration that mentions the group but is not a
	// dependency on the library itself (exclusions, comments, converters).
	Filter(text string) string

	// Extract runs the ordered declaration shapes over filtered text.
	Extract(text string) entities.Match

	// IsBenign reports whether a non-match is one of the known harmless forms.
	IsBenign(text string) bool

	// Resolve substitutes a variable reference with its definition. It returns
	// false (and the token unchanged) when the definition cannot be found, and
	// a *entities.MalformedVariableError when the name cannot be looked up.
	Resolve(
		ctx context.Context,
		token string,
		text string,
		location entities.SourceLocation,
		lookup ParentLookup,
	) (string, bool, error)
}
