//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/depscan/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const (
	defaultOwner = "acme"
	defaultRepo  = "poi-app"
	defaultRef   = "main"
	defaultPath  = "build.gradle"
	defaultText  = "dependencies {\n  compile 'org.apache.poi:poi:3.15'\n}"
)

// CandidateBuilder helps create test candidate files with a fluent interface.
type CandidateBuilder struct {
	*testkit.BaseBuilder
	owner   string
	repo    string
	ref     string
	path    string
	text    string
	dialect entities.Dialect
	raw     string
}

// NewCandidateBuilder creates a new candidate builder for a Gradle file
// declaring version 3.15.
func NewCandidateBuilder() *CandidateBuilder {
	return &CandidateBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		owner:       defaultOwner,
		repo:        defaultRepo,
		ref:         defaultRef,
		path:        defaultPath,
		text:        defaultText,
		dialect:     entities.DialectGradle,
	}
}

// WithRepository sets the owner and name of the repository holding the file.
func (b *CandidateBuilder) WithRepository(owner, repo string) *CandidateBuilder {
	b.owner = owner
	b.repo = repo
	return b
}

// WithPath sets the file path and derives the dialect from it.
func (b *CandidateBuilder) WithPath(path string) *CandidateBuilder {
	b.path = path
	if dialect, ok := entities.DialectForFile(path); ok {
		b.dialect = dialect
	}
	return b
}

// WithText sets the file content.
func (b *CandidateBuilder) WithText(text string) *CandidateBuilder {
	b.text = text
	return b
}

// WithDialect overrides the dialect.
func (b *CandidateBuilder) WithDialect(dialect entities.Dialect) *CandidateBuilder {
	b.dialect = dialect
	return b
}

// WithRawLocation uses a verbatim location instead of a GitHub blob URL.
func (b *CandidateBuilder) WithRawLocation(raw string) *CandidateBuilder {
	b.raw = raw
	return b
}

// Build creates the candidate (satisfies testkit.Builder interface).
func (b *CandidateBuilder) Build() interface{} {
	return b.BuildCandidate()
}

// BuildCandidate creates the candidate with a concrete return type.
func (b *CandidateBuilder) BuildCandidate() entities.RawCandidate {
	location := entities.NewSourceLocation(b.owner, b.repo, b.ref, b.path)
	if b.raw != "" {
		location = entities.ParseSourceLocation(b.raw)
	}
	return entities.RawCandidate{
		Text:     b.text,
		Location: location,
		Dialect:  b.dialect,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CandidateBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.owner = defaultOwner
	b.repo = defaultRepo
	b.ref = defaultRef
	b.path = defaultPath
	b.text = defaultText
	b.dialect = entities.DialectGradle
	b.raw = ""
	return b
}

// Clone creates a deep copy of the CandidateBuilder.
func (b *CandidateBuilder) Clone() testkit.Builder {
	return &CandidateBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		owner:       b.owner,
		repo:        b.repo,
		ref:         b.ref,
		path:        b.path,
		text:        b.text,
		dialect:     b.dialect,
		raw:         b.raw,
	}
}
