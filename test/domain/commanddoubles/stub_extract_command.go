//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// StubExtractCommand is a stub implementation of commands.Extract.
type StubExtractCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.Extraction
	LastSettings     *entities.Settings
	LastCandidate    entities.RawCandidate
}

var _ commands.Extract = (*StubExtractCommand)(nil)

func (s *StubExtractCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	candidate entities.RawCandidate,
) (entities.Extraction, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastCandidate = candidate
	return s.Result, s.ExecuteErr
}
