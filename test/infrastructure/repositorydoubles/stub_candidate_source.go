//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// StubCandidateSource implements repositories.CandidateSource with canned
// candidates per repository directory.
type StubCandidateSource struct {
	ByDir  map[string][]entities.RawCandidate
	Errors map[string]error

	RequestedDirs []string
}

var _ repositories.CandidateSource = (*StubCandidateSource)(nil)

func (s *StubCandidateSource) Candidates(_ context.Context, repoDir string) ([]entities.RawCandidate, error) {
	s.RequestedDirs = append(s.RequestedDirs, repoDir)
	if err := s.Errors[repoDir]; err != nil {
		return nil, err
	}
	return s.ByDir[repoDir], nil
}
