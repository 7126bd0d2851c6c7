package repositories

import (
	"context"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// CandidateSource enumerates the build files of one repository checkout
// that mention the target group.
type CandidateSource interface {
	Candidates(ctx context.Context, repoDir string) ([]entities.RawCandidate, error)
}
