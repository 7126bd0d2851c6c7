package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

// Repository is re-exported from gitforge. Only the hosting identity
// (organization, name, remote) is used when grouping observations.
type Repository = gitforgeEntities.Repository
