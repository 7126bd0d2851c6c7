package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/infrastructure/controllers"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories"
)

// RegisterProviders wires every layer of depscan into the DIG container:
// extractors, fetchers and metrics first, then the comparator, the
// commands, the CLI controllers and finally the app itself.
func RegisterProviders(container *dig.Container) error {
	layers := []func(*dig.Container) error{
		repositories.RegisterProviders,
		entities.RegisterProviders,
		commands.RegisterProviders,
		controllers.RegisterProviders,
	}
	for _, register := range layers {
		if err := register(container); err != nil {
			return err
		}
	}
	return container.Provide(NewAppInternal)
}
