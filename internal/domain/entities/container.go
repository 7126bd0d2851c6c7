package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewVersionComparator); err != nil {
		return err
	}
	// Settings depend on the --config flag and are loaded by the controllers.
	return nil
}
