package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// loadSettings reads the file named by --config, or the first config file
// found in the default locations.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		settings.Workers = workers
	}
	if fetcher, _ := cmd.Flags().GetString("fetcher"); fetcher != "" {
		settings.Fetcher = fetcher
	}
	return settings, nil
}
