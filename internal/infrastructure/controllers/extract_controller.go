package controllers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ExtractController handles the "extract" subcommand (single file).
type ExtractController struct {
	command commands.Extract
}

// NewExtractController creates a new ExtractController.
func NewExtractController(command commands.Extract) *ExtractController {
	return &ExtractController{command: command}
}

// GetBind returns the Cobra command metadata for the extract controller.
func (it *ExtractController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "extract <file>",
		Short: "Extract the Apache POI version declared in one build file",
		Long: `Run a single Gradle or Maven build file through the extraction pipeline
and print the outcome. --location sets the GitHub blob URL the file was
read from, which is needed to look up properties defined in parent POMs.`,
	}
}

// Execute extracts and prints the version of one file.
func (it *ExtractController) Execute(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		logger.Error("extract needs exactly one file")
		return
	}
	filePath := args[0]

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	dialect, err := dialectFor(cmd, filePath)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		logger.Errorf("failed to read %q: %v", filePath, err)
		return
	}

	location, _ := cmd.Flags().GetString("location")
	if location == "" {
		location = filePath
	}

	extraction, err := it.command.Execute(context.Background(), settings, entities.RawCandidate{
		Text:     string(content),
		Location: entities.ParseSourceLocation(location),
		Dialect:  dialect,
	})
	if err != nil {
		logger.Errorf("Extraction failed: %v", err)
		return
	}

	out := cmd.OutOrStdout()
	switch extraction.Outcome {
	case entities.OutcomeFound:
		_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", extraction.Outcome, extraction.Token, extraction.Location)
	case entities.OutcomeUnexpected:
		_, _ = fmt.Fprintf(out, "%s\t%s\n%s\n", extraction.Outcome, extraction.Location, extraction.Context)
	case entities.OutcomeFiltered, entities.OutcomeBenign:
		_, _ = fmt.Fprintf(out, "%s\t%s\n", extraction.Outcome, extraction.Location)
	}
}

// AddFlags adds the extract-specific flags to the given Cobra command.
func (it *ExtractController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("dialect", "", "Build file dialect: gradle or maven (default: from the file name)")
	cmd.Flags().String("location", "", "GitHub blob URL of the file (default: the file path)")
	cmd.Flags().String("fetcher", "", "Parent POM fetcher: raw, github or git (default: from config)")
}

func dialectFor(cmd *cobra.Command, filePath string) (entities.Dialect, error) {
	if name, _ := cmd.Flags().GetString("dialect"); name != "" {
		return entities.ParseDialect(name)
	}
	dialect, ok := entities.DialectForFile(filepath.ToSlash(filePath))
	if !ok {
		return "", fmt.Errorf("cannot tell the dialect of %q, use --dialect", filePath)
	}
	return dialect, nil
}
