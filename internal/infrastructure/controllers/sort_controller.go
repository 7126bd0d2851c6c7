package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// SortController handles the "sort" subcommand.
type SortController struct {
	command commands.Sort
}

// NewSortController creates a new SortController.
func NewSortController(command commands.Sort) *SortController {
	return &SortController{command: command}
}

// GetBind returns the Cobra command metadata for the sort controller.
func (it *SortController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sort <version...>",
		Short: "Order version strings the way scan results are ordered",
	}
}

// Execute prints the versions in ascending order, marking the highest.
func (it *SortController) Execute(cmd *cobra.Command, args []string) {
	result := it.command.Execute(args)
	for _, version := range result.Ordered {
		marker := " "
		if version == result.Highest {
			marker = "*"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, version)
	}
}
