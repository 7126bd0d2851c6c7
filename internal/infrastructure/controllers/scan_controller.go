package controllers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
)

const maxHistoryLine = 64 * 1024 * 1024

// ScanController handles the "scan" subcommand (batch mode over local clones).
type ScanController struct {
	command    commands.Scan
	comparator *entities.VersionComparator
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan, comparator *entities.VersionComparator) *ScanController {
	return &ScanController{command: command, comparator: comparator}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan [repo-dir...]",
		Short: "Report the Apache POI versions used by local repositories",
		Long: `Scan the committed Gradle and Maven build files of one or more local
clones for Apache POI dependencies, resolve variable references (walking up
to parent POMs when needed) and report the highest version per repository.

With --history, earlier batches (one JSON record per line, as printed by
--json) are replayed to report repositories that are new or moved up.`,
	}
}

// Execute runs the scan and prints the summary tables.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	repoDirs := args
	if len(repoDirs) == 0 {
		repoDirs = []string{"."}
	}

	date, _ := cmd.Flags().GetString("date")
	historyPath, _ := cmd.Flags().GetString("history")
	asJSON, _ := cmd.Flags().GetBool("json")

	history, err := readHistory(historyPath)
	if err != nil {
		logger.Errorf("failed to read history: %v", err)
		return
	}

	result, err := it.command.Execute(ctx, settings, commands.ScanOptions{
		RepoDirs: repoDirs,
		Date:     date,
		History:  history,
	})
	if err != nil {
		logger.Errorf("Scan failed: %v", err)
		return
	}

	if asJSON {
		line, marshalErr := json.Marshal(result.Record)
		if marshalErr != nil {
			logger.Errorf("failed to encode batch: %v", marshalErr)
			return
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(line))
		return
	}

	it.printVersions(cmd, result)
	it.printChanges(cmd, result)
	it.printUnexpected(cmd, result)
}

// AddFlags adds the scan-specific flags to the given Cobra command.
func (it *ScanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the batch as one JSON line instead of tables")
	cmd.Flags().String("date", "", "Batch date as yyyy-MM-dd (default: today)")
	cmd.Flags().String("history", "", "File with earlier batches, one JSON record per line")
	cmd.Flags().Int("workers", 0, "Number of files processed in parallel (default: from config)")
	cmd.Flags().String("fetcher", "", "Parent POM fetcher: raw, github or git (default: from config)")
}

func (it *ScanController) printVersions(cmd *cobra.Command, result *commands.ScanResult) {
	counts := make(map[string]int)
	for version, repos := range result.RepositoryVersions {
		counts[entities.PrintableVersion(version)] += len(repos)
	}
	versions := make([]string, 0, len(counts))
	for version := range counts {
		versions = append(versions, version)
	}
	it.comparator.Sort(versions)

	var tableBuffer bytes.Buffer
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Version", "Repositories"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0
	for _, version := range versions {
		table.Append([]string{version, strconv.Itoa(counts[version])})
		total += counts[version]
	}
	table.SetFooter([]string{
		fmt.Sprintf("Total Versions %d", len(versions)),
		strconv.Itoa(total),
	})

	table.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s", tableBuffer.String())
}

func (it *ScanController) printChanges(cmd *cobra.Command, result *commands.ScanResult) {
	if len(result.Changes) == 0 {
		return
	}

	var tableBuffer bytes.Buffer
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Repository", "Before", "After", "Scope"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, change := range result.Changes {
		table.Append([]string{change.Repository, change.Before, change.After, string(change.Scope)})
	}

	table.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nChanges on %s:\n%s", result.Record.Date, tableBuffer.String())
}

func (it *ScanController) printUnexpected(cmd *cobra.Command, result *commands.ScanResult) {
	for _, extraction := range result.Unexpected {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nNo version found in %s:\n%s\n", extraction.Location, extraction.Context)
	}
}

func readHistory(path string) ([]*entities.VersionRecord, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	var records []*entities.VersionRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxHistoryLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		record := &entities.VersionRecord{}
		if unmarshalErr := json.Unmarshal(line, record); unmarshalErr != nil {
			return nil, fmt.Errorf("invalid record in %q: %w", path, unmarshalErr)
		}
		records = append(records, record)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, scanErr)
	}
	return records, nil
}
