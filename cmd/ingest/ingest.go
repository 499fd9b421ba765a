package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OliverFendt/oss-review-toolkit/internal/ingester"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
	sharederrors "github.com/OliverFendt/oss-review-toolkit/pkg/shared/errors"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/logger"
)

// RunOptionsIngest holds the arguments for the ingest command.
type RunOptionsIngest struct {
	Plugin       string
	ReportFormat string
	OutputPath   string
	ExitCode     int
	Threads      int
}

// Global variables for configuration and command arguments
var (
	AppConfig          *config.Config
	ingestOptions      RunOptionsIngest
	exampleIngestUsage = `  # Ingesting a raw ScanCode result file
  ort ingest /path/to/scancode-result.json

  # Ingesting a result file and writing the summary to a specific location
  ort ingest --output /path/to/summary.json /path/to/scancode-result.json

  # Ingesting a result file as a SARIF report
  ort ingest --format sarif /path/to/scancode-result.json

  # Ingesting the results of a failed tool process; memory-only or
  # timeout-only failures are still reported as successful scans
  ort ingest --exit-code 1 /path/to/scancode-result.json

  # Ingesting multiple result files with multiple concurrent threads
  ort ingest -j 2 --output /path/to/summaries /path/to/one.json /path/to/two.json`
)

// IngestCmd represents the ingest command.
var IngestCmd = &cobra.Command{
	Use:                   "ingest [--format/-f FORMAT] [--output/-o PATH] [--exit-code CODE] [-j THREADS_NUMBER, default=1] RESULT_FILE...",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleIngestUsage,
	Short:                 "Normalizes raw ScanCode result files into scan summaries",
	RunE:                  runIngestCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runIngestCommand executes the ingest command.
func runIngestCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-ingest")

	if err := validateIngestArgs(&ingestOptions, args); err != nil {
		logger.Error("invalid ingest arguments", "error", err)
		return err
	}

	i := ingester.New(
		ingestOptions.Plugin,
		ingestOptions.ReportFormat,
		ingestOptions.ExitCode,
		ingestOptions.Threads,
		logger,
	)

	requests, err := i.PrepareRequests(args, ingestOptions.OutputPath)
	if err != nil {
		logger.Error("failed to prepare ingestion requests", "error", err)
		return err
	}

	launches := i.IngestAll(AppConfig, requests)

	if err := shared.WriteGenericResult(AppConfig, logger, launches, "INGEST"); err != nil {
		logger.Error("failed to write result", "error", err)
		return err
	}

	for _, launch := range launches.Launches {
		if launch.Status == "FAILED" {
			err := fmt.Errorf("ingest command failed for at least one result file")
			logger.Error("ingest command failed", "error", err)
			return sharederrors.NewCommandErrorWithResult(launches, err, 2)
		}
	}

	logger.Info("ingest command completed successfully")
	return nil
}

// Initialize flags for the ingest command.
func init() {
	IngestCmd.Flags().StringVarP(&ingestOptions.Plugin, "plugin", "p", "", "Name of a scanner plugin to dispatch ingestion to instead of running in-process.")
	IngestCmd.Flags().StringVarP(&ingestOptions.ReportFormat, "format", "f", "json", "Format for the normalized summary (json, sarif).")
	IngestCmd.Flags().BoolP("help", "h", false, "Show help for the ingest command.")
	IngestCmd.Flags().StringVarP(&ingestOptions.OutputPath, "output", "o", "", "Path to the output file or directory where summaries will be saved.")
	IngestCmd.Flags().IntVar(&ingestOptions.ExitCode, "exit-code", 0, "Exit code of the tool process that produced the result files.")
	IngestCmd.Flags().IntVarP(&ingestOptions.Threads, "threads", "j", 1, "Number of concurrent threads to use.")
}
