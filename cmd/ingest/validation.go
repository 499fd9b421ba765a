package ingest

import (
	"fmt"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/files"
)

// validateIngestArgs validates the arguments provided to the ingest command.
func validateIngestArgs(options *RunOptionsIngest, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one result file must be specified")
	}

	for _, resultFile := range args {
		if err := files.ValidatePath(resultFile); err != nil {
			return fmt.Errorf("the result file is not readable: %w", err)
		}
	}

	if options.ReportFormat != "json" && options.ReportFormat != "sarif" {
		return fmt.Errorf("unsupported report format: %q", options.ReportFormat)
	}

	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	if options.ExitCode < 0 {
		return fmt.Errorf("the 'exit-code' flag must not be negative")
	}

	return nil
}
