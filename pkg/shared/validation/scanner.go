package validation

import (
	"fmt"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
)

// ValidateScanArgs checks the necessary fields in ScannerScanRequest and returns errors if they are not set.
func ValidateScanArgs(args *shared.ScannerScanRequest) error {
	if args == nil {
		return fmt.Errorf("scan request is nil")
	}
	if args.ResultsPath == "" {
		return fmt.Errorf("the results path must be specified")
	}
	if args.ReportFormat != "" && args.ReportFormat != "json" && args.ReportFormat != "sarif" {
		return fmt.Errorf("unsupported report format: %q", args.ReportFormat)
	}
	if !args.EndTime.IsZero() && args.EndTime.Before(args.StartTime) {
		return fmt.Errorf("the end time must not precede the start time")
	}
	return nil
}
