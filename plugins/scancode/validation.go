package main

import (
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/validation"
)

// validateScan checks the necessary fields in ScannerScanRequest and returns errors if they are not set.
func (g *ScannerScancode) validateScan(args *shared.ScannerScanRequest) error {
	if err := validation.ValidateScanArgs(args); err != nil {
		return err
	}

	return nil
}
