package sarif

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/OliverFendt/oss-review-toolkit/internal/scancode"
)

const toolInformationURI = "https://github.com/nexB/scancode-toolkit"

// FromScanResult converts a normalized scan result into a SARIF report:
// one result per license finding location, plus one error-level result per
// diagnostic of the run.
func FromScanResult(scanResult *scancode.ScanResult) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(scanResult.Scanner.Name, toolInformationURI)
	if version := scanResult.Scanner.Version; version != "" {
		run.Tool.Driver.Version = &version
	}

	for _, finding := range scanResult.Summary.Findings {
		rule := run.AddRule(finding.License).
			WithDescription(fmt.Sprintf("License %s detected by %s.", finding.License, scanResult.Scanner.Name))

		for _, location := range finding.Locations {
			result := sarif.NewRuleResult(rule.ID).
				WithMessage(sarif.NewTextMessage(licenseMessage(finding))).
				WithLevel("note").
				WithLocations([]*sarif.Location{findingLocation(location)})
			run.AddResult(result)
		}
	}

	for _, issue := range scanResult.Summary.Issues {
		result := sarif.NewRuleResult("scan-error").
			WithMessage(sarif.NewTextMessage(issue.Message)).
			WithLevel("error")
		run.AddResult(result)
	}

	report.AddRun(run)
	return report, nil
}

func licenseMessage(finding scancode.LicenseFindings) string {
	if len(finding.Copyrights) == 0 {
		return fmt.Sprintf("License %s found.", finding.License)
	}
	return fmt.Sprintf("License %s found with %d associated copyright statements.", finding.License, len(finding.Copyrights))
}

func findingLocation(location scancode.TextLocation) *sarif.Location {
	return sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(location.Path)).
			WithRegion(sarif.NewRegion().
				WithStartLine(location.StartLine).
				WithEndLine(location.EndLine)),
	)
}
