package sarif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OliverFendt/oss-review-toolkit/internal/scancode"
)

func TestFromScanResult(t *testing.T) {
	scanResult := &scancode.ScanResult{
		ID: "test",
		Scanner: scancode.ScannerDetails{
			Name:          "ScanCode",
			Version:       "30.1.0",
			Configuration: "--copyright --license --json-pp",
		},
		Summary: scancode.ScanSummary{
			FileCount: 2,
			Findings: []scancode.LicenseFindings{
				{
					License: "MIT",
					Locations: []scancode.TextLocation{
						{Path: "a.c", StartLine: 1, EndLine: 3},
						{Path: "b.c", StartLine: 5, EndLine: 5},
					},
					Copyrights: []scancode.CopyrightFindings{
						{
							Statement: "Copyright (c) 2020 Example Corp.",
							Locations: []scancode.TextLocation{{Path: "a.c", StartLine: 2, EndLine: 2}},
						},
					},
				},
			},
			Issues: []scancode.Issue{
				{Source: "ScanCode", Message: "ERROR: MemoryError while scanning file 'x'.", Severity: "error"},
			},
		},
	}

	report, err := FromScanResult(scanResult)
	require.NoError(t, err)

	require.Len(t, report.Runs, 1)
	run := report.Runs[0]

	assert.Equal(t, "ScanCode", run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.Version)
	assert.Equal(t, "30.1.0", *run.Tool.Driver.Version)

	// Two license locations plus one diagnostic.
	require.Len(t, run.Results, 3)

	first := run.Results[0]
	require.NotNil(t, first.RuleID)
	assert.Equal(t, "MIT", *first.RuleID)
	require.Len(t, first.Locations, 1)
	uri := first.Locations[0].PhysicalLocation.ArtifactLocation.URI
	require.NotNil(t, uri)
	assert.Equal(t, "a.c", *uri)

	last := run.Results[2]
	require.NotNil(t, last.Level)
	assert.Equal(t, "error", *last.Level)
	assert.Equal(t, "ERROR: MemoryError while scanning file 'x'.", *last.Message.Text)
}

func TestFromScanResultEmptySummary(t *testing.T) {
	scanResult := &scancode.ScanResult{
		Scanner: scancode.ScannerDetails{Name: "ScanCode"},
	}

	report, err := FromScanResult(scanResult)
	require.NoError(t, err)

	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}
