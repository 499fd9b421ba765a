package ingester

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OliverFendt/oss-review-toolkit/internal/scancode"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

const rawResult = `{
	"files_count": 1,
	"files": [
		{
			"path": "main.c",
			"licenses": [
				{"key": "mit", "spdx_license_key": "MIT", "start_line": 1, "end_line": 1}
			],
			"copyrights": [
				{"statements": ["Copyright (c) 2022 Example Corp."], "start_line": 2, "end_line": 2}
			],
			"scan_errors": []
		}
	]
}`

func TestSummaryFileName(t *testing.T) {
	assert.Equal(t, "result-summary.json", summaryFileName("/tmp/result.json", "json"))
	assert.Equal(t, "result-summary.sarif", summaryFileName("/tmp/result.json", "sarif"))
	assert.Equal(t, "scancode-summary.json", summaryFileName("scancode", ""))
}

func TestPrepareRequests(t *testing.T) {
	tmpDir := t.TempDir()
	ingester := New("", "json", 0, 1, hclog.NewNullLogger())

	requests, err := ingester.PrepareRequests([]string{filepath.Join(tmpDir, "result.json")}, "")
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, filepath.Join(tmpDir, "result-summary.json"), requests[0].OutputPath)
	assert.Equal(t, "json", requests[0].ReportFormat)
}

func TestPrepareRequestsMultipleInputsUseOutputFolder(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "summaries")
	ingester := New("", "sarif", 0, 2, hclog.NewNullLogger())

	requests, err := ingester.PrepareRequests([]string{
		filepath.Join(tmpDir, "one.json"),
		filepath.Join(tmpDir, "two.json"),
	}, outDir)
	require.NoError(t, err)

	require.Len(t, requests, 2)
	assert.Equal(t, filepath.Join(outDir, "one-summary.sarif"), requests[0].OutputPath)
	assert.Equal(t, filepath.Join(outDir, "two-summary.sarif"), requests[1].OutputPath)
	assert.DirExists(t, outDir)
}

func TestIngestAllDirect(t *testing.T) {
	tmpDir := t.TempDir()
	resultFile := filepath.Join(tmpDir, "result.json")
	require.NoError(t, os.WriteFile(resultFile, []byte(rawResult), 0644))

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	ingester := New("", "json", 0, 1, hclog.NewNullLogger())
	requests, err := ingester.PrepareRequests([]string{resultFile}, "")
	require.NoError(t, err)

	launches := ingester.IngestAll(cfg, requests)

	require.Len(t, launches.Launches, 1)
	assert.Equal(t, "OK", launches.Launches[0].Status)

	summaryFile := filepath.Join(tmpDir, "result-summary.json")
	data, err := os.ReadFile(summaryFile)
	require.NoError(t, err)

	var scanResult scancode.ScanResult
	require.NoError(t, json.Unmarshal(data, &scanResult))
	assert.Equal(t, "ScanCode", scanResult.Scanner.Name)
	require.Len(t, scanResult.Summary.Findings, 1)
	assert.Equal(t, "MIT", scanResult.Summary.Findings[0].License)
}

func TestIngestAllReportsFailures(t *testing.T) {
	tmpDir := t.TempDir()
	resultFile := filepath.Join(tmpDir, "broken.json")
	require.NoError(t, os.WriteFile(resultFile, []byte("not json"), 0644))

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	ingester := New("", "json", 0, 1, hclog.NewNullLogger())
	requests := []shared.ScannerScanRequest{
		{ResultsPath: resultFile, OutputPath: filepath.Join(tmpDir, "broken-summary.json"), EndTime: time.Now()},
	}

	launches := ingester.IngestAll(cfg, requests)

	require.Len(t, launches.Launches, 1)
	assert.Equal(t, "FAILED", launches.Launches[0].Status)
	assert.Contains(t, launches.Launches[0].Message, "valid JSON")
}

func TestWriteSummarySarif(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "summary.sarif")

	scanResult := &scancode.ScanResult{
		Scanner: scancode.ScannerDetails{Name: "ScanCode", Version: "30.1.0"},
		Summary: scancode.ScanSummary{
			Findings: []scancode.LicenseFindings{
				{License: "MIT", Locations: []scancode.TextLocation{{Path: "a.c", StartLine: 1, EndLine: 1}}},
			},
		},
	}

	require.NoError(t, WriteSummary(scanResult, outputPath, "sarif"))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"2.1.0\"")
	assert.Contains(t, string(data), "MIT")
}

func TestWriteSummaryRejectsUnknownFormat(t *testing.T) {
	err := WriteSummary(&scancode.ScanResult{}, filepath.Join(t.TempDir(), "x"), "xml")
	assert.ErrorContains(t, err, "unsupported report format")
}
