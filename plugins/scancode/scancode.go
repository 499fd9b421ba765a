package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/OliverFendt/oss-review-toolkit/internal/ingester"
	"github.com/OliverFendt/oss-review-toolkit/internal/scancode"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

// ScannerScancode ingests raw ScanCode result files on behalf of a plugin host.
// The host runs the external tool itself and hands over the result file path
// together with the process outcome.
type ScannerScancode struct {
	logger hclog.Logger
	config *config.Config
}

// Setup stores the host supplied configuration for subsequent scans.
func (g *ScannerScancode) Setup(configData config.Config) (bool, error) {
	g.config = &configData
	return true, nil
}

// Scan normalizes the raw result file of a finished tool run and writes the
// summary. A failed process with memory-only or timeout-only errors still
// yields a successful response.
func (g *ScannerScancode) Scan(args shared.ScannerScanRequest) (shared.ScannerScanResponse, error) {
	if err := g.validateScan(&args); err != nil {
		return shared.ScannerScanResponse{}, err
	}

	cfg := g.config
	if cfg == nil {
		defaults, err := config.LoadConfig("")
		if err != nil {
			return shared.ScannerScanResponse{}, err
		}
		cfg = defaults
	}

	engine := scancode.New(cfg, g.logger)

	var procErr error
	if args.ExitCode != 0 {
		procErr = fmt.Errorf("%s failed with exit code %d: %s", engine.Name(), args.ExitCode, args.ExitMessage)
	}

	scanResult, err := engine.ProcessResult(args.ResultsPath, args.StartTime, args.EndTime, procErr)
	if err != nil {
		g.logger.Error("ingestion failed", "results_file", args.ResultsPath, "error", err)
		return shared.ScannerScanResponse{}, err
	}

	outputPath := args.OutputPath
	if outputPath == "" {
		base := filepath.Base(args.ResultsPath)
		outputPath = filepath.Join(filepath.Dir(args.ResultsPath), base[:len(base)-len(filepath.Ext(base))]+"-summary.json")
	}

	if err := ingester.WriteSummary(&scanResult, outputPath, args.ReportFormat); err != nil {
		return shared.ScannerScanResponse{}, err
	}

	g.logger.Info("ingestion finished", "results_file", args.ResultsPath, "summary", outputPath,
		"findings", len(scanResult.Summary.Findings), "issues", len(scanResult.Summary.Issues))

	return shared.ScannerScanResponse{SummaryPath: outputPath, Success: true}, nil
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Trace,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	scanner := &ScannerScancode{
		logger: logger,
	}
	// pluginMap is the map of plugins we can dispense.
	var pluginMap = map[string]plugin.Plugin{
		"scanner": &shared.ScannerPlugin{Impl: scanner},
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins:         pluginMap,
	})
}
