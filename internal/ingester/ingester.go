package ingester

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/OliverFendt/oss-review-toolkit/internal/sarif"
	"github.com/OliverFendt/oss-review-toolkit/internal/scancode"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/files"
)

// Ingester represents the configuration and behavior of a result ingestion run.
type Ingester struct {
	pluginName     string       // Name of a scanner plugin to dispatch to; empty runs the engine in-process
	reportFormat   string       // Format of the summary to generate (json, sarif)
	exitCode       int          // Exit code of the tool process that produced the results
	concurrentJobs int          // Number of concurrent jobs to run
	logger         hclog.Logger // Logger for logging messages and errors
}

// New creates a new Ingester instance with the provided configuration.
func New(pluginName, reportFormat string, exitCode, concurrentJobs int, logger hclog.Logger) *Ingester {
	return &Ingester{
		pluginName:     pluginName,
		reportFormat:   reportFormat,
		exitCode:       exitCode,
		concurrentJobs: concurrentJobs,
		logger:         logger,
	}
}

// PrepareRequests prepares one ingestion request per raw result file.
func (s *Ingester) PrepareRequests(resultFiles []string, outputPath string) ([]shared.ScannerScanRequest, error) {
	requests := make([]shared.ScannerScanRequest, 0, len(resultFiles))

	for _, resultFile := range resultFiles {
		summaryFile, err := s.determineSummaryPath(resultFile, outputPath, len(resultFiles) > 1)
		if err != nil {
			return nil, fmt.Errorf("failed to determine summary file path: %w", err)
		}

		requests = append(requests, shared.ScannerScanRequest{
			ResultsPath:  resultFile,
			OutputPath:   summaryFile,
			ReportFormat: s.reportFormat,
			ExitCode:     s.exitCode,
			EndTime:      time.Now().UTC(),
		})
	}

	return requests, nil
}

// determineSummaryPath resolves where the normalized summary of a result file
// is written. With multiple inputs the output path always acts as a folder.
func (s *Ingester) determineSummaryPath(resultFile, outputPath string, multiple bool) (string, error) {
	nameTemplate := summaryFileName(resultFile, s.reportFormat)

	if outputPath == "" {
		return filepath.Join(filepath.Dir(resultFile), nameTemplate), nil
	}

	if multiple {
		if err := files.CreateFolderIfNotExists(outputPath); err != nil {
			return "", err
		}
		return filepath.Join(outputPath, nameTemplate), nil
	}

	fullPath, folder, err := files.DetermineFileFullPath(outputPath, nameTemplate)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}
	return fullPath, nil
}

// summaryFileName derives the summary file name from the result file name.
func summaryFileName(resultFile, reportFormat string) string {
	ext := "json"
	if reportFormat == "sarif" {
		ext = "sarif"
	}
	base := strings.TrimSuffix(filepath.Base(resultFile), filepath.Ext(resultFile))
	return fmt.Sprintf("%s-summary.%s", base, ext)
}

// ingestOne processes a single raw result file, either in-process or through
// the configured scanner plugin.
func (s *Ingester) ingestOne(cfg *config.Config, request shared.ScannerScanRequest) (shared.ScannerScanResponse, error) {
	if s.pluginName == "" {
		return s.ingestDirect(cfg, request)
	}

	var response shared.ScannerScanResponse
	err := shared.WithPlugin(cfg, "plugin-scanner", shared.PluginTypeScanner, s.pluginName, func(raw interface{}) error {
		scanner, ok := raw.(shared.Scanner)
		if !ok {
			return fmt.Errorf("invalid plugin type")
		}
		var err error
		response, err = scanner.Scan(request)
		if err != nil {
			s.logger.Error("scanner plugin ingestion failed")
			return fmt.Errorf("scanner plugin ingestion failed. Arguments: %v. Error: %w", request, err)
		}
		return nil
	})

	return response, err
}

// ingestDirect runs the ScanCode engine in-process and writes the summary.
func (s *Ingester) ingestDirect(cfg *config.Config, request shared.ScannerScanRequest) (shared.ScannerScanResponse, error) {
	engine := scancode.New(cfg, s.logger)

	var procErr error
	if request.ExitCode != 0 {
		procErr = fmt.Errorf("%s failed with exit code %d", engine.Name(), request.ExitCode)
	}

	scanResult, err := engine.ProcessResult(request.ResultsPath, request.StartTime, request.EndTime, procErr)
	if err != nil {
		return shared.ScannerScanResponse{}, err
	}

	if err := WriteSummary(&scanResult, request.OutputPath, request.ReportFormat); err != nil {
		return shared.ScannerScanResponse{}, err
	}

	return shared.ScannerScanResponse{SummaryPath: request.OutputPath, Success: true}, nil
}

// WriteSummary serializes a scan result into the requested report format.
func WriteSummary(scanResult *scancode.ScanResult, outputPath, reportFormat string) error {
	var (
		data []byte
		err  error
	)

	switch reportFormat {
	case "", "json":
		data, err = json.MarshalIndent(scanResult, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal scan result: %w", err)
		}
	case "sarif":
		report, err := sarif.FromScanResult(scanResult)
		if err != nil {
			return err
		}
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal SARIF report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format: %q", reportFormat)
	}

	return files.WriteJsonFile(outputPath, data)
}

// IngestAll processes multiple result files concurrently and returns the
// aggregated outcomes. The engine itself is synchronous; parallelism exists
// only across disjoint inputs.
func (s *Ingester) IngestAll(cfg *config.Config, requests []shared.ScannerScanRequest) shared.GenericLaunchesResult {
	s.logger.Info("ingestion starting", "total", len(requests), "goroutines", s.concurrentJobs)

	var results shared.GenericLaunchesResult
	resultsChannel := make(chan shared.GenericResult, len(requests))
	values := make([]interface{}, len(requests))
	for i := range requests {
		values[i] = requests[i]
	}

	shared.ForEveryWithBoundedGoroutines(s.concurrentJobs, values, func(i int, value interface{}) {
		request, ok := value.(shared.ScannerScanRequest)
		if !ok {
			s.logger.Error("invalid ingestion argument type")
			return
		}
		s.logger.Info("goroutine started", "#", i+1, "results_file", request.ResultsPath)

		response, err := s.ingestOne(cfg, request)
		if err != nil {
			resultsChannel <- shared.GenericResult{Args: request, Result: response, Status: "FAILED", Message: err.Error()}
		} else {
			resultsChannel <- shared.GenericResult{Args: request, Result: response, Status: "OK", Message: ""}
		}
	})

	close(resultsChannel)
	for result := range resultsChannel {
		results.Launches = append(results.Launches, result)
	}
	return results
}
