package scancode

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

// ScanCode ingests raw result files of the ScanCode toolkit and normalizes
// them into scan summaries. The engine is a synchronous transformer; each
// ProcessResult call owns its raw tree, intermediate maps, and output
// summary, so concurrent calls on disjoint inputs need no locking.
type ScanCode struct {
	config   config.ScanCode
	matchers []glob.Glob
	logger   hclog.Logger
}

// New creates a new ScanCode engine with the provided configuration.
func New(cfg *config.Config, logger hclog.Logger) *ScanCode {
	return &ScanCode{
		config:   cfg.ScanCode,
		matchers: CompileLicenseFileMatchers(cfg.ScanCode.LicenseFilePatterns, logger),
		logger:   logger,
	}
}

// Name returns the name of the external tool.
func (s *ScanCode) Name() string {
	return ScannerName
}

// Version returns the tool version as resolved by the bootstrapper.
func (s *ScanCode) Version() string {
	return s.config.Version
}

// Details returns the scanner identity a result is stored under.
func (s *ScanCode) Details() ScannerDetails {
	return ScannerDetails{
		Name:          s.Name(),
		Version:       s.Version(),
		Configuration: s.Configuration(),
	}
}

// GenerateSummary normalizes a raw result tree into a scan summary: the file
// count as reported by the tool, license findings with their associated
// copyrights, and one diagnostic per raw scan error, tagged with the path of
// the affected file.
func (s *ScanCode) GenerateSummary(startTime, endTime time.Time, result gjson.Result) (ScanSummary, error) {
	count, err := fileCount(result)
	if err != nil {
		return ScanSummary{}, err
	}

	findings, err := AssociateFindings(licenseFindings(result), copyrightFindings(result), s.matchers)
	if err != nil {
		return ScanSummary{}, err
	}

	var issues []Issue
	result.Get("files").ForEach(func(_, file gjson.Result) bool {
		path := file.Get("path").String()
		file.Get("scan_errors").ForEach(func(_, scanError gjson.Result) bool {
			issues = append(issues, Issue{
				Source:   s.Name(),
				Message:  fmt.Sprintf("%s (File: %s)", scanError.String(), path),
				Severity: "error",
			})
			return true
		})
		return true
	})

	return ScanSummary{
		StartTime: startTime,
		EndTime:   endTime,
		FileCount: count,
		Findings:  findings,
		Issues:    issues,
	}, nil
}

// ProcessResult reads and summarizes the raw result file of a finished tool
// run. When the process failed, its diagnostics decide the outcome: a run
// whose errors are memory-only or timeout-only is still reported as a
// successful scan, anything else fails with the process error.
func (s *ScanCode) ProcessResult(resultsFile string, startTime, endTime time.Time, procErr error) (ScanResult, error) {
	result, err := ReadResult(resultsFile)
	if err != nil {
		return ScanResult{}, err
	}

	summary, err := s.GenerateSummary(startTime, endTime, result)
	if err != nil {
		return ScanResult{}, err
	}

	issues, hasOnlyMemoryErrors := mapUnknownErrors(summary.Issues)
	issues, hasOnlyTimeoutErrors := mapTimeoutErrors(issues, s.config.Timeout)
	summary.Issues = issues

	if procErr != nil && !hasOnlyMemoryErrors && !hasOnlyTimeoutErrors {
		return ScanResult{}, fmt.Errorf("failed to scan with %s: %w", s.Name(), procErr)
	}

	if procErr != nil {
		s.logger.Warn("reporting failed process as successful scan", "reason", procErr, "issues", len(summary.Issues))
	}

	var raw []byte
	if result.Raw != "" {
		raw = []byte(result.Raw)
	}

	return ScanResult{
		ID:        uuid.New().String(),
		Scanner:   s.Details(),
		Summary:   summary,
		RawResult: raw,
	}, nil
}
