package shared

import (
	"net/rpc"
	"time"

	"github.com/hashicorp/go-plugin"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

// Scanner is the plugin interface for scanner result ingestion. The host runs
// the external tool, then hands the plugin the path to the raw result file
// together with the process outcome.
type Scanner interface {
	Setup(configData config.Config) (bool, error)
	Scan(args ScannerScanRequest) (ScannerScanResponse, error)
}

// ScannerScanRequest represents a single ingestion request.
type ScannerScanRequest struct {
	TargetPath   string    // Path of the scanned tree; not read during ingestion
	ResultsPath  string    // Path to the raw result file written by the tool
	OutputPath   string    // Path to save the normalized summary to
	ReportFormat string    // Format of the summary to generate (json, sarif)
	ExitCode     int       // Exit code of the tool process
	ExitMessage  string    // Error message of the tool process, if any
	StartTime    time.Time // Time the tool process was started
	EndTime      time.Time // Time the tool process finished
}

type ScannerScanResponse struct {
	SummaryPath string
	Success     bool
}

type ScannerRPCClient struct{ client *rpc.Client }

func (g *ScannerRPCClient) Setup(configData config.Config) (bool, error) {
	var resp bool
	err := g.client.Call("Plugin.Setup", configData, &resp)
	if err != nil {
		return false, err
	}
	return resp, nil
}

func (g *ScannerRPCClient) Scan(req ScannerScanRequest) (ScannerScanResponse, error) {
	var resp ScannerScanResponse

	err := g.client.Call("Plugin.Scan", req, &resp)

	if err != nil {
		return resp, err
	}

	return resp, nil
}

type ScannerRPCServer struct {
	Impl Scanner
}

func (s *ScannerRPCServer) Setup(configData config.Config, resp *bool) error {
	var err error
	*resp, err = s.Impl.Setup(configData)
	return err
}

func (s *ScannerRPCServer) Scan(args ScannerScanRequest, resp *ScannerScanResponse) error {
	var err error
	*resp, err = s.Impl.Scan(args)
	return err
}

type ScannerPlugin struct {
	Impl Scanner
}

func (p *ScannerPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &ScannerRPCServer{Impl: p.Impl}, nil
}

func (ScannerPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &ScannerRPCClient{client: c}, nil
}
