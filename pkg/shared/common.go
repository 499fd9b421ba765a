package shared

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-plugin"
	"github.com/spf13/pflag"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/logger"
)

const (
	PluginTypeScanner string = "scanner"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ORT",
	MagicCookieValue: "8c2b7f31a0f92cc8f6be0d61d8a25c52e7f4a3be",
}

var PluginMap = map[string]plugin.Plugin{
	PluginTypeScanner: &ScannerPlugin{},
}

// Versions holds build information of the core binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// WithPlugin dispenses the named plugin and hands the raw implementation to f.
func WithPlugin(cfg *config.Config, loggerName string, pluginType string, pluginName string, f func(interface{}) error) error {
	logger := logger.NewLogger(cfg, loggerName)

	pluginPath := filepath.Join(config.GetOrtPluginsHome(cfg), pluginName)
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap,
		Cmd:             exec.Command(pluginPath),
		Logger:          logger,
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("failed to connect to plugin %q: %w", pluginName, err)
	}

	raw, err := rpcClient.Dispense(pluginType)
	if err != nil {
		return fmt.Errorf("failed to dispense plugin %q: %w", pluginName, err)
	}

	return f(raw)
}

// ForEveryWithBoundedGoroutines runs f over values with at most limit
// goroutines in flight.
func ForEveryWithBoundedGoroutines(limit int, values []interface{}, f func(i int, value interface{})) {
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, value interface{}) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}

// HasFlags reports whether any flag of the set was changed on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.Visit(func(f *pflag.Flag) {
		hasFlags = true
	})
	return hasFlags
}
