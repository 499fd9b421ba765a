package scancode

import (
	"strings"
)

// OutputFormatOption selects the output format the tool is asked for. It
// affects results and is therefore part of the configuration string.
const OutputFormatOption = "--json-pp"

// Configuration returns the canonical whitespace-joined string of all
// result-affecting options: the configured (or default) base options, the
// output format, and the debug options when debug verbosity is active.
// Options that do not affect results are excluded, so the string is a stable
// store key for a given configuration and tool version.
func (s *ScanCode) Configuration() string {
	options := make([]string, 0, len(s.config.CommandLine)+1+len(s.config.DebugCommandLine))
	options = append(options, s.config.CommandLine...)
	options = append(options, OutputFormatOption)
	if s.logger.IsDebug() {
		options = append(options, s.config.DebugCommandLine...)
	}
	return strings.Join(options, " ")
}

// CommandLineOptions returns every option the tool is expected to run with,
// including those that do not affect results. The invoker appends the target
// and output paths itself.
func (s *ScanCode) CommandLineOptions() []string {
	options := make([]string, 0)
	options = append(options, s.config.CommandLine...)
	options = append(options, s.config.CommandLineNonConfig...)
	options = append(options, OutputFormatOption)
	if s.logger.IsDebug() {
		options = append(options, s.config.DebugCommandLine...)
		options = append(options, s.config.DebugCommandLineNonConfig...)
	}
	return options
}
