package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	yaml "gopkg.in/yaml.v2"
)

// Config is the application configuration loaded from the YAML config file.
type Config struct {
	Ort      Ort      `yaml:"ort"`
	Logger   Logger   `yaml:"logger"`
	ScanCode ScanCode `yaml:"scancode"`
}

// Ort holds the home folder layout of the application.
type Ort struct {
	HomeFolder    string `yaml:"home_folder"`
	PluginsFolder string `yaml:"plugins_folder"`
	ResultsFolder string `yaml:"results_folder"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// ScanCode holds the settings of the external ScanCode toolkit whose raw
// results this application ingests. Version is the resolved tool version as
// reported by the bootstrapper that installed the tool.
type ScanCode struct {
	Version string `yaml:"version"`

	// Timeout is the per-file timeout (in seconds) the tool was invoked with.
	// Timeout errors reported for a different value are not considered benign.
	Timeout int `yaml:"timeout"`

	// CommandLine are the result-affecting options. CommandLineNonConfig are
	// options that do not affect results (e.g. the process count) and are
	// excluded from the configuration string used as the results store key.
	CommandLine          []string `yaml:"command_line"`
	CommandLineNonConfig []string `yaml:"command_line_non_config"`

	// DebugCommandLine are result-affecting options appended only when debug
	// verbosity is active; DebugCommandLineNonConfig again are not.
	DebugCommandLine          []string `yaml:"debug_command_line"`
	DebugCommandLineNonConfig []string `yaml:"debug_command_line_non_config"`

	// LicenseFilePatterns are path globs identifying commonly named license
	// files, used to derive the root license of a scanned tree.
	LicenseFilePatterns []string `yaml:"license_file_patterns"`
}

// DefaultTimeout is the per-file timeout (in seconds) the tool runs with
// unless configured otherwise.
const DefaultTimeout = 300

// Default option sets for the ScanCode toolkit. Only the configuration
// options affect scan results.
var (
	DefaultCommandLine          = []string{"--copyright", "--license", "--info", "--strip-root", "--timeout", strconv.Itoa(DefaultTimeout)}
	DefaultCommandLineNonConfig = []string{"--processes", "1"}

	DefaultDebugCommandLine          = []string{"--license-diag"}
	DefaultDebugCommandLineNonConfig = []string{"--verbose"}

	DefaultLicenseFilePatterns = []string{
		"license*",
		"licence*",
		"unlicense",
		"copying*",
		"copyright",
		"patents",
		"*.license",
	}
)

// ValidateConfigPath checks that the given path points to a readable file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file and fills unset fields with
// defaults. A missing file yields the pure default configuration.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := LoadYAML(configPath, config); err != nil {
				return nil, fmt.Errorf("failed to load config file %q: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config file %q: %w", configPath, err)
		}
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ScanCode.Timeout == 0 {
		cfg.ScanCode.Timeout = DefaultTimeout
	}
	if len(cfg.ScanCode.CommandLine) == 0 {
		cfg.ScanCode.CommandLine = DefaultCommandLine
	}
	if len(cfg.ScanCode.CommandLineNonConfig) == 0 {
		cfg.ScanCode.CommandLineNonConfig = DefaultCommandLineNonConfig
	}
	if len(cfg.ScanCode.DebugCommandLine) == 0 {
		cfg.ScanCode.DebugCommandLine = DefaultDebugCommandLine
	}
	if len(cfg.ScanCode.DebugCommandLineNonConfig) == 0 {
		cfg.ScanCode.DebugCommandLineNonConfig = DefaultDebugCommandLineNonConfig
	}
	if len(cfg.ScanCode.LicenseFilePatterns) == 0 {
		cfg.ScanCode.LicenseFilePatterns = DefaultLicenseFilePatterns
	}
}

// GetOrtHome returns the home folder of the application.
func GetOrtHome(cfg *Config) string {
	if cfg != nil && cfg.Ort.HomeFolder != "" {
		return cfg.Ort.HomeFolder
	}
	if envHome := os.Getenv("ORT_HOME"); envHome != "" {
		return envHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		panic("unable to get home folder")
	}
	return filepath.Join(home, ".ort")
}

// GetOrtPluginsHome returns the folder plugin binaries are installed to.
func GetOrtPluginsHome(cfg *Config) string {
	if cfg != nil && cfg.Ort.PluginsFolder != "" {
		return cfg.Ort.PluginsFolder
	}
	if envPlugins := os.Getenv("ORT_PLUGINS_FOLDER"); envPlugins != "" {
		return envPlugins
	}
	return filepath.Join(GetOrtHome(cfg), "plugins")
}

// GetOrtResultsHome returns the folder normalized results are written to.
func GetOrtResultsHome(cfg *Config) string {
	if cfg != nil && cfg.Ort.ResultsFolder != "" {
		return cfg.Ort.ResultsFolder
	}
	if envResults := os.Getenv("ORT_RESULTS_FOLDER"); envResults != "" {
		return envResults
	}
	return filepath.Join(GetOrtHome(cfg), "results")
}
