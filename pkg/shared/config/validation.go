package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks if the global configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateScanCodeConfig(&cfg.ScanCode); err != nil {
		return fmt.Errorf("YAML global config: scancode directive is invalid: %w", err)
	}
	return nil
}

// ValidateScanCodeConfig checks if the ScanCode configuration has valid values.
func ValidateScanCodeConfig(cfg *ScanCode) error {
	if cfg == nil {
		return fmt.Errorf("scancode configuration is nil")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive number of seconds: %d", cfg.Timeout)
	}
	if err := validateOptions("command_line", cfg.CommandLine); err != nil {
		return err
	}
	if err := validateOptions("debug_command_line", cfg.DebugCommandLine); err != nil {
		return err
	}
	for _, pattern := range cfg.LicenseFilePatterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("license_file_patterns must not contain empty patterns")
		}
	}
	return nil
}

// validateOptions rejects option lists with empty entries, which would break
// the whitespace-joined configuration string.
func validateOptions(name string, options []string) error {
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("%s must not contain empty options", name)
		}
	}
	return nil
}
