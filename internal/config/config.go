// =============================================================================
// EDI DELFOR Converter - Configuration Module
// =============================================================================
//
// This module loads and manages all configuration files:
//   1. Main Config (config.yaml): Global application settings
//   2. Partner Configs (configs/*.yaml): Per-partner matching rules
//
// The partner configs only steer file-to-dialect matching and export
// options; the dialect interpretation tables themselves are code (see the
// dialect package), because the segment semantics of a partner feed are not
// an operator-tunable concern.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration, loaded from the
// main config.yaml file.
type MainConfig struct {
	// InputDir is the directory scanned for incoming EDI interchanges.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated reports and workbooks are
	// placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is the directory where processed interchange files
	// are moved. Files are only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ConfigsDir is the directory containing partner-specific
	// configurations.
	// Default: "./configs"
	ConfigsDir string `yaml:"configs_dir"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}    - A random UUID
	//   {stem}    - The input file name without extension
	//   {dialect} - The detected dialect name
	// Default: "{stem}_{uuid}"
	//
	// The file extension is appended per output kind (.txt / .xlsx).
	OutputNameFormat string `yaml:"output_name_format"`

	// MaxConcurrency is the maximum number of files processed concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// WriteReport enables the plain-text report output.
	// Default: true (see defaults handling)
	WriteReport *bool `yaml:"write_report"`

	// WriteWorkbook enables the XLSX workbook output.
	// Default: true (see defaults handling)
	WriteWorkbook *bool `yaml:"write_workbook"`

	// ArchiveInputs enables moving successfully processed inputs to the
	// input archive directory.
	// Default: true (see defaults handling)
	ArchiveInputs *bool `yaml:"archive_inputs"`
}

// ReportEnabled reports whether the plain-text output is enabled.
func (c *MainConfig) ReportEnabled() bool { return c.WriteReport == nil || *c.WriteReport }

// WorkbookEnabled reports whether the XLSX output is enabled.
func (c *MainConfig) WorkbookEnabled() bool { return c.WriteWorkbook == nil || *c.WriteWorkbook }

// ArchiveEnabled reports whether input archival is enabled.
func (c *MainConfig) ArchiveEnabled() bool { return c.ArchiveInputs == nil || *c.ArchiveInputs }

// =============================================================================
// PARTNER CONFIGURATION STRUCTURE
// =============================================================================

// PartnerConfig holds the configuration for one trading partner feed.
type PartnerConfig struct {
	// PartnerName is the human-readable partner name, used in logs.
	PartnerName string `yaml:"partner_name"`

	// Dialect is the dialect identifier to interpret matched files with.
	// Valid values: "cummins", "minebea", "trwkob".
	Dialect string `yaml:"dialect"`

	// FileMatchingPatterns is a list of glob patterns matched against the
	// input file name. A match forces this partner's dialect, overriding
	// content-based detection.
	//
	// Examples:
	//   - "CMI_*.edi"
	//   - "*_delfor_minebea_*"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct with defaults applied.
//   - An error if the file cannot be read or parsed.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultMainConfig returns the configuration used when no config file is
// present on disk.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ConfigsDir == "" {
		config.ConfigsDir = "./configs"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{stem}_{uuid}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration, creating missing
// directories on the way.
func validateMainConfig(config *MainConfig) error {
	dirs := []string{
		config.InputDir,
		config.OutputDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}

// LoadPartnerConfigs loads all partner configurations from a directory.
//
// PARAMETERS:
//   - configsDir: The directory containing partner configuration files.
//
// RETURNS:
//   - A map of partner configurations keyed by dialect name (falling back
//     to the file name when no dialect is set).
//   - An error if the directory cannot be listed or any file cannot be
//     parsed.
//
// A missing configs directory is not an error: content-based detection
// covers files that no partner config claims.
func LoadPartnerConfigs(configsDir string) (map[string]*PartnerConfig, error) {
	configs := make(map[string]*PartnerConfig)

	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := loadPartnerConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := config.Dialect
		if key == "" {
			key = filepath.Base(file)
		}
		configs[key] = config
	}

	return configs, nil
}

// loadPartnerConfig loads a single partner configuration file.
func loadPartnerConfig(filePath string) (*PartnerConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config PartnerConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	return &config, nil
}
