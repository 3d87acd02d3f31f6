package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	BrowserConfig    BrowserConfig    `json:"browser_config,omitempty" yaml:"browser_config,omitempty"`
	ScrapeConfig     ScrapeConfig     `json:"scrape_config,omitempty" yaml:"scrape_config,omitempty"`
	StabilizerConfig StabilizerConfig `json:"stabilizer_config,omitempty" yaml:"stabilizer_config,omitempty"`
	OutputConfig     OutputConfig     `json:"output_config,omitempty" yaml:"output_config,omitempty"`
	StorageConfig    StorageConfig    `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	RunLogConfig     RunLogConfig     `json:"run_log_config,omitempty" yaml:"run_log_config,omitempty"`
	LogConfig        LogConfig        `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		BrowserConfig:    NewDefaultBrowserConfig(),
		ScrapeConfig:     NewDefaultScrapeConfig(),
		StabilizerConfig: NewDefaultStabilizerConfig(),
		OutputConfig:     NewDefaultOutputConfig(),
		StorageConfig:    NewDefaultStorageConfig(),
		RunLogConfig:     NewDefaultRunLogConfig(),
		LogConfig:        NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// The path is determined by GetConfigPath; both YAML and JSON are supported,
// YAML preferred for .yaml/.yml extensions. With no config file anywhere the
// defaults are returned as-is.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, fmt.Errorf("config file '%s' does not exist", providedPath)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed for '%s': %w", filePath, err)
	}

	return cfg, nil
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		// Try YAML first, then JSON.
		if yamlErr := yaml.Unmarshal(data, cfg); yamlErr != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return fmt.Errorf("content is neither valid YAML (%v) nor valid JSON (%v)", yamlErr, jsonErr)
			}
		}
		return nil
	}
}
