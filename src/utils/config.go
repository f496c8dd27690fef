package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

const DEFAULT_CONFIG_FILENAME = "config.yml"

// LoadScreenerConfig reads the screener YAML config. An empty path
// falls back to SCREENER_CONFIG, then to config.yml in the working
// directory.
func LoadScreenerConfig(path string) (*optionmodels.ScreenerConfigYAML, error) {
	if path == "" {
		path = os.Getenv("SCREENER_CONFIG")
	}

	if path == "" {
		path = DEFAULT_CONFIG_FILENAME
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadScreenerConfig: failed to read %s: %w", path, err)
	}

	var config optionmodels.ScreenerConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("LoadScreenerConfig: failed to unmarshal %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("LoadScreenerConfig: %w", err)
	}

	return &config, nil
}

// StockDBPath joins the configured database directory and file name,
// creating the directory when missing.
func StockDBPath(config *optionmodels.ScreenerConfigYAML) (string, error) {
	baseDir := config.Database.BaseDir

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("StockDBPath: failed to create %s: %w", baseDir, err)
	}

	return filepath.Join(baseDir, config.Database.StockDBName), nil
}
