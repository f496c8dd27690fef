package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

// SetupLogging applies the configured log level and, when a log file is
// configured, mirrors output to it.
func SetupLogging(config *optionmodels.ScreenerConfigYAML) error {
	level, err := log.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("SetupLogging: invalid log level %s: %w", config.Logging.Level, err)
	}

	log.SetLevel(level)

	if config.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.Logging.File), 0o755); err != nil {
			return fmt.Errorf("SetupLogging: failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(config.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("SetupLogging: failed to open log file %s: %w", config.Logging.File, err)
		}

		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	return nil
}
