package optionmodels

import "fmt"

type DatabaseYAML struct {
	BaseDir     string `yaml:"baseDir"`
	StockDBName string `yaml:"stockDbName"`
}

type LoggingYAML struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type MarketDataYAML struct {
	BaseURL          string  `yaml:"baseUrl"`
	RateLimitSeconds float64 `yaml:"rateLimitSeconds"`
}

type ScreenerConfigYAML struct {
	Database   DatabaseYAML   `yaml:"database"`
	Logging    LoggingYAML    `yaml:"logging"`
	MarketData MarketDataYAML `yaml:"marketData"`
	Symbols    []string       `yaml:"symbols"`
}

func (c *ScreenerConfigYAML) Validate() error {
	if c.Database.BaseDir == "" {
		return fmt.Errorf("ScreenerConfigYAML: Validate: database.baseDir is required")
	}

	if c.Database.StockDBName == "" {
		return fmt.Errorf("ScreenerConfigYAML: Validate: database.stockDbName is required")
	}

	return nil
}
