package screener

import (
	"fmt"
	"time"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

// FindCoveredCalls returns per-contract covered call metrics for the
// selected strike of one symbol, one entry per expiration. An empty
// result means no eligible contracts and is not an error.
func (s *Screener) FindCoveredCalls(symbol optionmodels.StockSymbol, now time.Time) ([]optionmodels.CoveredCallMetrics, error) {
	records, err := s.analyzer.GetBestCoveredCalls(symbol, now)
	if err != nil {
		return nil, fmt.Errorf("FindCoveredCalls: %w", err)
	}

	var metrics []optionmodels.CoveredCallMetrics
	for _, record := range records {
		metrics = append(metrics, CalculateCoveredCallMetrics(record))
	}

	return metrics, nil
}
