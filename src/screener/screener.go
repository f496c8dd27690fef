package screener

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

// ScreenResult holds the ranked, capped candidate set per option type.
// Presentation renders puts before calls.
type ScreenResult struct {
	Puts  []optionmodels.OptionMetrics
	Calls []optionmodels.OptionMetrics
}

// Screener orchestrates candidate selection, per-record metrics, and
// best-per-symbol ranking. MaxResults of 0 disables the cap.
type Screener struct {
	analyzer   *Analyzer
	MaxResults int
}

func NewScreener(analyzer *Analyzer, maxResults int) *Screener {
	return &Screener{
		analyzer:   analyzer,
		MaxResults: maxResults,
	}
}

// FindBestOptions screens all put candidates for the target expiration
// against the available funds, keeping the highest-premium contract per
// symbol, sorted descending by total premium.
func (s *Screener) FindBestOptions(availableFunds decimal.Decimal, now time.Time) (*ScreenResult, error) {
	records, err := s.analyzer.GetOTMPuts(now)
	if err != nil {
		log.Errorf("Error in options screening: %v", err)
		return nil, fmt.Errorf("FindBestOptions: %w", err)
	}

	var puts, calls []optionmodels.OptionMetrics
	for _, record := range records {
		metrics := CalculateMetrics(record, availableFunds)

		switch metrics.OptionType {
		case optionmodels.OptionTypePut:
			puts = append(puts, metrics)
		case optionmodels.OptionTypeCall:
			calls = append(calls, metrics)
		}
	}

	bestPuts := bestBySymbol(puts)
	bestCalls := bestBySymbol(calls)

	sortByPremiumsDesc(bestPuts)
	sortByPremiumsDesc(bestCalls)

	if s.MaxResults > 0 {
		bestPuts = capResults(bestPuts, s.MaxResults)
		bestCalls = capResults(bestCalls, s.MaxResults)
	}

	return &ScreenResult{
		Puts:  bestPuts,
		Calls: bestCalls,
	}, nil
}

// bestBySymbol keeps one contract per underlying: the one with the
// strictly greatest premiums. Ties keep the first record encountered.
func bestBySymbol(metrics []optionmodels.OptionMetrics) []optionmodels.OptionMetrics {
	best := make(map[optionmodels.StockSymbol]int)
	var ordered []optionmodels.OptionMetrics

	for _, m := range metrics {
		i, ok := best[m.Symbol]
		if !ok {
			best[m.Symbol] = len(ordered)
			ordered = append(ordered, m)
			continue
		}

		if m.Premiums.GreaterThan(ordered[i].Premiums) {
			ordered[i] = m
		}
	}

	return ordered
}

func sortByPremiumsDesc(metrics []optionmodels.OptionMetrics) {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Premiums.GreaterThan(metrics[j].Premiums)
	})
}

func capResults(metrics []optionmodels.OptionMetrics, max int) []optionmodels.OptionMetrics {
	if len(metrics) > max {
		return metrics[:max]
	}

	return metrics
}
