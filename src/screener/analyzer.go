package screener

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
	"github.com/jiaming2012/option-income-screener/src/store"
	"github.com/jiaming2012/option-income-screener/src/utils"
)

// ChainStore is the slice of the chain database the analyzer needs:
// refresh a snapshot, then query it within the same call chain.
type ChainStore interface {
	RefreshPutsSnapshot(expiration time.Time) (int64, error)
	RefreshCallsSnapshot(now time.Time) (int64, error)
	QueryPuts(f optionmodels.RecordFilter) ([]optionmodels.OptionRecord, error)
	QueryCalls(f optionmodels.RecordFilter) ([]optionmodels.OptionRecord, error)
	GetUnderlyingPrice(symbol optionmodels.StockSymbol) (decimal.Decimal, error)
	HighestStrikeAtOrBelow(symbol optionmodels.StockSymbol, price decimal.Decimal) (decimal.Decimal, error)
}

// Analyzer selects the eligible candidate set per strategy.
type Analyzer struct {
	store              ChainStore
	includeNonstandard bool
	customDate         *time.Time
}

func NewAnalyzer(chainStore ChainStore, includeNonstandard bool, customDate *time.Time) *Analyzer {
	log.Infof("Analyzer initialized with includeNonstandard=%v, customDate=%v", includeNonstandard, customDate)

	return &Analyzer{
		store:              chainStore,
		includeNonstandard: includeNonstandard,
		customDate:         customDate,
	}
}

// GetOTMPuts returns cash-secured put candidates for a single target
// expiration: the caller-supplied date when set, otherwise the next
// Friday from now.
func (a *Analyzer) GetOTMPuts(now time.Time) ([]optionmodels.OptionRecord, error) {
	expiration := utils.DeriveNextFriday(now)
	if a.customDate != nil {
		expiration = *a.customDate
	}

	if _, err := a.store.RefreshPutsSnapshot(expiration); err != nil {
		return nil, fmt.Errorf("GetOTMPuts: %w", err)
	}

	baseFilter := optionmodels.RecordFilter{
		OptionType:            optionmodels.OptionTypePut,
		RequireBid:            true,
		StrikeBelowUnderlying: true,
		MoneynessExceedsBid:   true,
		Sort:                  optionmodels.SortBySymbol,
	}

	allRecords, err := a.store.QueryPuts(baseFilter)
	if err != nil {
		return nil, fmt.Errorf("GetOTMPuts: failed to query all options: %w", err)
	}

	log.Infof("Found %d total options before filtering", len(allRecords))

	if a.includeNonstandard {
		log.Info("Including non-standard options in analysis")
		log.Infof("Returning all %d options for analysis", len(allRecords))

		return allRecords, nil
	}

	standardFilter := baseFilter
	standardFilter.StandardOnly = true

	standardRecords, err := a.store.QueryPuts(standardFilter)
	if err != nil {
		return nil, fmt.Errorf("GetOTMPuts: failed to query standard options: %w", err)
	}

	excludedCount := len(allRecords) - len(standardRecords)
	if excludedCount > 0 {
		log.Infof("Filtered out %d non-standard options", excludedCount)

		a.logExcludedExamples(baseFilter)
	}

	log.Infof("Returning %d standard options for analysis", len(standardRecords))

	return standardRecords, nil
}

func (a *Analyzer) logExcludedExamples(baseFilter optionmodels.RecordFilter) {
	excludedFilter := baseFilter
	excludedFilter.NonStandardOnly = true

	excluded, err := a.store.QueryPuts(excludedFilter)
	if err != nil {
		log.Warnf("logExcludedExamples: failed to query excluded options: %v", err)
		return
	}

	if len(excluded) == 0 {
		return
	}

	log.Info("Examples of excluded non-standard options:")
	for _, ex := range excluded {
		log.Infof("  %s: %s (%s) IV:%s", ex.Symbol, ex.OptionSymbol, ex.PutCall, ex.IntrinsicValue)
	}
}

// GetBestCoveredCalls selects the covered call strike for a symbol (the
// highest CALL strike at or below the underlying price) and returns all
// contracts at that strike within the forward window, ordered by
// expiration. An empty slice with no error means no eligible strike.
func (a *Analyzer) GetBestCoveredCalls(symbol optionmodels.StockSymbol, now time.Time) ([]optionmodels.OptionRecord, error) {
	if _, err := a.store.RefreshCallsSnapshot(now); err != nil {
		return nil, fmt.Errorf("GetBestCoveredCalls: %w", err)
	}

	underlyingPrice, err := a.store.GetUnderlyingPrice(symbol)
	if err != nil {
		return nil, fmt.Errorf("GetBestCoveredCalls: %w", err)
	}

	log.Infof("Analyzing covered calls for %s at price $%s", symbol, underlyingPrice)

	targetStrike, err := a.store.HighestStrikeAtOrBelow(symbol, underlyingPrice)
	if err != nil {
		if errors.Is(err, store.ErrNoEligibleStrike) {
			log.Warnf("No valid strike prices found for %s", symbol)
			return nil, nil
		}

		return nil, fmt.Errorf("GetBestCoveredCalls: %w", err)
	}

	log.Infof("Selected strike price: $%s", targetStrike)

	minDays := int64(0)
	filter := optionmodels.RecordFilter{
		OptionType:          optionmodels.OptionTypeCall,
		Symbol:              symbol,
		Strike:              &targetStrike,
		MinDaysToExpiration: &minDays,
		RequireBid:          true,
		StandardOnly:        !a.includeNonstandard,
		Sort:                optionmodels.SortByExpiration,
	}

	records, err := a.store.QueryCalls(filter)
	if err != nil {
		return nil, fmt.Errorf("GetBestCoveredCalls: failed to query calls: %w", err)
	}

	if len(records) == 0 {
		log.Warnf("No valid covered call options found for %s at strike $%s", symbol, targetStrike)
		return records, nil
	}

	log.Infof("Found %d valid covered call options for analysis", len(records))
	for _, opt := range records {
		log.Infof("Option: %s - $%s (bid: $%s, Delta: %v, OI: %d)", opt.ExpirationDate, opt.Strike, opt.Bid, opt.Delta, opt.OpenInterest)
	}

	return records, nil
}
