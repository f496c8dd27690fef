package marketdata

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

// ChainWriter receives a full generation of chain rows.
type ChainWriter interface {
	ReplaceOptionChains(records []*optionmodels.OptionRecord) error
}

// Collector fetches option chains for a set of symbols and replaces
// the stored chain table with the result.
type Collector struct {
	baseURL        string
	token          string
	rateLimitDelay time.Duration
}

func NewCollector(baseURL string, token string, rateLimitDelay time.Duration) *Collector {
	return &Collector{
		baseURL:        baseURL,
		token:          token,
		rateLimitDelay: rateLimitDelay,
	}
}

// Collect pulls chains for every symbol, keeping expirations within the
// forward window, and hands the combined rows to the writer in one
// replace. A symbol that fails to fetch is skipped with a warning so
// one bad ticker does not abort the whole run.
func (c *Collector) Collect(writer ChainWriter, symbols []optionmodels.StockSymbol, windowDays int, now time.Time) error {
	var records []*optionmodels.OptionRecord

	windowEnd := now.AddDate(0, 0, windowDays)

	for i, symbol := range symbols {
		if i > 0 && c.rateLimitDelay > 0 {
			time.Sleep(c.rateLimitDelay)
		}

		symbolRecords, err := c.collectSymbol(symbol, windowEnd, now)
		if err != nil {
			log.Warnf("Collect: skipping %s: %v", symbol, err)
			continue
		}

		log.Infof("Collected %d chain rows for %s", len(symbolRecords), symbol)

		records = append(records, symbolRecords...)
	}

	if len(records) == 0 {
		return fmt.Errorf("Collect: no chain rows collected for %d symbols", len(symbols))
	}

	if err := writer.ReplaceOptionChains(records); err != nil {
		return fmt.Errorf("Collect: %w", err)
	}

	return nil
}

func (c *Collector) collectSymbol(symbol optionmodels.StockSymbol, windowEnd time.Time, now time.Time) ([]*optionmodels.OptionRecord, error) {
	quote, err := FetchQuote(c.baseURL, c.token, symbol)
	if err != nil {
		return nil, fmt.Errorf("collectSymbol: %w", err)
	}

	expirations, err := FetchExpirations(c.baseURL, c.token, symbol)
	if err != nil {
		return nil, fmt.Errorf("collectSymbol: %w", err)
	}

	var records []*optionmodels.OptionRecord

	for _, expiration := range expirations {
		expirationDate, err := time.Parse("2006-01-02", expiration)
		if err != nil {
			log.Warnf("collectSymbol: %s: skipping unparseable expiration %s: %v", symbol, expiration, err)
			continue
		}

		if expirationDate.After(windowEnd) {
			continue
		}

		chain, err := FetchOptionChain(c.baseURL, c.token, symbol, expiration)
		if err != nil {
			return nil, fmt.Errorf("collectSymbol: %w", err)
		}

		for i := range chain {
			record, err := chain[i].ConvertToOptionRecord(quote.Last, now)
			if err != nil {
				log.Warnf("collectSymbol: %s: skipping contract: %v", symbol, err)
				continue
			}

			records = append(records, record)
		}
	}

	return records, nil
}
