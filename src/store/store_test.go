package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "stock_data.db"))
	require.NoError(t, err)

	t.Cleanup(func() { s.Close() })

	return s
}

func chainRecord(symbol, optionSymbol string, optionType optionmodels.OptionType, strike, bid, underlying float64, expiration string, days int64) *optionmodels.OptionRecord {
	return &optionmodels.OptionRecord{
		Symbol:           optionmodels.StockSymbol(symbol),
		OptionSymbol:     optionmodels.OptionSymbol(optionSymbol),
		PutCall:          optionType,
		Strike:           decimal.NewFromFloat(strike),
		Bid:              decimal.NewFromFloat(bid),
		Ask:              decimal.NewFromFloat(bid + 0.10),
		Mark:             decimal.NewFromFloat(bid + 0.05),
		UnderlyingPrice:  decimal.NewFromFloat(underlying),
		IntrinsicValue:   decimal.Zero,
		ExpirationDate:   expiration,
		DaysToExpiration: days,
	}
}

func TestRefreshPutsSnapshot(t *testing.T) {
	now := time.Date(2025, time.January, 13, 10, 0, 0, 0, time.UTC)
	friday := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)

	t.Run("missing chain table is a precondition failure", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.RefreshPutsSnapshot(friday)
		assert.ErrorIs(t, err, ErrChainTableMissing)
	})

	t.Run("keeps only target expiration puts above the floor", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.ReplaceOptionChains([]*optionmodels.OptionRecord{
			chainRecord("AAPL", "AAPL  250117P00045000", optionmodels.OptionTypePut, 45, 1.20, 46, "2025-01-17", 4),
			chainRecord("AAPL", "AAPL  250124P00045000", optionmodels.OptionTypePut, 45, 1.40, 46, "2025-01-24", 11),
			chainRecord("AAPL", "AAPL  250117C00047000", optionmodels.OptionTypeCall, 47, 1.00, 46, "2025-01-17", 4),
			chainRecord("PENNY", "PENNY 250117P00003000", optionmodels.OptionTypePut, 3, 0.10, 4, "2025-01-17", 4),
			chainRecord("ZERO", "ZERO  250117P00045000", optionmodels.OptionTypePut, 45, 0, 46, "2025-01-17", 4),
		}))

		count, err := s.RefreshPutsSnapshot(friday)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("zero eligible rows is a valid empty snapshot", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.ReplaceOptionChains([]*optionmodels.OptionRecord{
			chainRecord("AAPL", "AAPL  250117P00045000", optionmodels.OptionTypePut, 45, 1.20, 46, "2025-01-17", 4),
		}))

		count, err := s.RefreshPutsSnapshot(now.AddDate(0, 6, 0))
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		records, err := s.QueryPuts(optionmodels.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestRefreshCallsSnapshot(t *testing.T) {
	now := time.Date(2025, time.January, 13, 10, 0, 0, 0, time.UTC)

	t.Run("keeps the 90 day forward window", func(t *testing.T) {
		s := newTestStore(t)

		require.NoError(t, s.ReplaceOptionChains([]*optionmodels.OptionRecord{
			chainRecord("AAPL", "AAPL  250117C00045000", optionmodels.OptionTypeCall, 45, 0.80, 46, "2025-01-17", 4),
			chainRecord("AAPL", "AAPL  250321C00045000", optionmodels.OptionTypeCall, 45, 2.10, 46, "2025-03-21", 67),
			chainRecord("AAPL", "AAPL  260116C00045000", optionmodels.OptionTypeCall, 45, 6.00, 46, "2026-01-16", 368),
			chainRecord("AAPL", "AAPL  241220C00045000", optionmodels.OptionTypeCall, 45, 0.50, 46, "2024-12-20", -24),
		}))

		count, err := s.RefreshCallsSnapshot(now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestQueryPuts(t *testing.T) {
	friday := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)

	seed := func(t *testing.T) *Store {
		s := newTestStore(t)

		require.NoError(t, s.ReplaceOptionChains([]*optionmodels.OptionRecord{
			// OTM with cushion worth more than the bid
			chainRecord("AAPL", "AAPL  250117P00045000", optionmodels.OptionTypePut, 45, 0.80, 46, "2025-01-17", 4),
			// ITM put
			chainRecord("MSFT", "MSFT  250117P00100000", optionmodels.OptionTypePut, 100, 1.20, 95, "2025-01-17", 4),
			// cushion 1.00 not greater than bid 1.50
			chainRecord("NVDA", "NVDA  250117P00099000", optionmodels.OptionTypePut, 99, 1.50, 100, "2025-01-17", 4),
			// adjusted ticker
			chainRecord("SPLIT", "SPL12 250117P00045000", optionmodels.OptionTypePut, 45, 0.60, 46, "2025-01-17", 4),
		}))

		_, err := s.RefreshPutsSnapshot(friday)
		require.NoError(t, err)

		return s
	}

	t.Run("otm predicate", func(t *testing.T) {
		s := seed(t)

		records, err := s.QueryPuts(optionmodels.RecordFilter{
			OptionType:            optionmodels.OptionTypePut,
			RequireBid:            true,
			StrikeBelowUnderlying: true,
			MoneynessExceedsBid:   true,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)

		for _, r := range records {
			assert.True(t, r.Strike.LessThan(r.UnderlyingPrice))
		}
	})

	t.Run("standard only drops adjusted tickers", func(t *testing.T) {
		s := seed(t)

		records, err := s.QueryPuts(optionmodels.RecordFilter{
			OptionType:   optionmodels.OptionTypePut,
			StandardOnly: true,
		})
		require.NoError(t, err)

		for _, r := range records {
			assert.True(t, r.OptionSymbol.IsStandard())
		}
	})

	t.Run("non-standard only keeps adjusted tickers", func(t *testing.T) {
		s := seed(t)

		records, err := s.QueryPuts(optionmodels.RecordFilter{
			OptionType:      optionmodels.OptionTypePut,
			NonStandardOnly: true,
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, optionmodels.OptionSymbol("SPL12 250117P00045000"), records[0].OptionSymbol)
	})

	t.Run("mutually exclusive standardness flags rejected", func(t *testing.T) {
		s := seed(t)

		_, err := s.QueryPuts(optionmodels.RecordFilter{
			StandardOnly:    true,
			NonStandardOnly: true,
		})
		assert.Error(t, err)
	})
}

func TestCoveredCallQueries(t *testing.T) {
	now := time.Date(2025, time.January, 13, 10, 0, 0, 0, time.UTC)

	seed := func(t *testing.T) *Store {
		s := newTestStore(t)

		require.NoError(t, s.ReplaceOptionChains([]*optionmodels.OptionRecord{
			chainRecord("AAPL", "AAPL  250117C00044000", optionmodels.OptionTypeCall, 44, 2.20, 46, "2025-01-17", 4),
			chainRecord("AAPL", "AAPL  250117C00045000", optionmodels.OptionTypeCall, 45, 1.60, 46, "2025-01-17", 4),
			chainRecord("AAPL", "AAPL  250214C00045000", optionmodels.OptionTypeCall, 45, 2.40, 46, "2025-02-14", 32),
			chainRecord("AAPL", "AAPL  250117C00047000", optionmodels.OptionTypeCall, 47, 0.90, 46, "2025-01-17", 4),
		}))

		_, err := s.RefreshCallsSnapshot(now)
		require.NoError(t, err)

		return s
	}

	t.Run("underlying price lookup", func(t *testing.T) {
		s := seed(t)

		price, err := s.GetUnderlyingPrice("AAPL")
		require.NoError(t, err)
		assert.Equal(t, "46.00", price.StringFixed(2))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		s := seed(t)

		_, err := s.GetUnderlyingPrice("NOPE")
		assert.ErrorIs(t, err, ErrSymbolNotFound)
	})

	t.Run("highest strike at or below underlying", func(t *testing.T) {
		s := seed(t)

		strike, err := s.HighestStrikeAtOrBelow("AAPL", decimal.NewFromFloat(46.00))
		require.NoError(t, err)
		assert.Equal(t, "45.00", strike.StringFixed(2))
	})

	t.Run("no strike at or below", func(t *testing.T) {
		s := seed(t)

		_, err := s.HighestStrikeAtOrBelow("AAPL", decimal.NewFromFloat(1.00))
		assert.ErrorIs(t, err, ErrNoEligibleStrike)
	})

	t.Run("calls at strike ordered by expiration", func(t *testing.T) {
		s := seed(t)

		strike := decimal.NewFromFloat(45.00)
		minDays := int64(0)

		records, err := s.QueryCalls(optionmodels.RecordFilter{
			OptionType:          optionmodels.OptionTypeCall,
			Symbol:              "AAPL",
			Strike:              &strike,
			MinDaysToExpiration: &minDays,
			RequireBid:          true,
			Sort:                optionmodels.SortByExpiration,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2025-01-17", records[0].ExpirationDate)
		assert.Equal(t, "2025-02-14", records[1].ExpirationDate)
	})
}
