package screener

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

func putRecord(symbol string, strike, bid, underlying float64) optionmodels.OptionRecord {
	return optionmodels.OptionRecord{
		Symbol:          optionmodels.StockSymbol(symbol),
		OptionSymbol:    optionmodels.OptionSymbol(symbol),
		PutCall:         optionmodels.OptionTypePut,
		Strike:          decimal.NewFromFloat(strike),
		Bid:             decimal.NewFromFloat(bid),
		UnderlyingPrice: decimal.NewFromFloat(underlying),
		ExpirationDate:  "2025-01-17",
	}
}

func TestCalculateMetrics(t *testing.T) {
	t.Run("put sizing against strike value", func(t *testing.T) {
		record := putRecord("AAPL", 45.00, 1.20, 46.00)

		m := CalculateMetrics(record, decimal.NewFromFloat(10000.00))

		assert.Equal(t, int64(2), m.Contracts)
		assert.Equal(t, "240.00", m.Premiums.StringFixed(2))
		assert.Equal(t, "200.00", m.Exercise.StringFixed(2))
		assert.Equal(t, "440.00", m.ProfitPotential().StringFixed(2))
	})

	t.Run("call sizing against underlying value", func(t *testing.T) {
		record := putRecord("MSFT", 55.00, 0.90, 50.00)
		record.PutCall = optionmodels.OptionTypeCall

		m := CalculateMetrics(record, decimal.NewFromFloat(10000.00))

		// 10000 / 5000 = 2 contracts on the underlying basis
		assert.Equal(t, int64(2), m.Contracts)
		assert.Equal(t, "180.00", m.Premiums.StringFixed(2))
		assert.Equal(t, "1000.00", m.Exercise.StringFixed(2))
	})

	t.Run("unaffordable position yields zero contracts", func(t *testing.T) {
		record := putRecord("AAPL", 45.00, 1.20, 46.00)

		m := CalculateMetrics(record, decimal.NewFromFloat(100.00))

		assert.Equal(t, int64(0), m.Contracts)
		assert.True(t, m.Premiums.IsZero())
		assert.True(t, m.Exercise.IsZero())
	})

	t.Run("affordability invariant", func(t *testing.T) {
		funds := decimal.NewFromFloat(10000.00)
		record := putRecord("AAPL", 45.00, 1.20, 46.00)

		m := CalculateMetrics(record, funds)

		cost := record.Strike.Mul(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(m.Contracts))
		assert.True(t, cost.LessThanOrEqual(funds))
		assert.True(t, m.Contracts >= 0)
	})

	t.Run("zero strike yields zero contracts", func(t *testing.T) {
		record := putRecord("AAPL", 0, 1.20, 46.00)

		m := CalculateMetrics(record, decimal.NewFromFloat(10000.00))

		assert.Equal(t, int64(0), m.Contracts)
	})
}

func TestCalculateCoveredCallMetrics(t *testing.T) {
	t.Run("per contract annualized return", func(t *testing.T) {
		record := optionmodels.OptionRecord{
			Symbol:           "AAPL",
			PutCall:          optionmodels.OptionTypeCall,
			Strike:           decimal.NewFromFloat(50.00),
			Bid:              decimal.NewFromFloat(0.80),
			UnderlyingPrice:  decimal.NewFromFloat(49.50),
			ExpirationDate:   "2025-02-21",
			DaysToExpiration: 30,
			Delta:            0.45,
			Theta:            -0.03,
		}

		m := CalculateCoveredCallMetrics(record)

		assert.Equal(t, int64(1), m.Contracts)
		assert.Equal(t, "80.00", m.Premiums.StringFixed(2))
		assert.Equal(t, "5000.00", m.Exercise.StringFixed(2))
		assert.Equal(t, "19.47", m.AnnualReturn.StringFixed(2))
		assert.Equal(t, "101.60", m.ROIIfCalled().StringFixed(2))
		assert.Equal(t, int64(30), m.DaysToExpiry)
	})

	t.Run("zero days guards division", func(t *testing.T) {
		record := optionmodels.OptionRecord{
			Symbol:  "AAPL",
			PutCall: optionmodels.OptionTypeCall,
			Strike:  decimal.NewFromFloat(50.00),
			Bid:     decimal.NewFromFloat(0.80),
		}

		m := CalculateCoveredCallMetrics(record)

		assert.True(t, m.AnnualReturn.IsZero())
	})
}
