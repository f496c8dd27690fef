package optionmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToOptionRecord(t *testing.T) {
	now := time.Date(2025, time.January, 3, 14, 30, 0, 0, time.UTC)

	dto := TradierOptionDTO{
		Symbol:         "AAPL250117P00045000",
		Underlying:     "AAPL",
		Strike:         45.0,
		Bid:            1.20,
		Ask:            1.30,
		OptionType:     "put",
		ExpirationDate: "2025-01-17",
		OpenInterest:   150,
		Volume:         40,
		Greeks:         GreeksDTO{Delta: -0.25, Theta: -0.04},
	}

	t.Run("put conversion", func(t *testing.T) {
		record, err := dto.ConvertToOptionRecord(46.0, now)
		require.NoError(t, err)

		assert.Equal(t, StockSymbol("AAPL"), record.Symbol)
		assert.Equal(t, OptionTypePut, record.PutCall)
		assert.Equal(t, "45", record.Strike.String())
		assert.Equal(t, "1.25", record.Mark.String())
		assert.Equal(t, int64(14), record.DaysToExpiration)
		assert.True(t, record.IntrinsicValue.IsZero(), "OTM put has no intrinsic value")
	})

	t.Run("itm put intrinsic value", func(t *testing.T) {
		record, err := dto.ConvertToOptionRecord(44.0, now)
		require.NoError(t, err)

		assert.Equal(t, "1", record.IntrinsicValue.String())
	})

	t.Run("invalid option type", func(t *testing.T) {
		bad := dto
		bad.OptionType = "straddle"

		_, err := bad.ConvertToOptionRecord(46.0, now)
		assert.Error(t, err)
	})

	t.Run("invalid expiration date", func(t *testing.T) {
		bad := dto
		bad.ExpirationDate = "01/17/2025"

		_, err := bad.ConvertToOptionRecord(46.0, now)
		assert.Error(t, err)
	})
}
