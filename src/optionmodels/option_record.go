package optionmodels

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OptionRecord is a single row of an option chain as stored in the
// chain table. Money fields use decimal arithmetic; greeks stay
// floating point.
type OptionRecord struct {
	Symbol           StockSymbol     `db:"symbol"`
	OptionSymbol     OptionSymbol    `db:"option_symbol"`
	PutCall          OptionType      `db:"putCall"`
	Strike           decimal.Decimal `db:"strikePrice"`
	Bid              decimal.Decimal `db:"bid"`
	Ask              decimal.Decimal `db:"ask"`
	Mark             decimal.Decimal `db:"mark"`
	UnderlyingPrice  decimal.Decimal `db:"underlyingPrice"`
	IntrinsicValue   decimal.Decimal `db:"intrinsicValue"`
	ExpirationDate   string          `db:"expirationDate"`
	DaysToExpiration int64           `db:"daysToExpiration"`
	OpenInterest     int64           `db:"openInterest"`
	TotalVolume      int64           `db:"totalVolume"`
	Delta            float64         `db:"delta"`
	Theta            float64         `db:"theta"`
}

func (r *OptionRecord) Validate() error {
	if err := r.PutCall.Validate(); err != nil {
		return fmt.Errorf("OptionRecord: Validate: %w", err)
	}

	if r.Bid.IsNegative() {
		return fmt.Errorf("OptionRecord: Validate: negative bid %s for %s", r.Bid, r.OptionSymbol)
	}

	if r.Strike.IsNegative() {
		return fmt.Errorf("OptionRecord: Validate: negative strike %s for %s", r.Strike, r.OptionSymbol)
	}

	if r.UnderlyingPrice.IsNegative() {
		return fmt.Errorf("OptionRecord: Validate: negative underlying price %s for %s", r.UnderlyingPrice, r.Symbol)
	}

	return nil
}
