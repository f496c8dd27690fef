package optionmodels

import "github.com/shopspring/decimal"

// OptionMetrics holds the sizing and income figures computed for one
// option contract against a pool of available funds. Values are fixed
// once computed.
type OptionMetrics struct {
	Symbol     StockSymbol
	Expiration string
	OptionType OptionType
	Strike     decimal.Decimal
	Contracts  int64
	Premiums   decimal.Decimal
	Exercise   decimal.Decimal
}

func (m OptionMetrics) ProfitPotential() decimal.Decimal {
	return m.Premiums.Add(m.Exercise)
}

// CoveredCallMetrics is the per-contract covered call variant: sizing
// is fixed at one contract and the premium yield is annualized against
// the strike value.
type CoveredCallMetrics struct {
	OptionMetrics

	Delta         float64
	Theta         float64
	AnnualReturn  decimal.Decimal
	DaysToExpiry  int64
}

// ROIIfCalled returns the total return against the exercise value if
// the contract is assigned, as a percentage. Zero when the exercise
// value is zero.
func (m CoveredCallMetrics) ROIIfCalled() decimal.Decimal {
	if m.Exercise.IsZero() {
		return decimal.Zero
	}

	return m.Premiums.Add(m.Exercise).Div(m.Exercise).Mul(decimal.NewFromInt(100))
}
