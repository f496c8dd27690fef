package screener

import (
	"github.com/shopspring/decimal"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

var (
	oneHundred  = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// CalculateMetrics sizes one candidate contract against the available
// funds. A PUT is cash-secured at strike value; a CALL is sized against
// the underlying share value. Zero contracts is a valid result and
// signals the position is unaffordable.
func CalculateMetrics(record optionmodels.OptionRecord, availableFunds decimal.Decimal) optionmodels.OptionMetrics {
	var contractCost decimal.Decimal
	if record.PutCall == optionmodels.OptionTypePut {
		contractCost = record.Strike.Mul(oneHundred)
	} else {
		contractCost = record.UnderlyingPrice.Mul(oneHundred)
	}

	var contracts int64
	if contractCost.IsPositive() {
		contracts = availableFunds.Div(contractCost).IntPart()
	}

	premiums := record.Bid.Mul(oneHundred).Mul(decimal.NewFromInt(contracts))

	var exercise decimal.Decimal
	if record.PutCall == optionmodels.OptionTypePut {
		exercise = record.UnderlyingPrice.Sub(record.Strike).Mul(decimal.NewFromInt(contracts)).Mul(oneHundred)
	} else {
		exercise = record.Strike.Sub(record.UnderlyingPrice).Abs().Mul(decimal.NewFromInt(contracts)).Mul(oneHundred)
	}

	return optionmodels.OptionMetrics{
		Symbol:     record.Symbol,
		Expiration: record.ExpirationDate,
		OptionType: record.PutCall,
		Strike:     record.Strike,
		Contracts:  contracts,
		Premiums:   premiums,
		Exercise:   exercise,
	}
}

// CalculateCoveredCallMetrics is the per-contract covered call
// analysis: one contract, exercise at strike value, and the premium
// yield annualized against the capital at risk. Zero-denominator cases
// yield a zero annual return instead of failing.
func CalculateCoveredCallMetrics(record optionmodels.OptionRecord) optionmodels.CoveredCallMetrics {
	premiums := record.Bid.Mul(oneHundred)
	exercise := record.Strike.Mul(oneHundred)

	var annualReturn decimal.Decimal
	if record.DaysToExpiration > 0 && exercise.IsPositive() {
		days := decimal.NewFromInt(record.DaysToExpiration)
		annualReturn = premiums.Div(days).Mul(daysPerYear).Div(exercise).Mul(oneHundred)
	}

	return optionmodels.CoveredCallMetrics{
		OptionMetrics: optionmodels.OptionMetrics{
			Symbol:     record.Symbol,
			Expiration: record.ExpirationDate,
			OptionType: record.PutCall,
			Strike:     record.Strike,
			Contracts:  1,
			Premiums:   premiums,
			Exercise:   exercise,
		},
		Delta:        record.Delta,
		Theta:        record.Theta,
		AnnualReturn: annualReturn,
		DaysToExpiry: record.DaysToExpiration,
	}
}
