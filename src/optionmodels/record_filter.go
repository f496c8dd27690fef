package optionmodels

import "github.com/shopspring/decimal"

type RecordSort int

const (
	SortBySymbol RecordSort = iota
	SortByExpiration
)

// RecordFilter is the typed predicate the screener issues against the
// chain store. Zero-value fields are not applied.
type RecordFilter struct {
	OptionType OptionType
	Symbol     StockSymbol

	// RequireBid keeps rows with bid > 0.
	RequireBid bool

	// StrikeBelowUnderlying keeps rows with strikePrice < underlyingPrice.
	StrikeBelowUnderlying bool

	// MoneynessExceedsBid keeps rows where the out-of-the-money cushion
	// is worth more than the quoted premium:
	// (underlyingPrice - strikePrice) * 100 > bid * 100. Guards against
	// thin quotes priced at near in-the-money equivalence.
	MoneynessExceedsBid bool

	// Strike, when set, keeps rows at that exact strike.
	Strike *decimal.Decimal

	// MinDaysToExpiration, when set, keeps rows with
	// daysToExpiration > the given value.
	MinDaysToExpiration *int64

	// StandardOnly drops tickers with a digit in the first 6 characters;
	// NonStandardOnly keeps only those. At most one may be set.
	StandardOnly    bool
	NonStandardOnly bool

	Sort RecordSort
}
