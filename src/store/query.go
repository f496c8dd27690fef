package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

const recordColumns = `
	symbol, option_symbol, putCall, strikePrice, bid, ask, mark,
	underlyingPrice, intrinsicValue, expirationDate, daysToExpiration,
	openInterest, totalVolume, delta, theta`

// standardTickerClause matches the data source's symbology convention:
// a digit in the first 6 characters of the option ticker marks a
// contract adjusted for a split or merger.
const standardTickerClause = `SUBSTR(option_symbol, 1, 6) GLOB '*[0-9]*'`

func buildWhereClause(f optionmodels.RecordFilter) (string, []interface{}, error) {
	if f.StandardOnly && f.NonStandardOnly {
		return "", nil, fmt.Errorf("buildWhereClause: StandardOnly and NonStandardOnly are mutually exclusive")
	}

	var conds []string
	var args []interface{}

	if f.OptionType != "" {
		conds = append(conds, "putCall = ?")
		args = append(args, string(f.OptionType))
	}

	if f.Symbol != "" {
		conds = append(conds, "symbol = ?")
		args = append(args, string(f.Symbol))
	}

	if f.RequireBid {
		conds = append(conds, "bid > 0")
	}

	if f.StrikeBelowUnderlying {
		conds = append(conds, "strikePrice < underlyingPrice")
	}

	if f.MoneynessExceedsBid {
		conds = append(conds, "(underlyingPrice - strikePrice) * 100 > bid * 100")
	}

	if f.Strike != nil {
		conds = append(conds, "strikePrice = ?")
		args = append(args, f.Strike.InexactFloat64())
	}

	if f.MinDaysToExpiration != nil {
		conds = append(conds, "daysToExpiration > ?")
		args = append(args, *f.MinDaysToExpiration)
	}

	if f.StandardOnly {
		conds = append(conds, "NOT "+standardTickerClause)
	}

	if f.NonStandardOnly {
		conds = append(conds, standardTickerClause)
	}

	clause := ""
	if len(conds) > 0 {
		clause = " WHERE " + strings.Join(conds, " AND ")
	}

	switch f.Sort {
	case optionmodels.SortByExpiration:
		clause += " ORDER BY expirationDate ASC"
	default:
		clause += " ORDER BY symbol, expirationDate"
	}

	return clause, args, nil
}

func (s *Store) queryRecords(table string, f optionmodels.RecordFilter) ([]optionmodels.OptionRecord, error) {
	clause, args, err := buildWhereClause(f)
	if err != nil {
		return nil, fmt.Errorf("queryRecords: %w", err)
	}

	query := `SELECT ` + recordColumns + ` FROM ` + table + clause

	var records []optionmodels.OptionRecord
	if err := s.db.Select(&records, query, args...); err != nil {
		return nil, fmt.Errorf("queryRecords: failed to query %s: %w", table, err)
	}

	return records, nil
}

// QueryPuts runs a typed filter against the puts snapshot.
func (s *Store) QueryPuts(f optionmodels.RecordFilter) ([]optionmodels.OptionRecord, error) {
	return s.queryRecords(PutsTableName, f)
}

// QueryCalls runs a typed filter against the calls snapshot.
func (s *Store) QueryCalls(f optionmodels.RecordFilter) ([]optionmodels.OptionRecord, error) {
	return s.queryRecords(CallsTableName, f)
}

// GetUnderlyingPrice returns the underlying price recorded for a
// symbol in the calls snapshot.
func (s *Store) GetUnderlyingPrice(symbol optionmodels.StockSymbol) (decimal.Decimal, error) {
	var price decimal.Decimal

	err := s.db.Get(&price, `SELECT underlyingPrice FROM `+CallsTableName+` WHERE symbol = ? LIMIT 1`, string(symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("GetUnderlyingPrice: %s: %w", symbol, ErrSymbolNotFound)
		}

		return decimal.Zero, fmt.Errorf("GetUnderlyingPrice: failed to query %s: %w", symbol, err)
	}

	return price, nil
}

// HighestStrikeAtOrBelow returns the covered call strike for a symbol:
// the greatest CALL strike at or below the given underlying price.
func (s *Store) HighestStrikeAtOrBelow(symbol optionmodels.StockSymbol, price decimal.Decimal) (decimal.Decimal, error) {
	query := `
		SELECT DISTINCT strikePrice
		FROM ` + CallsTableName + `
		WHERE symbol = ?
		AND putCall = 'CALL'
		AND strikePrice <= ?
		ORDER BY strikePrice DESC
		LIMIT 1`

	var strike decimal.Decimal

	err := s.db.Get(&strike, query, string(symbol), price.InexactFloat64())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("HighestStrikeAtOrBelow: %s: %w", symbol, ErrNoEligibleStrike)
		}

		return decimal.Zero, fmt.Errorf("HighestStrikeAtOrBelow: failed to query %s: %w", symbol, err)
	}

	return strike, nil
}
