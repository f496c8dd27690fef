package store

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
)

const createChainTableSQL = `
CREATE TABLE ` + ChainTableName + ` (
	symbol TEXT NOT NULL,
	option_symbol TEXT NOT NULL,
	putCall TEXT NOT NULL,
	strikePrice REAL NOT NULL,
	bid REAL NOT NULL,
	ask REAL NOT NULL,
	mark REAL NOT NULL,
	underlyingPrice REAL NOT NULL,
	intrinsicValue REAL NOT NULL,
	expirationDate TEXT NOT NULL,
	daysToExpiration INTEGER NOT NULL,
	openInterest INTEGER NOT NULL,
	totalVolume INTEGER NOT NULL,
	delta REAL NOT NULL,
	theta REAL NOT NULL
)`

const insertChainRowSQL = `
INSERT INTO ` + ChainTableName + ` (
	symbol, option_symbol, putCall, strikePrice, bid, ask, mark,
	underlyingPrice, intrinsicValue, expirationDate, daysToExpiration,
	openInterest, totalVolume, delta, theta
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceOptionChains drops and repopulates the chain table from a
// fresh collection run. The replace is atomic: either the new
// generation of rows lands completely or the old table survives.
func (s *Store) ReplaceOptionChains(records []*optionmodels.OptionRecord) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("ReplaceOptionChains: failed to begin tx: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + ChainTableName); err != nil {
		return fmt.Errorf("ReplaceOptionChains: failed to drop chain table: %w", err)
	}

	if _, err := tx.Exec(createChainTableSQL); err != nil {
		return fmt.Errorf("ReplaceOptionChains: failed to create chain table: %w", err)
	}

	stmt, err := tx.Prepare(insertChainRowSQL)
	if err != nil {
		return fmt.Errorf("ReplaceOptionChains: failed to prepare insert: %w", err)
	}

	defer stmt.Close()

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("ReplaceOptionChains: %w", err)
		}

		_, err := stmt.Exec(
			string(r.Symbol),
			string(r.OptionSymbol),
			string(r.PutCall),
			r.Strike.InexactFloat64(),
			r.Bid.InexactFloat64(),
			r.Ask.InexactFloat64(),
			r.Mark.InexactFloat64(),
			r.UnderlyingPrice.InexactFloat64(),
			r.IntrinsicValue.InexactFloat64(),
			r.ExpirationDate,
			r.DaysToExpiration,
			r.OpenInterest,
			r.TotalVolume,
			r.Delta,
			r.Theta,
		)
		if err != nil {
			return fmt.Errorf("ReplaceOptionChains: failed to insert %s: %w", r.OptionSymbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceOptionChains: failed to commit: %w", err)
	}

	log.Infof("Replaced %s with %d rows", ChainTableName, len(records))

	return nil
}
