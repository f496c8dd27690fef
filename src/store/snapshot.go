package store

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const coveredCallWindowDays = 90

// RefreshPutsSnapshot destructively rebuilds the puts snapshot table
// with PUT rows for the given expiration date, applying the liquidity
// floor. Returns the number of rows in the new snapshot.
func (s *Store) RefreshPutsSnapshot(expiration time.Time) (int64, error) {
	if err := s.ensureChainTable(); err != nil {
		return 0, fmt.Errorf("RefreshPutsSnapshot: %w", err)
	}

	if _, err := s.db.Exec(`DROP TABLE IF EXISTS ` + PutsTableName); err != nil {
		return 0, fmt.Errorf("RefreshPutsSnapshot: failed to drop snapshot: %w", err)
	}

	query := `
		CREATE TABLE ` + PutsTableName + ` AS
		SELECT *
		FROM ` + ChainTableName + `
		WHERE date(expirationDate) = date(?)
		AND putCall = 'PUT'
		AND bid > 0
		AND underlyingPrice > 5`

	expirationDate := expiration.Format("2006-01-02")

	if _, err := s.db.Exec(query, expirationDate); err != nil {
		return 0, fmt.Errorf("RefreshPutsSnapshot: failed to create snapshot: %w", err)
	}

	count, err := s.countRows(PutsTableName)
	if err != nil {
		return 0, fmt.Errorf("RefreshPutsSnapshot: %w", err)
	}

	if count == 0 {
		log.Warnf("No PUT options found expiring on %s", expirationDate)
	} else {
		log.Infof("Using PUT options expiring on: %s", expirationDate)
	}

	log.Infof("Created %s snapshot with %d rows", PutsTableName, count)

	return count, nil
}

// RefreshCallsSnapshot destructively rebuilds the calls snapshot table
// with CALL rows expiring within the 90-day forward window from now.
func (s *Store) RefreshCallsSnapshot(now time.Time) (int64, error) {
	if err := s.ensureChainTable(); err != nil {
		return 0, fmt.Errorf("RefreshCallsSnapshot: %w", err)
	}

	if _, err := s.db.Exec(`DROP TABLE IF EXISTS ` + CallsTableName); err != nil {
		return 0, fmt.Errorf("RefreshCallsSnapshot: failed to drop snapshot: %w", err)
	}

	query := `
		CREATE TABLE ` + CallsTableName + ` AS
		SELECT *
		FROM ` + ChainTableName + `
		WHERE date(expirationDate) >= date(?)
		AND date(expirationDate) <= date(?, '+` + fmt.Sprintf("%d", coveredCallWindowDays) + ` days')
		AND putCall = 'CALL'
		AND bid > 0
		AND underlyingPrice > 5`

	nowDate := now.Format("2006-01-02")

	if _, err := s.db.Exec(query, nowDate, nowDate); err != nil {
		return 0, fmt.Errorf("RefreshCallsSnapshot: failed to create snapshot: %w", err)
	}

	count, err := s.countRows(CallsTableName)
	if err != nil {
		return 0, fmt.Errorf("RefreshCallsSnapshot: %w", err)
	}

	if count == 0 {
		log.Warnf("No CALL options found in the next %d days", coveredCallWindowDays)
	} else {
		var minDate, maxDate string
		row := s.db.QueryRow(`SELECT MIN(date(expirationDate)), MAX(date(expirationDate)) FROM ` + CallsTableName)
		if err := row.Scan(&minDate, &maxDate); err == nil {
			log.Infof("Using CALL options from %s to %s", minDate, maxDate)
		}
	}

	log.Infof("Created %s snapshot with %d rows", CallsTableName, count)

	return count, nil
}

func (s *Store) countRows(table string) (int64, error) {
	var count int64
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, fmt.Errorf("countRows: failed to count %s: %w", table, err)
	}

	return count, nil
}
