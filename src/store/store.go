package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	ChainTableName = "option_chains"
	PutsTableName  = "temp_puts_table"
	CallsTableName = "temp_calls_table"
)

var (
	// ErrChainTableMissing means the option_chains table has not been
	// populated; data collection must run first.
	ErrChainTableMissing = errors.New("option_chains table does not exist, run data collection first")

	// ErrSymbolNotFound means no chain rows exist for the requested symbol.
	ErrSymbolNotFound = errors.New("no data found for symbol")

	// ErrNoEligibleStrike means no strike at or below the underlying
	// price exists for the requested symbol.
	ErrNoEligibleStrike = errors.New("no valid strike prices found")
)

// Store wraps the SQLite chain database. One writer at a time: the
// snapshot tables are destructively rebuilt before each query cycle.
type Store struct {
	db *sqlx.DB
}

func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("NewStore: failed to create db directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("NewStore: failed to open %s: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("NewStore: failed to ping %s: %w", dbPath, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureChainTable() error {
	var name string
	err := s.db.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, ChainTableName)
	if err != nil {
		return fmt.Errorf("ensureChainTable: %w", ErrChainTableMissing)
	}

	return nil
}
