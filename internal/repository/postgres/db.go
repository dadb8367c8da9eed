package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Pool sizing for the campaign archive. Writes are a row per finished
// campaign plus turn counters, so a modest pool covers peak load.
const (
	maxOpenConns = 25
	maxIdleConns = 5
)

// Connect opens a connection pool to the PostgreSQL campaign archive.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}
