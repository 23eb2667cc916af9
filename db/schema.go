// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database types accepted by Open.
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to a PostgreSQL or SQLite database and verifies the
// connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dbType == TypeSQLite {
		// SQLite allows one writer; a single connection keeps vote
		// transactions from failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the ballot store.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Candidates, registered once at provisioning
CREATE TABLE IF NOT EXISTS candidate (
    list_index INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

-- Voters that have cast their ballot
CREATE TABLE IF NOT EXISTS voter (
    address TEXT PRIMARY KEY,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
