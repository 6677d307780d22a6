package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// The schema matches the production migrations but is created directly,
// without the seed catalog, so tests start from an empty state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Kept in sync with internal/database/migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE fund (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			dividend_per_share REAL NOT NULL DEFAULT 0,
			annual_dividend REAL NOT NULL DEFAULT 0,
			ex_dividend_date VARCHAR(10),
			frequency VARCHAR(20) NOT NULL DEFAULT 'Unknown',
			sector VARCHAR(50),
			updated_at DATETIME
		);

		CREATE TABLE position (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			name VARCHAR(100),
			sector VARCHAR(50),
			shares REAL NOT NULL CHECK (shares > 0),
			avg_cost REAL NOT NULL CHECK (avg_cost > 0),
			cost_basis REAL NOT NULL,
			purchase_date VARCHAR(10) NOT NULL
		);

		CREATE TABLE txn (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL,
			name VARCHAR(100),
			type VARCHAR(10) NOT NULL,
			shares REAL NOT NULL,
			price REAL NOT NULL,
			total REAL NOT NULL,
			date VARCHAR(10) NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX idx_txn_created_at ON txn (created_at DESC);
		CREATE INDEX idx_txn_symbol ON txn (symbol);

		CREATE TABLE settings (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
