package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS wishlist (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    description TEXT,
    link        TEXT,
    image       TEXT,
    price       TEXT,
    status      TEXT DEFAULT 'available',
    claimer     TEXT
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema
// creation, for databases created before the statement existed. Each
// migration must be safe to re-run. Append new migrations at the end.
var migrations = []string{
	// Migration 1: databases from before the claim feature lack the
	// claimer column.
	`ALTER TABLE wishlist ADD COLUMN claimer TEXT`,
}

// Migrate creates the schema and applies migrations. A migration that fails
// because its column already exists is skipped; any other failure aborts.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// isDuplicateColumn reports whether err is SQLite's error for adding a
// column that already exists.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
