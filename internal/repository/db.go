// Package repository provides SQLite-backed persistence for the tracker.
package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS activities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	strava_id INTEGER UNIQUE NOT NULL,
	name TEXT,
	distance REAL,
	moving_time INTEGER,
	elapsed_time INTEGER,
	start_date TEXT,
	activity_type TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS component_replacements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	replacement_date TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bikes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS components (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	bike_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	component_type TEXT NOT NULL,
	install_date TEXT,
	install_distance REAL DEFAULT 0,
	service_interval_miles REAL,
	service_interval_time INTEGER,
	notes TEXT,
	FOREIGN KEY (bike_id) REFERENCES bikes (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS component_usage (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	component_id INTEGER NOT NULL,
	activity_id INTEGER NOT NULL,
	bike_id INTEGER NOT NULL,
	FOREIGN KEY (component_id) REFERENCES components (id) ON DELETE CASCADE,
	FOREIGN KEY (activity_id) REFERENCES activities (id) ON DELETE CASCADE,
	FOREIGN KEY (bike_id) REFERENCES bikes (id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS strava_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	access_token TEXT NOT NULL,
	refresh_token TEXT,
	expires_at INTEGER,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens the SQLite database at dbPath and creates the schema. The
// handle is constructed once at startup and injected into every repository;
// there is no lazy global.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}
