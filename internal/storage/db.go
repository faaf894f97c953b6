// Package storage keeps the solve history in a local SQLite file.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// pragmas are run on the single pooled connection when the database is opened.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// DB is an open history database.
type DB struct {
	*sql.DB
	path string
}

// DefaultPath returns ~/.watersort/watersort.db, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".watersort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "watersort.db"), nil
}

// Open opens the history database at path, creating the file and its
// parent directory when missing. Call MigrateUp before use.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return &DB{DB: conn, path: path}, nil
}

// OpenDefault opens the database at DefaultPath.
func OpenDefault() (*DB, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Path returns the file the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// MigrateUp applies pending migrations.
func (db *DB) MigrateUp() error {
	return applyMigrations(db.DB)
}

// CurrentVersion returns the applied schema version, 0 for a new file.
func (db *DB) CurrentVersion() (int, error) {
	return schemaVersion(db.DB)
}
