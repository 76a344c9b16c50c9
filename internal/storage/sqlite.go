// Package storage provides the local durable record store: one SQLite
// document table per entity type, opened once and shared by every store.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the shared SQLite handle. All entity tables live in one database
// file so that bulk import can run transactionally across collections.
type DB struct {
	sql *sql.DB
}

// Open creates the database file if needed, runs pending migrations, and
// returns a ready handle.
func Open(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// The in-memory collections are the only writers; a single connection
	// avoids SQLITE_BUSY on concurrent table initialization.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{sql: db}, nil
}

// Table returns a handle for one entity table. The name must match a table
// created by the migrations.
func (d *DB) Table(name string) *Table {
	return &Table{db: d.sql, name: name}
}

func (d *DB) Close() error {
	if d.sql != nil {
		return d.sql.Close()
	}
	return nil
}
