// Package sqlite provides SQLite-based review storage.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas run on every connection open. WAL is added for file databases.
var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

// migrations are applied in order; PRAGMA user_version records how many
// have run.
var migrations = []string{
	`CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		review_key TEXT NOT NULL UNIQUE,
		platform TEXT NOT NULL,
		page INTEGER NOT NULL,
		reviewer_name TEXT NOT NULL DEFAULT 'Unknown',
		reviewer_description TEXT NOT NULL DEFAULT '',
		review_date TEXT NOT NULL DEFAULT 'Unknown',
		review_title TEXT NOT NULL DEFAULT '',
		review_content TEXT NOT NULL DEFAULT '',
		ratings TEXT NOT NULL DEFAULT '{}',
		relevant INTEGER,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_reviews_platform ON reviews(platform, page);`,

	`CREATE INDEX idx_reviews_relevant ON reviews(relevant, platform);`,
}

// DB wraps the review database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or MemoryPath.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects and brings the schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	stmts := pragmas
	if db.path != MemoryPath {
		stmts = append(stmts[:len(stmts):len(stmts)], "PRAGMA journal_mode = WAL")
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to configure database (%s): %w", stmt, err)
		}
	}

	db.db = conn
	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		db.db = nil
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// SchemaVersion returns the number of migrations applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// migrate applies pending migrations, each in its own transaction.
func (db *DB) migrate(ctx context.Context) error {
	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this program (%d)", current, len(migrations))
	}

	for v := current; v < len(migrations); v++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
