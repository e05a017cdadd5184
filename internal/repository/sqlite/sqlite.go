// Package sqlite implements the repository interfaces using SQLite as the
// single storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single
// file. No separate database server to install, configure, or manage. For a
// per-user pantry of a few dozen records, it is a perfect fit, and ":memory:"
// gives tests a real database with zero setup.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// BLANK IMPORT:
	// Side-effect only import — the package's init() registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface (users, articles, recipes, week plans) on the one value.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/pantry.db"  → file-based database (persistent)
//   - ":memory:"        → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode:
	// Default SQLite locks the entire database during writes. WAL allows
	// concurrent reads WHILE a write is happening, and serializes concurrent
	// writes to the same record — the last write wins deterministically.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	// We want referential integrity: articles/recipes/week plans → users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Always defer it next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS is idempotent, so
// running it on every start is safe.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			quantity   REAL NOT NULL DEFAULT 0,
			unit       TEXT NOT NULL,
			threshold  REAL NOT NULL DEFAULT 0,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_articles_user_id ON articles(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating articles table: %w", err)
	}

	// Ingredients are stored as a JSON array in a TEXT column. An ingredient
	// line is never queried on its own — it only exists inside its recipe —
	// so a separate ingredients table would buy nothing but joins.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS recipes (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			type         TEXT NOT NULL,
			instructions TEXT NOT NULL DEFAULT '',
			ingredients  TEXT NOT NULL DEFAULT '[]',
			user_id      TEXT NOT NULL REFERENCES users(id),
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating recipes table: %w", err)
	}

	// One row per user (UNIQUE user_id), one nullable column per meal slot.
	// 14 columns reads clumsy next to a normalized slots table, but the grid
	// is always read and written whole, and the fixed 7×2 shape never grows.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS week_plans (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL UNIQUE REFERENCES users(id),
			monday_lunch     TEXT,
			monday_dinner    TEXT,
			tuesday_lunch    TEXT,
			tuesday_dinner   TEXT,
			wednesday_lunch  TEXT,
			wednesday_dinner TEXT,
			thursday_lunch   TEXT,
			thursday_dinner  TEXT,
			friday_lunch     TEXT,
			friday_dinner    TEXT,
			saturday_lunch   TEXT,
			saturday_dinner  TEXT,
			sunday_lunch     TEXT,
			sunday_dinner    TEXT,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating week_plans table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on the
// given qualified column (e.g. "users.email"). modernc.org/sqlite surfaces
// constraint errors as plain strings, so string matching is the only handle.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
