// Package db stores the export ledger: one row per exported collection,
// holding counts and the output path. Pull records are never stored.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the ledger database inside the base directory.
const FileName = "ledger.db"

// migrations[i] moves the schema from user_version i to i+1.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS exports (
	  id          TEXT PRIMARY KEY,
	  game        TEXT NOT NULL,
	  region      TEXT,
	  uid         TEXT NOT NULL,
	  items       INTEGER NOT NULL,
	  categories  INTEGER NOT NULL,
	  output      TEXT,
	  exported_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at DESC, id DESC);
	CREATE INDEX IF NOT EXISTS idx_exports_game_uid ON exports(game, uid, exported_at DESC);`,
}

// SchemaVersion is the user_version after all migrations have run.
func SchemaVersion() int { return len(migrations) }

// Init opens (creating if needed) the ledger at baseDir/ledger.db.
// Tests pass t.TempDir() instead of ~/.gachalog.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	path := filepath.Join(baseDir, FileName)
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(path, 0600)
	return db, nil
}

// Open opens the ledger at path in WAL mode and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("read journal mode: %w", err)
	}
	if mode != "wal" {
		db.Close()
		return nil, fmt.Errorf("ledger journal mode is %s, want wal", mode)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrate runs each pending migration in its own transaction, bumping
// user_version in the same transaction.
func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}
	if version > len(migrations) {
		return fmt.Errorf("ledger schema version %d is newer than supported version %d", version, len(migrations))
	}

	for v := version; v < len(migrations); v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
	}
	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}
