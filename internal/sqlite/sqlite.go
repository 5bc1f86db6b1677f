// Package sqlite opens SQLite databases and applies embedded migrations
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Options controls how a database is opened
type Options struct {
	// Migrations are applied after the connection is verified. Nil skips migrations.
	Migrations fs.FS
	// ReadOnly opens the file with mode=ro. Migrations are not applied.
	ReadOnly bool
	// RollbackJournal keeps the default journal mode instead of WAL. Files that
	// are later opened read-only need this.
	RollbackJournal bool
	// Lazy skips the initial ping so an unavailable file surfaces on first use
	Lazy bool
}

// Open opens the SQLite file at path, verifies the connection and applies migrations
func Open(ctx context.Context, path string, opts *Options) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if opts.ReadOnly {
		dsn += "&mode=ro"
	} else if !opts.RollbackJournal {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if opts.Lazy {
		return db, nil
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if opts.Migrations != nil && !opts.ReadOnly {
		if err := ApplyMigrations(ctx, db, opts.Migrations); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return db, nil
}

// ToMillis converts a time to UTC unix milliseconds
func ToMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// FromMillis converts unix milliseconds to a UTC time
func FromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// IsUniqueViolation reports whether err is a primary key or unique constraint failure
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
