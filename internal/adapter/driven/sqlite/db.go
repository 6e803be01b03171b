// Package sqlite implements the ReviewStateStore port on an embedded
// SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// DB provides dual reader/writer database connections with WAL mode enabled.
// The writer connection is limited to a single connection; WAL plus the
// single writer gives the atomic-write durability the state store promises.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// NewDB creates a new dual-connection SQLite database with WAL mode, busy
// timeout, synchronous NORMAL, and foreign keys enabled.
func NewDB(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath,
	)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.Ping(); err != nil {
		writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)

	if err := reader.Ping(); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &DB{
		Writer: writer,
		Reader: reader,
		path:   dbPath,
	}, nil
}

// Open opens the state database at path and applies migrations. When the
// existing file is unreadable or corrupt it is sidelined and a fresh store
// is created: the scheduler starts cold and re-reviews, which is always
// safe, so store loss is logged but never fatal.
func Open(dbPath string) (*DB, error) {
	db, err := open(dbPath)
	if err == nil {
		return db, nil
	}

	sidelined := fmt.Sprintf("%s.corrupt-%d", dbPath, time.Now().Unix())
	slog.Warn("state store unusable, starting cold",
		"path", dbPath,
		"sidelined_to", sidelined,
		"error", err,
	)
	if renameErr := os.Rename(dbPath, sidelined); renameErr != nil && !os.IsNotExist(renameErr) {
		return nil, fmt.Errorf("sidelining corrupt state store: %w", renameErr)
	}

	return open(dbPath)
}

func open(dbPath string) (*DB, error) {
	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(db.Writer); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes both reader and writer connections. Returns the first error
// encountered.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
