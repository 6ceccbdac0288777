package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/streed/jot/internal/constants"
	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
)

const schema = `
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL
	)
`

// DB owns the SQLite handle backing the notes table. It is opened once,
// used, and closed once.
type DB struct {
	mu     sync.RWMutex
	conn   *sql.DB
	path   string
	closed bool
}

// New opens (creating if needed) the database at path and ensures the
// schema exists. Any failure is reported as ErrStorageUnavailable.
func New(path string) (*DB, error) {
	// Ensure database directory exists
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, constants.DirMode); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", interrors.ErrStorageUnavailable, err)
	}
	logger.Debug("Database path: %s", path)

	conn, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", interrors.ErrStorageUnavailable, err)
	}
	// One writer, one in-flight operation.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to open database: %v", interrors.ErrStorageUnavailable, err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.Initialize(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// dsn builds a file: URI for path. The path is escaped so that '#' and '?'
// in directory names reach SQLite intact instead of starting a fragment or
// query.
func dsn(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		RawQuery: "_synchronous=FULL&_busy_timeout=5000",
	}
	return u.String()
}

// Initialize creates the notes table if it does not exist. Calling it on an
// already initialized database leaves existing notes untouched.
func (db *DB) Initialize() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return interrors.ErrStoreClosed
	}

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("%w: failed to create notes table: %v", interrors.ErrStorageUnavailable, err)
	}
	logger.Debug("Notes table ready")
	return nil
}

// Close releases the handle. A second Close returns ErrStoreClosed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return interrors.ErrStoreClosed
	}
	db.closed = true
	return db.conn.Close()
}

// Conn returns the underlying handle, or ErrStoreClosed after Close.
func (db *DB) Conn() (*sql.DB, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return nil, interrors.ErrStoreClosed
	}
	return db.conn, nil
}

func (db *DB) Path() string {
	return db.path
}
