package database

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	interrors "github.com/streed/jot/internal/errors"
)

func setupTestDB(t *testing.T) (*DB, string) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return db, dbPath
}

func TestNew(t *testing.T) {
	db, dbPath := setupTestDB(t)
	defer db.Close()

	// Check that database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	conn, err := db.Conn()
	if err != nil {
		t.Fatalf("Conn failed: %v", err)
	}

	var version string
	if err := conn.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		t.Errorf("Failed to query SQLite version: %v", err)
	}
	if version == "" {
		t.Error("SQLite version should not be empty")
	}

	if db.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, db.Path())
	}
}

func TestDatabaseInitialization(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	conn, _ := db.Conn()

	var tableExists int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='notes'",
	).Scan(&tableExists)
	if err != nil {
		t.Fatalf("Failed to check for notes table: %v", err)
	}
	if tableExists != 1 {
		t.Error("Notes table should exist")
	}

	rows, err := conn.Query("PRAGMA table_info(notes)")
	if err != nil {
		t.Fatalf("Failed to read table info: %v", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull, pk int
		var defaultValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			t.Fatalf("Failed to scan column: %v", err)
		}
		columns = append(columns, name)
	}

	expected := []string{"id", "title", "content"}
	if len(columns) != len(expected) {
		t.Fatalf("Expected columns %v, got %v", expected, columns)
	}
	for i := range expected {
		if columns[i] != expected[i] {
			t.Errorf("Column %d: expected %s, got %s", i, expected[i], columns[i])
		}
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	db, dbPath := setupTestDB(t)

	conn, _ := db.Conn()
	if _, err := conn.Exec("INSERT INTO notes (title, content) VALUES (?, ?)", "keep", "me"); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	if err := db.Initialize(); err != nil {
		t.Fatalf("Second Initialize failed: %v", err)
	}
	db.Close()

	// Reopening runs Initialize again against the existing file
	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	conn, _ = reopened.Conn()
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 note after re-initialization, got %d", count)
	}

	var tables int
	if err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='notes'").Scan(&tables); err != nil {
		t.Fatalf("Failed to count tables: %v", err)
	}
	if tables != 1 {
		t.Errorf("Expected a single notes table, got %d", tables)
	}
}

func TestClose(t *testing.T) {
	db, _ := setupTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}

	if _, err := db.Conn(); !errors.Is(err, interrors.ErrStoreClosed) {
		t.Errorf("Expected ErrStoreClosed from Conn, got %v", err)
	}
	if err := db.Initialize(); !errors.Is(err, interrors.ErrStoreClosed) {
		t.Errorf("Expected ErrStoreClosed from Initialize, got %v", err)
	}
	if err := db.Close(); !errors.Is(err, interrors.ErrStoreClosed) {
		t.Errorf("Expected ErrStoreClosed from second Close, got %v", err)
	}
}

func TestDatabaseCreatesDirectories(t *testing.T) {
	tempDir := t.TempDir()
	deepPath := filepath.Join(tempDir, "level1", "level2", "level3")
	dbPath := filepath.Join(deepPath, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database in nested directory: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(deepPath); os.IsNotExist(err) {
		t.Error("Nested directories should be created")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file should be created")
	}
}

func TestNewStorageUnavailable(t *testing.T) {
	tempDir := t.TempDir()

	// A regular file where the parent directory should be
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	_, err := New(filepath.Join(blocker, "notes.db"))
	if !errors.Is(err, interrors.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}

func TestNewRejectsCorruptFile(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "corrupt.db")
	if err := os.WriteFile(dbPath, []byte(strings.Repeat("not a sqlite database ", 256)), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	_, err := New(dbPath)
	if !errors.Is(err, interrors.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable for corrupt file, got %v", err)
	}
}

func TestNewEscapesSpecialCharacters(t *testing.T) {
	for _, dir := range []string{"notes#2024", "a?b", "100%"} {
		t.Run(dir, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), dir, "notes.db")

			db, err := New(dbPath)
			if err != nil {
				t.Fatalf("Failed to create database under %q: %v", dir, err)
			}
			conn, err := db.Conn()
			if err != nil {
				t.Fatalf("Conn failed: %v", err)
			}
			if _, err := conn.Exec("INSERT INTO notes (title, content) VALUES ('t', 'c')"); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
			db.Close()

			if _, err := os.Stat(dbPath); err != nil {
				t.Fatalf("Database file should exist at %s: %v", dbPath, err)
			}

			db, err = New(dbPath)
			if err != nil {
				t.Fatalf("Failed to reopen database: %v", err)
			}
			defer db.Close()
			conn, _ = db.Conn()
			var count int
			if err := conn.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Expected 1 note after reopen, got %d", count)
			}
		})
	}
}
