package models

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/streed/jot/internal/database"
	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
)

// Note is a stored record. Values handed out by the repository are copies.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteRepository is the note store. It issues one storage operation at a
// time against the database it wraps.
type NoteRepository struct {
	mu sync.Mutex
	db *database.DB
}

func NewNoteRepository(db *database.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create persists a new note and returns it with its assigned id. The insert
// is committed before Create returns.
func (r *NoteRepository) Create(title, content string) (Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, err := r.db.Conn()
	if err != nil {
		return Note{}, err
	}

	tx, err := conn.Begin()
	if err != nil {
		return Note{}, fmt.Errorf("failed to start transaction: %w", storageErr(err))
	}

	result, err := tx.Exec(
		"INSERT INTO notes (title, content) VALUES (?, ?)",
		title, content,
	)
	if err != nil {
		rollback(tx)
		return Note{}, fmt.Errorf("failed to create note: %w", storageErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		rollback(tx)
		return Note{}, fmt.Errorf("failed to get insert id: %w", storageErr(err))
	}

	if err := tx.Commit(); err != nil {
		return Note{}, fmt.Errorf("failed to commit note: %w", storageErr(err))
	}

	logger.Debug("Created note %d", id)
	return Note{ID: id, Title: title, Content: content}, nil
}

func (r *NoteRepository) GetByID(id int64) (Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, err := r.db.Conn()
	if err != nil {
		return Note{}, err
	}

	var note Note
	err = conn.QueryRow(
		"SELECT id, title, content FROM notes WHERE id = ?",
		id,
	).Scan(&note.ID, &note.Title, &note.Content)

	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, interrors.ErrNoteNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to get note: %w", storageErr(err))
	}

	return note, nil
}

// ListAll returns every note in insertion order. No notes yields an empty,
// non-nil slice.
func (r *NoteRepository) ListAll() ([]Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.query("SELECT id, title, content FROM notes ORDER BY id ASC")
}

// Search returns every note whose title or content contains keyword as a
// case-sensitive substring. An empty or whitespace-only keyword matches all
// notes.
func (r *NoteRepository) Search(keyword string) ([]Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := "SELECT id, title, content FROM notes ORDER BY id ASC"
	var args []interface{}
	if strings.TrimSpace(keyword) != "" {
		// instr is byte-exact; LIKE would fold ASCII case.
		query = "SELECT id, title, content FROM notes WHERE instr(title, ?) > 0 OR instr(content, ?) > 0 ORDER BY id ASC"
		args = []interface{}{keyword, keyword}
	}

	notes, err := r.query(query, args...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Search %q matched %d notes", keyword, len(notes))
	return notes, nil
}

// Delete removes every note whose title and content both equal note's, in a
// single transaction, and reports how many rows were removed. Duplicates of
// the given note are removed along with it. Use DeleteByID to remove exactly
// one row.
func (r *NoteRepository) Delete(note Note) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deleteWhere(
		"DELETE FROM notes WHERE title = ? AND content = ?",
		note.Title, note.Content,
	)
}

// DeleteByID removes the single note with the given id.
func (r *NoteRepository) DeleteByID(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.deleteWhere("DELETE FROM notes WHERE id = ?", id)
	return err
}

func (r *NoteRepository) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, err := r.db.Conn()
	if err != nil {
		return 0, err
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", storageErr(err))
	}
	return count, nil
}

func (r *NoteRepository) query(query string, args ...interface{}) ([]Note, error) {
	conn, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", storageErr(err))
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", storageErr(err))
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", storageErr(err))
	}

	return notes, nil
}

func (r *NoteRepository) deleteWhere(query string, args ...interface{}) (int64, error) {
	conn, err := r.db.Conn()
	if err != nil {
		return 0, err
	}

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", storageErr(err))
	}

	result, err := tx.Exec(query, args...)
	if err != nil {
		rollback(tx)
		return 0, fmt.Errorf("failed to delete note: %w", storageErr(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		rollback(tx)
		return 0, fmt.Errorf("failed to get rows affected: %w", storageErr(err))
	}

	if rowsAffected == 0 {
		rollback(tx)
		return 0, interrors.ErrNoteNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", storageErr(err))
	}

	logger.Debug("Deleted %d note(s)", rowsAffected)
	return rowsAffected, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logger.Error("Failed to rollback transaction: %v", err)
	}
}

// storageErr tags driver failures so callers can match ErrStorageUnavailable.
func storageErr(err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, interrors.ErrStoreClosed) {
		return interrors.ErrStoreClosed
	}
	return fmt.Errorf("%w: %v", interrors.ErrStorageUnavailable, err)
}
