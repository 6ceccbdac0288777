// Package selector resolves a keyword and a 1-based ordinal choice into a
// single note, and removes the chosen note.
package selector

import (
	"fmt"
	"strconv"
	"strings"

	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/models"
)

// Store is the subset of the note repository the selector needs.
type Store interface {
	Search(keyword string) ([]models.Note, error)
	Delete(note models.Note) (int64, error)
	DeleteByID(id int64) error
}

type Selector struct {
	store    Store
	deleteID bool
}

// New returns a selector. When deleteByID is set, Remove deletes only the
// chosen row; otherwise it removes every note with the same title and content.
func New(store Store, deleteByID bool) *Selector {
	return &Selector{store: store, deleteID: deleteByID}
}

// Matches is the result set of one search. Ordinals always refer to this
// set, never to a later search.
type Matches struct {
	Keyword string
	Notes   []models.Note
}

// Search runs a single keyword search and freezes its results.
func (s *Selector) Search(keyword string) (*Matches, error) {
	notes, err := s.store.Search(keyword)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes match %q: %w", keyword, interrors.ErrNoteNotFound)
	}
	return &Matches{Keyword: keyword, Notes: notes}, nil
}

func (m *Matches) Len() int {
	return len(m.Notes)
}

// Pick parses choice as a 1-based position.
func (m *Matches) Pick(choice string) (models.Note, error) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %q is not a number", interrors.ErrInvalidSelection, choice)
	}
	return m.PickIndex(n)
}

func (m *Matches) PickIndex(n int) (models.Note, error) {
	if n < 1 || n > len(m.Notes) {
		return models.Note{}, fmt.Errorf("%w: %d is outside 1..%d", interrors.ErrInvalidSelection, n, len(m.Notes))
	}
	return m.Notes[n-1], nil
}

// Resolve searches for keyword and returns the note at the 1-based position
// choice. It does not delete anything.
func (s *Selector) Resolve(keyword, choice string) (models.Note, error) {
	matches, err := s.Search(keyword)
	if err != nil {
		return models.Note{}, err
	}
	return matches.Pick(choice)
}

// Remove deletes note according to the configured delete mode and returns the
// number of rows removed.
func (s *Selector) Remove(note models.Note) (int64, error) {
	if s.deleteID {
		if err := s.store.DeleteByID(note.ID); err != nil {
			return 0, err
		}
		logger.Debug("Removed note %d by id", note.ID)
		return 1, nil
	}

	removed, err := s.store.Delete(note)
	if err != nil {
		return 0, err
	}
	logger.Debug("Removed %d note(s) matching note %d", removed, note.ID)
	return removed, nil
}

func (s *Selector) DeletesByID() bool {
	return s.deleteID
}
