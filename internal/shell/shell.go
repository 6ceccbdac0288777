// Package shell implements the interactive, menu-driven note loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/models"
	"github.com/streed/jot/internal/selector"
)

// User-facing messages
const (
	MsgNoteAdded     = "Note added!"
	MsgNoNotes       = "No notes found!"
	MsgNoteDeleted   = "Note deleted!"
	MsgInvalidChoice = "Invalid choice!"
)

// NoteStore is what the shell needs from the repository.
type NoteStore interface {
	Create(title, content string) (models.Note, error)
	ListAll() ([]models.Note, error)
	Search(keyword string) ([]models.Note, error)
}

type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	store    NoteStore
	selector *selector.Selector
	styles   styles
}

func New(in io.Reader, out io.Writer, store NoteStore, sel *selector.Selector) *Shell {
	return &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		store:    store,
		selector: sel,
		styles:   newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.prompt("Choose an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		action := ParseAction(choice)
		logger.Debug("Menu choice %q -> %s", choice, action)

		switch action {
		case ActionAdd:
			err = s.addNote()
		case ActionList:
			err = s.listNotes()
		case ActionSearch:
			err = s.searchNotes()
		case ActionDelete:
			err = s.deleteNote()
		case ActionExit:
			return nil
		case ActionInvalid:
			s.fail(MsgInvalidChoice)
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			s.reportError(err)
		}
	}
}

func (s *Shell) printMenu() {
	for _, a := range menuOrder {
		fmt.Fprintf(s.out, "%s - %s\n", s.styles.menuKey.Render(a.Key()), a)
	}
}

func (s *Shell) addNote() error {
	title, err := s.prompt("Enter note title: ")
	if err != nil {
		return err
	}
	content, err := s.prompt("Enter note content: ")
	if err != nil {
		return err
	}

	if _, err := s.store.Create(title, content); err != nil {
		return err
	}
	s.succeed(MsgNoteAdded)
	return nil
}

func (s *Shell) listNotes() error {
	notes, err := s.store.ListAll()
	if err != nil {
		return err
	}
	s.renderNotes(notes, false)
	return nil
}

func (s *Shell) searchNotes() error {
	keyword, err := s.prompt("Enter a keyword to search for: ")
	if err != nil {
		return err
	}

	notes, err := s.store.Search(keyword)
	if err != nil {
		return err
	}
	s.renderNotes(notes, false)
	return nil
}

func (s *Shell) deleteNote() error {
	keyword, err := s.prompt("Enter a keyword to find the note to delete: ")
	if err != nil {
		return err
	}

	matches, err := s.selector.Search(keyword)
	if err != nil {
		return err
	}
	s.renderNotes(matches.Notes, true)

	choice, err := s.prompt("Enter the note number: ")
	if err != nil {
		return err
	}

	note, err := matches.Pick(choice)
	if err != nil {
		return err
	}

	removed, err := s.selector.Remove(note)
	if err != nil {
		return err
	}
	if removed > 1 {
		s.succeed(fmt.Sprintf("%s (%d matching notes removed)", MsgNoteDeleted, removed))
	} else {
		s.succeed(MsgNoteDeleted)
	}
	return nil
}

func (s *Shell) renderNotes(notes []models.Note, numbered bool) {
	renderNotes(s.out, s.styles, notes, numbered)
}

// PrintNotes renders notes to w the way the shell does, numbering them from 1
// when numbered is set.
func PrintNotes(w io.Writer, notes []models.Note, numbered bool) {
	renderNotes(w, newStyles(lipgloss.NewRenderer(w)), notes, numbered)
}

func renderNotes(w io.Writer, st styles, notes []models.Note, numbered bool) {
	if len(notes) == 0 {
		fmt.Fprintln(w, st.failure.Render(MsgNoNotes))
		return
	}
	for i, note := range notes {
		n := 0
		if numbered {
			n = i + 1
		}
		renderNote(w, st, note, n)
	}
}

// renderNote writes a labeled title/content block. A positive ordinal is
// shown as a [n] prefix.
func renderNote(w io.Writer, st styles, note models.Note, ordinal int) {
	prefix := ""
	if ordinal > 0 {
		prefix = st.ordinal.Render(fmt.Sprintf("[%d]", ordinal)) + " "
	}
	fmt.Fprintf(w, "%s%s %s\n%s %s\n\n",
		prefix,
		st.label.Render("Title:"), note.Title,
		st.label.Render("Content:"), note.Content,
	)
}

func (s *Shell) reportError(err error) {
	switch {
	case errors.Is(err, interrors.ErrNoteNotFound):
		s.fail(MsgNoNotes)
	case errors.Is(err, interrors.ErrInvalidSelection):
		s.fail(MsgInvalidChoice)
	default:
		logger.Error("Shell operation failed: %v", err)
		s.fail(fmt.Sprintf("Error: %v", err))
	}
}

func (s *Shell) succeed(msg string) {
	fmt.Fprintln(s.out, s.styles.success.Render(msg))
}

func (s *Shell) fail(msg string) {
	fmt.Fprintln(s.out, s.styles.failure.Render(msg))
}

// prompt reads one line. Only the line terminator is stripped; the rest is
// passed on unmodified.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
