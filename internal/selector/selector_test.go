package selector

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streed/jot/internal/database"
	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/models"
)

func newRepo(t *testing.T) *models.NoteRepository {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return models.NewNoteRepository(db)
}

func seed(t *testing.T, repo *models.NoteRepository, pairs ...string) []models.Note {
	t.Helper()
	var notes []models.Note
	for i := 0; i+1 < len(pairs); i += 2 {
		n, err := repo.Create(pairs[i], pairs[i+1])
		require.NoError(t, err)
		notes = append(notes, n)
	}
	return notes
}

func TestResolveNotFound(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, "Groceries", "Milk, eggs")
	sel := New(repo, false)

	_, err := sel.Resolve("milk", "1")
	assert.ErrorIs(t, err, interrors.ErrNoteNotFound)

	_, err = sel.Resolve("anything", "1")
	assert.ErrorIs(t, err, interrors.ErrNoteNotFound)
}

func TestResolveNotFoundOnEmptyStore(t *testing.T) {
	sel := New(newRepo(t), false)

	_, err := sel.Resolve("", "1")
	assert.ErrorIs(t, err, interrors.ErrNoteNotFound)
}

func TestResolveSelectionBounds(t *testing.T) {
	repo := newRepo(t)
	notes := seed(t, repo,
		"Task one", "todo",
		"Task two", "todo",
		"Task three", "todo",
		"Unrelated", "other",
	)
	sel := New(repo, false)

	for i := 1; i <= 3; i++ {
		note, err := sel.Resolve("Task", string(rune('0'+i)))
		require.NoError(t, err)
		assert.Equal(t, notes[i-1], note)
	}

	for _, choice := range []string{"0", "-1", "4", "100", "", "abc", "1.5", "one", "2x"} {
		_, err := sel.Resolve("Task", choice)
		assert.ErrorIs(t, err, interrors.ErrInvalidSelection, "choice %q", choice)
	}
}

func TestResolveTrimsChoice(t *testing.T) {
	repo := newRepo(t)
	notes := seed(t, repo, "a", "x", "b", "x")

	note, err := New(repo, false).Resolve("x", " 2\n")
	require.NoError(t, err)
	assert.Equal(t, notes[1], note)
}

func TestResolveDoesNotDelete(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, "keep", "me")

	_, err := New(repo, false).Resolve("keep", "1")
	require.NoError(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMatchesAreStableAcrossLaterWrites(t *testing.T) {
	repo := newRepo(t)
	notes := seed(t, repo, "first", "alpha", "second", "alpha")
	sel := New(repo, false)

	matches, err := sel.Search("alpha")
	require.NoError(t, err)
	require.Equal(t, 2, matches.Len())

	// A note created after the search must not shift positions.
	_, err = repo.Create("zeroth", "alpha")
	require.NoError(t, err)

	note, err := matches.Pick("2")
	require.NoError(t, err)
	assert.Equal(t, notes[1], note)

	_, err = matches.PickIndex(3)
	assert.ErrorIs(t, err, interrors.ErrInvalidSelection)
}

func TestIndependentSearchesDoNotInterfere(t *testing.T) {
	repo := newRepo(t)
	notes := seed(t, repo, "cat", "meow", "dog", "woof", "cow", "moo")
	sel := New(repo, false)

	cats, err := sel.Search("meow")
	require.NoError(t, err)
	dogs, err := sel.Search("o")
	require.NoError(t, err)

	c, err := cats.Pick("1")
	require.NoError(t, err)
	assert.Equal(t, notes[0], c)

	d, err := dogs.Pick("2")
	require.NoError(t, err)
	assert.Equal(t, notes[1], d)
}

// Content mode keeps the bulk semantics: every duplicate of the chosen note
// goes with it.
func TestRemoveByContentDeletesDuplicates(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, "dup", "body", "dup", "body", "keep", "body")
	sel := New(repo, false)
	require.False(t, sel.DeletesByID())

	note, err := sel.Resolve("dup", "2")
	require.NoError(t, err)

	removed, err := sel.Remove(note)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "keep", remaining[0].Title)
}

// ID mode removes only the chosen row.
func TestRemoveByIDDeletesOneRow(t *testing.T) {
	repo := newRepo(t)
	notes := seed(t, repo, "dup", "body", "dup", "body")
	sel := New(repo, true)
	require.True(t, sel.DeletesByID())

	note, err := sel.Resolve("dup", "2")
	require.NoError(t, err)

	removed, err := sel.Remove(note)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []models.Note{notes[0]}, remaining)

	_, err = sel.Remove(note)
	assert.ErrorIs(t, err, interrors.ErrNoteNotFound)
}

func TestGroceriesScenario(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, "Groceries", "Milk, eggs")
	sel := New(repo, false)

	note, err := sel.Resolve("Milk", "1")
	require.NoError(t, err)
	assert.Equal(t, models.Note{ID: 1, Title: "Groceries", Content: "Milk, eggs"}, note)

	_, err = sel.Remove(note)
	require.NoError(t, err)

	all, err := repo.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
