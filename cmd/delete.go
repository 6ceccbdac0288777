package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/constants"
	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/selector"
	"github.com/streed/jot/internal/shell"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [keyword] [choice]",
	Short: "Delete a note found by keyword",
	Long: `Search for notes containing the keyword, then delete the one at the given
position in the numbered results.

When no choice is given the matches are listed and you are prompted for one.

By default every note with the same title and content as the chosen note is
removed, so exact duplicates go together. Use --by-id (or delete_mode: id in
the config) to remove only the chosen note.`,
	Args:    cobra.RangeArgs(1, 2),
	Aliases: []string{"rm", "remove"},
	RunE:    runDelete,
}

var deleteByID bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVar(&deleteByID, "by-id", false, "Delete only the chosen note, not its duplicates")
}

func runDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	keyword := args[0]

	sel := noteSelector
	if deleteByID && !sel.DeletesByID() {
		sel = selector.New(noteRepo, true)
	}

	matches, err := sel.Search(keyword)
	if errors.Is(err, interrors.ErrNoteNotFound) {
		fmt.Fprintln(out, shell.MsgNoNotes)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to search notes: %w", err)
	}

	shell.PrintNotes(out, matches.Notes, true)

	var choice string
	if len(args) > 1 {
		choice = args[1]
	} else {
		fmt.Fprint(out, "Enter the note number: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read choice: %w", err)
		}
		choice = strings.TrimSpace(line)
	}

	note, err := matches.Pick(choice)
	if err != nil {
		return err
	}

	removed, err := sel.Remove(note)
	if err != nil {
		logger.Error("Failed to delete note %d: %v", note.ID, err)
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Fprintln(out, strings.Repeat("=", constants.SeparatorWidth))
	if removed > 1 {
		fmt.Fprintf(out, "%s Removed %d notes titled %q.\n", shell.MsgNoteDeleted, removed, note.Title)
	} else {
		fmt.Fprintf(out, "%s Removed %q.\n", shell.MsgNoteDeleted, note.Title)
	}
	return nil
}
