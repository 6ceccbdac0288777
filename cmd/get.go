package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/constants"
	interrors "github.com/streed/jot/internal/errors"
)

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a note by ID",
	Long:  `Display the full content of a note by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", interrors.ErrInvalidNoteID, args[0])
	}

	note, err := noteRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}

	out := cmd.OutOrStdout()
	separator := strings.Repeat("=", constants.SeparatorWidth)
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "ID: %d\n", note.ID)
	fmt.Fprintf(out, "Title: %s\n", note.Title)
	fmt.Fprintln(out, separator)
	fmt.Fprintln(out)
	fmt.Fprintln(out, note.Content)
	return nil
}
