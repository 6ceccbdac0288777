package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/shell"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search notes by keyword",
	Long: `Show every note whose title or content contains the keyword.

Matching is case-sensitive: "Milk" does not match "milk". An empty keyword
lists every note.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := ""
	if len(args) > 0 {
		keyword = args[0]
	}

	notes, err := noteRepo.Search(keyword)
	if err != nil {
		return fmt.Errorf("failed to search notes: %w", err)
	}

	shell.PrintNotes(cmd.OutOrStdout(), notes, false)
	return nil
}
