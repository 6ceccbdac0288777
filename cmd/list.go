package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/shell"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all notes",
	Long:    `List every note in the order it was added.`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	notes, err := noteRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	shell.PrintNotes(cmd.OutOrStdout(), notes, false)
	return nil
}
