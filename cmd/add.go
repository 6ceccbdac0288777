package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title] [content]",
	Short: "Add a new note",
	Long: `Add a new note with a title and content.

Title and content can be passed as arguments or with flags:
  jot add "Groceries" "Milk, eggs"
  jot add -t "Groceries" -c "Milk, eggs"`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAdd,
}

var (
	title   string
	content string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	noteTitle, noteContent := title, content
	if len(args) > 0 {
		noteTitle = args[0]
	}
	if len(args) > 1 {
		noteContent = args[1]
	}

	if !cmd.Flags().Changed("title") && len(args) == 0 {
		return fmt.Errorf("a title is required (argument or --title)")
	}

	note, err := noteRepo.Create(noteTitle, noteContent)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Note added! (ID: %d)\n", note.ID)
	return nil
}
