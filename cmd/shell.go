package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive menu",
	Long: `Start the interactive menu for adding, listing, searching and deleting notes.
This is also what runs when jot is started without a subcommand.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), noteRepo, noteSelector)
	return sh.Run(cmd.Context())
}
