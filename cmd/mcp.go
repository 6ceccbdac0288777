package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for LLM integration",
	Long: `Start a Model Context Protocol (MCP) server on stdio so an LLM client can
work with your notes.

Tools:
- add_note: Create a note from a title and content
- list_notes: List every note
- search_notes: Case-sensitive keyword search over titles and content
- delete_note: Delete the match at a 1-based position of a keyword search

Resources:
- notes://stats: Note count and delete mode

To use with Claude Desktop, add this to your claude_desktop_config.json:
{
  "mcpServers": {
    "jot": {
      "command": "jot",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger.Info("Starting MCP server...")

	notesServer := mcp.NewNotesServer(noteRepo, noteSelector, Version)
	mcpServer := notesServer.GetMCPServer()

	// Start server with stdio transport
	logger.Info("MCP server ready. Listening on stdio...")
	if err := server.ServeStdio(mcpServer); err != nil {
		if err.Error() != "EOF" {
			logger.Error("MCP server error: %v", err)
			return err
		}
	}

	logger.Info("MCP server shutting down")
	return nil
}
