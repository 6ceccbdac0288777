package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/streed/jot/internal/constants"
	interrors "github.com/streed/jot/internal/errors"
	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/models"
	"github.com/streed/jot/internal/selector"
)

type NotesServer struct {
	repo      *models.NoteRepository
	selector  *selector.Selector
	mcpServer *server.MCPServer
}

func NewNotesServer(repo *models.NoteRepository, sel *selector.Selector, version string) *NotesServer {
	ns := &NotesServer{
		repo:     repo,
		selector: sel,
	}

	ns.mcpServer = server.NewMCPServer(
		"jot",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	ns.registerTools()
	ns.registerResources()

	return ns
}

func (s *NotesServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *NotesServer) registerTools() {
	addNoteTool := mcp.NewTool("add_note",
		mcp.WithDescription("Add a new note"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the note"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The content of the note"),
		),
	)
	s.mcpServer.AddTool(addNoteTool, s.handleAddNote)

	getNoteTool := mcp.NewTool("get_note",
		mcp.WithDescription("Get a specific note by ID"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The ID of the note to retrieve"),
		),
	)
	s.mcpServer.AddTool(getNoteTool, s.handleGetNote)

	listNotesTool := mcp.NewTool("list_notes",
		mcp.WithDescription("List every note in insertion order"),
	)
	s.mcpServer.AddTool(listNotesTool, s.handleListNotes)

	searchTool := mcp.NewTool("search_notes",
		mcp.WithDescription("Find notes whose title or content contains the keyword (case-sensitive). An empty keyword returns every note."),
		mcp.WithString("keyword",
			mcp.Description("Substring to look for"),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchNotes)

	deleteNoteTool := mcp.NewTool("delete_note",
		mcp.WithDescription("Search by keyword, then delete the match at the given 1-based position in that result list"),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Keyword used to find candidate notes"),
		),
		mcp.WithString("choice",
			mcp.Required(),
			mcp.Description("1-based position in the search results, as returned by search_notes"),
		),
	)
	s.mcpServer.AddTool(deleteNoteTool, s.handleDeleteNote)
}

func (s *NotesServer) registerResources() {
	statsResource := mcp.NewResource("notes://stats",
		"Notes Statistics",
		mcp.WithResourceDescription("Number of stored notes and the active delete mode"),
		mcp.WithMIMEType("text/plain"),
	)
	s.mcpServer.AddResource(statsResource, s.handleStats)
}

// Tool handlers
func (s *NotesServer) handleAddNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: add_note")

	title, err := request.RequireString("title")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'title': %w", err)
	}

	content, err := request.RequireString("content")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'content': %w", err)
	}

	note, err := s.repo.Create(title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Note created successfully with ID: %d\nTitle: %s", note.ID, note.Title)), nil
}

func (s *NotesServer) handleGetNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: get_note")

	id, err := request.RequireInt("id")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'id': %w", err)
	}

	note, err := s.repo.GetByID(int64(id))
	if errors.Is(err, interrors.ErrNoteNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("%v: %d", err, id)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Note ID: %d\nTitle: %s\n\nContent:\n%s", note.ID, note.Title, note.Content)), nil
}

func (s *NotesServer) handleListNotes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: list_notes")

	notes, err := s.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Listing %d notes:\n\n%s", len(notes), formatNotes(notes))), nil
}

func (s *NotesServer) handleSearchNotes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := request.GetString("keyword", "")
	logger.Debug("MCP tool call: search_notes %q", keyword)

	notes, err := s.repo.Search(keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	if len(notes) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No notes found for %q.", keyword)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d notes for %q:\n\n%s", len(notes), keyword, formatNotes(notes))), nil
}

func (s *NotesServer) handleDeleteNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger.Debug("MCP tool call: delete_note")

	keyword, err := request.RequireString("keyword")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'keyword': %w", err)
	}

	choice, err := request.RequireString("choice")
	if err != nil {
		return nil, fmt.Errorf("missing required parameter 'choice': %w", err)
	}

	note, err := s.selector.Resolve(keyword, choice)
	if errors.Is(err, interrors.ErrNoteNotFound) || errors.Is(err, interrors.ErrInvalidSelection) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve note: %w", err)
	}

	removed, err := s.selector.Remove(note)
	if err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted %d note(s) titled %q", removed, note.Title)), nil
}

// Resource handlers
func (s *NotesServer) handleStats(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	logger.Debug("MCP resource read: notes://stats")

	count, err := s.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}

	mode := constants.DeleteByContent
	if s.selector.DeletesByID() {
		mode = constants.DeleteByID
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Total notes: %d\nDelete mode: %s\n", count, mode),
		},
	}, nil
}

func formatNotes(notes []models.Note) string {
	var b strings.Builder
	for i, note := range notes {
		fmt.Fprintf(&b, "%d. [ID: %d] %s\n   %s\n\n", i+1, note.ID, note.Title, truncateString(note.Content, constants.PreviewLength))
	}
	return b.String()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
