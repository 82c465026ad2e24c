// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes CheatSheeter tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cheatsheeter/cheatsheeter/internal/codec"
	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
)

// Server wraps the MCP server with CheatSheeter tools.
type Server struct {
	mcp *server.MCPServer
	svc *sheetservice.Service
}

// New creates a new MCP server with all CheatSheeter tools registered.
func New(svc *sheetservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"CheatSheeter",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_cheatsheets",
		mcp.WithDescription("List stored cheatsheet names, sorted."),
		mcp.WithString("query", mcp.Description("Optional case-insensitive substring filter")),
	), s.listCheatSheets)

	s.mcp.AddTool(mcp.NewTool("read_cheatsheet",
		mcp.WithDescription("Read a cheatsheet as a YAML document."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Cheatsheet name (e.g. git-commands)")),
	), s.readCheatSheet)

	s.mcp.AddTool(mcp.NewTool("create_cheatsheet",
		mcp.WithDescription("Create a new cheatsheet from a YAML document. "+
			"The document MUST follow the canonical cheatsheet format (title, optional "+
			"columns, categories of command/description items). Read the contract first "+
			"via the get_cheatsheet_format tool or the cheatsheeter://format resource."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new cheatsheet (letters, digits, hyphen, underscore)")),
		mcp.WithString("data", mcp.Required(), mcp.Description("YAML document following the CheatSheeter format contract")),
	), s.createCheatSheet)

	s.mcp.AddTool(mcp.NewTool("update_cheatsheet",
		mcp.WithDescription("Replace an existing cheatsheet's document wholesale with a new YAML document."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the cheatsheet to update")),
		mcp.WithString("data", mcp.Required(), mcp.Description("Replacement YAML document")),
	), s.updateCheatSheet)

	s.mcp.AddTool(mcp.NewTool("get_cheatsheet_format",
		mcp.WithDescription("Returns the canonical CheatSheeter document format contract. "+
			"Call this before creating or updating cheatsheets to ensure correct structure."),
	), s.getCheatSheetFormat)

	s.mcp.AddTool(mcp.NewTool("import_cheatsheet",
		mcp.WithDescription("Import a cheatsheet from a YAML document at an http/https URL "+
			"or in a base64 data URI. The document is validated before it is stored."),
		mcp.WithString("url", mcp.Required(), mcp.Description("Source URL of the YAML document")),
		mcp.WithString("name", mcp.Description("Optional name for the imported sheet (derived from the URL when omitted)")),
	), s.importCheatSheet)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource("cheatsheeter://format", "Cheatsheet Format Contract",
			mcp.WithResourceDescription("Canonical YAML document format that all cheatsheets must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listCheatSheets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := ""
	if q, err := req.RequireString("query"); err == nil {
		query = q
	}
	names, err := s.svc.List(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no cheatsheets found"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) readCheatSheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sheet, err := s.svc.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err)), nil
	}
	out, err := codec.Encode(sheet.Data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createCheatSheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := codec.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.Create(ctx, name, data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", name)), nil
}

func (s *Server) updateCheatSheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := codec.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.Update(ctx, name, data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", name)), nil
}

func (s *Server) getCheatSheetFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FormatContract), nil
}

func (s *Server) readFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "cheatsheeter://format",
			MIMEType: "text/markdown",
			Text:     FormatContract,
		},
	}, nil
}
