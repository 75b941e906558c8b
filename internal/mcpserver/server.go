// Package mcpserver exposes the harvested corpus over MCP stdio
// transport, so assistants can search commission records directly.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/search"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/snippet"
	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Server wraps the MCP server around a search engine.
type Server struct {
	mcpServer *server.MCPServer
	engine    *search.Engine
}

// searchResult is one record in the search_documents response, the
// record plus an excerpt around the best query-term match.
type searchResult struct {
	models.Document
	Excerpt string `json:"excerpt,omitempty"`
}

// NewServer creates a new MCP server with search tools over the given
// engine.
func NewServer(config Config, engine *search.Engine) *Server {
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		engine:    engine,
	}

	searchTool := mcp.NewTool("search_documents",
		mcp.WithDescription("Search harvested commission records (agendas, minutes, resolutions) by query. Returns matching records with excerpts."),
		mcp.WithString("query",
			mcp.Description("Search query string; empty matches all records"),
		),
		mcp.WithString("type",
			mcp.Description("Filter by record type: agenda, minutes, or resolution"),
		),
		mcp.WithNumber("year",
			mcp.Description("Filter by meeting year"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order: relevance (default), newest, oldest, or title"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)
	mcpServer.AddTool(searchTool, s.searchHandler)

	getDocTool := mcp.NewTool("get_document",
		mcp.WithDescription("Get a specific commission record by ID, including its full body text"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Record ID to retrieve"),
		),
	)
	mcpServer.AddTool(getDocTool, s.getDocumentHandler)

	return s
}

// searchHandler handles the search_documents tool call.
func (s *Server) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := search.State{
		Query: req.GetString("query", ""),
		Sort:  search.SortRelevance,
	}
	if t, ok := models.ParseType(req.GetString("type", "")); ok {
		state.Filters.Type = t
	}
	state.Filters.Year = req.GetInt("year", 0)
	switch key := search.SortKey(req.GetString("sort", "")); key {
	case search.SortNewest, search.SortOldest, search.SortTitle:
		state.Sort = key
	}

	limit := req.GetInt("limit", 10)

	results := s.handleSearch(state, limit)

	payload, err := json.Marshal(results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// getDocumentHandler handles the get_document tool call.
func (s *Server) getDocumentHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	doc, ok := s.handleGetDocument(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("document not found: %s", id)), nil
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal document: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// handleSearch evaluates the query state and attaches excerpts. Bodies
// are dropped from the listing; get_document returns them in full.
func (s *Server) handleSearch(state search.State, limit int) []searchResult {
	docs := s.engine.Evaluate(state)
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	terms := search.Terms(state.Query)
	results := make([]searchResult, 0, len(docs))
	for _, doc := range docs {
		excerpt := snippet.Excerpt(doc.Body, terms)
		doc.Body = ""
		results = append(results, searchResult{Document: doc, Excerpt: excerpt})
	}
	return results
}

// handleGetDocument retrieves a record by ID.
func (s *Server) handleGetDocument(id string) (models.Document, bool) {
	return s.engine.Get(id)
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
