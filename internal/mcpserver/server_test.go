package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/search"
	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

func testEngine() *search.Engine {
	agenda := models.New("https://x.com/jan-agenda.pdf", "January Agenda",
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), models.TypeAgenda)
	agenda.Body = "solid waste budget discussion"

	minutes := models.New("https://x.com/mar-minutes.pdf", "March Minutes",
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), models.TypeMinutes)
	minutes.Body = "zoning variance approved"

	return search.NewEngine([]models.Document{minutes, agenda})
}

func TestServer_Creation(t *testing.T) {
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, testEngine())

	if s == nil {
		t.Fatal("NewServer() returned nil")
	}
	if s.mcpServer == nil {
		t.Error("mcpServer should not be nil")
	}
}

func TestServer_HandleSearch(t *testing.T) {
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, testEngine())

	results := s.handleSearch(search.State{Query: "budget", Sort: search.SortRelevance}, 10)
	if len(results) != 1 {
		t.Fatalf("handleSearch() returned %d results, want 1", len(results))
	}
	if results[0].Title != "January Agenda" {
		t.Errorf("Title = %q, want %q", results[0].Title, "January Agenda")
	}
	if results[0].Excerpt != "solid waste budget discussion" {
		t.Errorf("Excerpt = %q", results[0].Excerpt)
	}
	if results[0].Body != "" {
		t.Error("search results should omit record bodies")
	}
}

func TestServer_HandleSearchFilters(t *testing.T) {
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, testEngine())

	state := search.State{Filters: search.Filters{Type: models.TypeMinutes}}
	results := s.handleSearch(state, 10)
	if len(results) != 1 || results[0].Type != models.TypeMinutes {
		t.Errorf("handleSearch() = %+v, want only minutes", results)
	}
}

func TestServer_HandleSearchLimit(t *testing.T) {
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, testEngine())

	results := s.handleSearch(search.State{}, 1)
	if len(results) != 1 {
		t.Errorf("handleSearch() returned %d results, want limit of 1", len(results))
	}
}

func TestServer_SearchToolAcceptsLowercaseType(t *testing.T) {
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, testEngine())

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"type": "minutes"}

	res, err := s.searchHandler(context.Background(), req)
	if err != nil {
		t.Fatalf("searchHandler() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("searchHandler() returned tool error: %+v", res.Content)
	}

	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] = %T, want TextContent", res.Content[0])
	}

	var results []searchResult
	if err := json.Unmarshal([]byte(text.Text), &results); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(results) != 1 || results[0].Type != models.TypeMinutes {
		t.Errorf("results = %+v, want only minutes", results)
	}
}

func TestServer_HandleGetDocument(t *testing.T) {
	engine := testEngine()
	s := NewServer(Config{Name: "commission-search", Version: "1.0.0"}, engine)

	listed := s.handleSearch(search.State{Query: "budget"}, 1)
	if len(listed) != 1 {
		t.Fatalf("handleSearch() returned %d results", len(listed))
	}

	doc, ok := s.handleGetDocument(listed[0].ID)
	if !ok {
		t.Fatal("handleGetDocument() did not find the listed record")
	}
	if doc.Body != "solid waste budget discussion" {
		t.Errorf("Body = %q, want full body", doc.Body)
	}

	if _, ok := s.handleGetDocument("no-such-id"); ok {
		t.Error("handleGetDocument() should report missing IDs")
	}
}
