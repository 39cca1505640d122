package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubSearcher struct {
	queries []string
	output  string
}

func (s *stubSearcher) SearchNews(ctx context.Context, query string) string {
	s.queries = append(s.queries, query)
	return s.output
}

func TestNewDefaultRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry(&stubSearcher{})
	if err != nil {
		t.Fatalf("NewDefaultRegistry() error = %v", err)
	}

	names := registry.Names()
	if len(names) != 1 || names[0] != SearchNewsName {
		t.Errorf("Names() = %v, want [search_news]", names)
	}

	defs := registry.Definitions()
	if len(defs) != 1 {
		t.Fatalf("Definitions() returned %d, want 1", len(defs))
	}
	if defs[0].Description == "" {
		t.Error("search_news definition has no description")
	}
}

func TestSearchNewsSchema(t *testing.T) {
	tool, err := NewSearchNewsTool(&stubSearcher{})
	if err != nil {
		t.Fatalf("NewSearchNewsTool() error = %v", err)
	}

	params := tool.Parameters
	if params["type"] != "object" {
		t.Errorf("schema type = %v, want object", params["type"])
	}

	props, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema properties = %#v, want map", params["properties"])
	}
	query, ok := props["query"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no query property: %#v", props)
	}
	if query["type"] != "string" {
		t.Errorf("query type = %v, want string", query["type"])
	}
	if _, hasSchema := params["$schema"]; hasSchema {
		t.Error("schema still carries $schema")
	}
}

func TestRegistry_ExecuteSearchNews(t *testing.T) {
	searcher := &stubSearcher{output: "IBM - https://example.com"}
	registry, err := NewDefaultRegistry(searcher)
	if err != nil {
		t.Fatalf("NewDefaultRegistry() error = %v", err)
	}

	got := registry.Execute(context.Background(), SearchNewsName, `{"query":"IBM cloud revenue"}`)
	if got != "IBM - https://example.com" {
		t.Errorf("Execute() = %q", got)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "IBM cloud revenue" {
		t.Errorf("searcher queries = %v", searcher.queries)
	}
}

func TestRegistry_ExecuteEmptyArguments(t *testing.T) {
	searcher := &stubSearcher{output: "ok"}
	registry, _ := NewDefaultRegistry(searcher)

	registry.Execute(context.Background(), SearchNewsName, "")
	if len(searcher.queries) != 1 || searcher.queries[0] != "" {
		t.Errorf("searcher queries = %v, want one empty query", searcher.queries)
	}
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	registry := NewRegistry()

	got := registry.Execute(context.Background(), "query_summaries", "{}")
	if !strings.Contains(got, "unknown tool") {
		t.Errorf("Execute() = %q, want unknown tool error", got)
	}
}

func TestRegistry_ExecuteMalformedArguments(t *testing.T) {
	searcher := &stubSearcher{}
	registry, _ := NewDefaultRegistry(searcher)

	got := registry.Execute(context.Background(), SearchNewsName, `{"query":`)
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("Execute() = %q, want Error prefix", got)
	}
	if len(searcher.queries) != 0 {
		t.Error("searcher called despite malformed arguments")
	}
}

func TestRegistry_ExecuteHandlerError(t *testing.T) {
	tool, err := NewFunctionTool("failing", "always fails", func(ctx context.Context, args struct{}) (string, error) {
		return "", errors.New("boom")
	})
	if err != nil {
		t.Fatalf("NewFunctionTool() error = %v", err)
	}
	registry := NewRegistry()
	if err := registry.Register(tool); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if got := registry.Execute(context.Background(), "failing", "{}"); got != "Error: boom" {
		t.Errorf("Execute() = %q, want Error: boom", got)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry, _ := NewDefaultRegistry(&stubSearcher{})
	tool, _ := NewSearchNewsTool(&stubSearcher{})

	if err := registry.Register(tool); err == nil {
		t.Error("Register() error = nil, want duplicate error")
	}
	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) error = nil, want error")
	}
}

func TestNewFunctionTool_Validation(t *testing.T) {
	fn := func(ctx context.Context, args SearchNewsArgs) (string, error) { return "", nil }

	if _, err := NewFunctionTool("", "desc", fn); err == nil {
		t.Error("NewFunctionTool() with empty name error = nil")
	}
	if _, err := NewFunctionTool("name", "", fn); err == nil {
		t.Error("NewFunctionTool() with empty description error = nil")
	}
}
