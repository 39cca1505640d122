package tools

import "context"

const SearchNewsName = "search_news"

// NewsSearcher is the search capability behind search_news
type NewsSearcher interface {
	SearchNews(ctx context.Context, query string) string
}

// SearchNewsArgs are the arguments the agent passes to search_news
type SearchNewsArgs struct {
	Query string `json:"query,omitempty" jsonschema:"description=Web search query for recent news coverage,default=IBM Q4 earnings"`
}

// NewSearchNewsTool wraps a searcher as the search_news function tool
func NewSearchNewsTool(searcher NewsSearcher) (*FunctionTool, error) {
	return NewFunctionTool(
		SearchNewsName,
		"Search the web for recent news and return the top three results as 'title - link' lines.",
		func(ctx context.Context, args SearchNewsArgs) (string, error) {
			return searcher.SearchNews(ctx, args.Query), nil
		},
	)
}

// NewDefaultRegistry returns a registry holding the search_news tool
func NewDefaultRegistry(searcher NewsSearcher) (*Registry, error) {
	registry := NewRegistry()

	searchTool, err := NewSearchNewsTool(searcher)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(searchTool); err != nil {
		return nil, err
	}

	return registry, nil
}
