package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"summarizer-agent/internal/config"
	"summarizer-agent/internal/logger"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultQuery is searched when the agent calls the tool without a query
	DefaultQuery = "IBM Q4 earnings"

	NoResultsMessage = "No relevant search results found."
	ErrorPrefix      = "❌ Serper search error:"

	maxResults = 3
)

// Request is the Serper search request body
type Request struct {
	Q string `json:"q"`
}

// OrganicResult is one organic hit in a Serper response
type OrganicResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Response is the subset of the Serper response this client reads
type Response struct {
	Organic []OrganicResult `json:"organic"`
}

// StatusError is returned when Serper answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return e.Body
}

// Client calls the Serper web search API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Serper client from search configuration
func NewClient(cfg config.SearchConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultSearchEndpoint
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search issues one search request and decodes the response
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	jsonData, err := json.Marshal(Request{Q: query})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	logger.Log.WithField("query", query).Debug("Calling Serper search API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var searchResp Response
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"query":   query,
		"results": len(searchResp.Organic),
	}).Debug("Received Serper search results")

	return &searchResp, nil
}

// SearchNews runs a search and renders the result as tool output text.
// Failures are reported in the returned text rather than as an error.
func (c *Client) SearchNews(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}

	resp, err := c.Search(ctx, query)
	if err != nil {
		logger.Log.WithError(err).WithField("query", query).Warn("Serper search failed")
		return fmt.Sprintf("%s %s", ErrorPrefix, err.Error())
	}

	return FormatResults(resp.Organic)
}

// FormatResults renders up to the top three results as "title - link" lines
func FormatResults(results []OrganicResult) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s - %s", r.Title, r.Link))
	}
	return strings.Join(lines, "\n")
}
