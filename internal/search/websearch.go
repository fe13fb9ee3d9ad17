// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mkweon/content-engine/pkg/types"
)

// customSearchAPIBase is the Google Custom Search endpoint. Declared as a
// var so tests can substitute an httptest server.
var customSearchAPIBase = "https://www.googleapis.com/customsearch/v1"

// WebSearch queries the Google Custom Search JSON API.
type WebSearch struct {
	Client *http.Client
	APIKey string
	CX     string // Custom Search engine id
}

// Name returns the backend identifier.
func (s *WebSearch) Name() string { return "websearch" }

// Search runs a web query. A blank query yields no results; a missing key
// or engine id is an error.
func (s *WebSearch) Search(ctx context.Context, query string) ([]types.WebResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if s.APIKey == "" || s.CX == "" {
		return nil, fmt.Errorf("web search requires an API key and engine id")
	}

	searchURL := fmt.Sprintf("%s?key=%s&cx=%s&q=%s&num=%d",
		customSearchAPIBase, url.QueryEscape(s.APIKey), url.QueryEscape(s.CX),
		url.QueryEscape(query), defaultMaxResults)

	resp, err := get(ctx, s.Client, searchURL, "")
	if err != nil {
		return nil, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("web search returned HTTP %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing web search response: %w", err)
	}

	var results []types.WebResult
	for _, item := range result.Items {
		results = append(results, types.WebResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
