// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/pkg/types"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossRef searches the CrossRef works index for papers and conference
// proceedings.
type CrossRef struct {
	Client *http.Client
	Cache  *Cache
}

// Name returns the backend identifier.
func (c *CrossRef) Name() string { return "crossref" }

// Search queries the works index. A blank query yields no results.
func (c *CrossRef) Search(ctx context.Context, query string, limit int) ([]types.ConferenceResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var cached []types.ConferenceResult
	if c.Cache.Get(ctx, c.Name(), query, limit, &cached) {
		return cached, nil
	}

	searchURL := fmt.Sprintf("%s?query=%s&rows=%d&select=DOI,title,author,container-title,published,URL",
		crossrefAPIBase, url.QueryEscape(query), limit)

	resp, err := get(ctx, c.Client, searchURL, "")
	if err != nil {
		return nil, fmt.Errorf("CrossRef request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef returned HTTP %d", resp.StatusCode)
	}

	var body crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	var results []types.ConferenceResult
	for _, item := range body.Message.Items {
		results = append(results, item.toConferenceResult())
	}

	c.Cache.Put(ctx, c.Name(), query, limit, results)
	return results, nil
}

// CrossRef works JSON structures.
type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Published      struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"published"`
	URL string `json:"URL"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

func (item crossrefItem) toConferenceResult() types.ConferenceResult {
	title := noTitle
	if len(item.Title) > 0 && item.Title[0] != "" {
		title = item.Title[0]
	}

	var authors []string
	for _, a := range item.Author {
		if a.Given == "" {
			authors = append(authors, a.Family)
			continue
		}
		authors = append(authors, a.Given+" "+a.Family)
	}

	source := "Unknown"
	if len(item.ContainerTitle) > 0 && item.ContainerTitle[0] != "" {
		source = item.ContainerTitle[0]
	}

	published := "Unknown"
	if len(item.Published.DateParts) > 0 && len(item.Published.DateParts[0]) > 0 {
		var parts []string
		for _, n := range item.Published.DateParts[0] {
			parts = append(parts, strconv.Itoa(n))
		}
		published = strings.Join(parts, "-")
	}

	result := types.ConferenceResult{
		Title:         title,
		Authors:       authors,
		PublishedDate: published,
		Source:        source,
	}

	if item.DOI != "" {
		doi := item.DOI
		result.ID = doi
		result.DOI = &doi
	} else {
		result.ID = uuid.NewString()
	}

	if item.URL != "" {
		u := item.URL
		result.URL = &u
	} else if item.DOI != "" {
		u := "https://doi.org/" + item.DOI
		result.URL = &u
	}

	return result
}
