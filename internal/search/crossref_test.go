// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCrossRefSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("rows"); got != "2" {
			t.Errorf("rows = %q, want 2", got)
		}
		fmt.Fprint(w, `{"message":{"items":[
			{"DOI":"10.1000/xyz","title":["Niacinamide efficacy"],
			 "author":[{"given":"Jane","family":"Doe"},{"family":"Solo"}],
			 "container-title":["J Cosmet Sci"],
			 "published":{"date-parts":[[2022,3,15]]},
			 "URL":"https://example.org/paper"},
			{"title":[]}
		]}}`)
	}))
	defer srv.Close()

	old := crossrefAPIBase
	crossrefAPIBase = srv.URL
	defer func() { crossrefAPIBase = old }()

	c := &CrossRef{Client: srv.Client()}
	results, err := c.Search(context.Background(), "niacinamide", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Title != "Niacinamide efficacy" {
		t.Errorf("Title = %q", first.Title)
	}
	if len(first.Authors) != 2 || first.Authors[0] != "Jane Doe" || first.Authors[1] != "Solo" {
		t.Errorf("Authors = %v", first.Authors)
	}
	if first.Source != "J Cosmet Sci" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.PublishedDate != "2022-3-15" {
		t.Errorf("PublishedDate = %q, want 2022-3-15", first.PublishedDate)
	}
	if first.DOI == nil || *first.DOI != "10.1000/xyz" || first.ID != "10.1000/xyz" {
		t.Errorf("DOI = %v, ID = %q", first.DOI, first.ID)
	}
	if first.URL == nil || *first.URL != "https://example.org/paper" {
		t.Errorf("URL = %v", first.URL)
	}

	// An item with nothing set still gets placeholders and a generated id.
	second := results[1]
	if second.Title != "제목 없음" || second.Source != "Unknown" || second.PublishedDate != "Unknown" {
		t.Errorf("placeholders = %q / %q / %q", second.Title, second.Source, second.PublishedDate)
	}
	if second.ID == "" || second.DOI != nil {
		t.Errorf("ID = %q, DOI = %v", second.ID, second.DOI)
	}
}

func TestCrossRefDOIFallbackURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":{"items":[{"DOI":"10.1/abc","title":["t"]}]}}`)
	}))
	defer srv.Close()

	old := crossrefAPIBase
	crossrefAPIBase = srv.URL
	defer func() { crossrefAPIBase = old }()

	c := &CrossRef{Client: srv.Client()}
	results, err := c.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].URL == nil || *results[0].URL != "https://doi.org/10.1/abc" {
		t.Errorf("URL = %v, want doi.org fallback", results[0].URL)
	}
}

func TestCrossRefBlankQuery(t *testing.T) {
	c := &CrossRef{}
	results, err := c.Search(context.Background(), "", 5)
	if err != nil || results != nil {
		t.Errorf("blank query: results = %v, err = %v, want nil/nil", results, err)
	}
}
