// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "k" || q.Get("cx") != "engine" {
			t.Errorf("key = %q, cx = %q", q.Get("key"), q.Get("cx"))
		}
		if q.Get("num") != "10" {
			t.Errorf("num = %q, want 10", q.Get("num"))
		}
		fmt.Fprint(w, `{"items":[
			{"title":"EWG skin deep","link":"https://ewg.org","snippet":"safety scores"},
			{"title":"no snippet","link":"https://x.org"}
		]}`)
	}))
	defer srv.Close()

	old := customSearchAPIBase
	customSearchAPIBase = srv.URL
	defer func() { customSearchAPIBase = old }()

	ws := &WebSearch{Client: srv.Client(), APIKey: "k", CX: "engine"}
	results, err := ws.Search(context.Background(), "retinol safety")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Title != "EWG skin deep" || results[0].Snippet != "safety scores" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Snippet != "" {
		t.Errorf("missing snippet should stay empty, got %q", results[1].Snippet)
	}
}

func TestWebSearchValidation(t *testing.T) {
	ws := &WebSearch{APIKey: "k", CX: "engine"}
	if results, err := ws.Search(context.Background(), "  "); err != nil || results != nil {
		t.Errorf("blank query: results = %v, err = %v, want nil/nil", results, err)
	}

	ws = &WebSearch{}
	if _, err := ws.Search(context.Background(), "q"); err == nil {
		t.Error("expected error without credentials")
	}
}
