// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rssBody(items ...string) string {
	return `<?xml version="1.0"?><rss><channel>` + strings.Join(items, "") + `</channel></rss>`
}

func rssItemXML(title, desc string) string {
	return fmt.Sprintf(
		"<item><title>%s</title><description>%s</description><link>https://example.org/a</link><pubDate>Mon, 02 Jan 2026 00:00:00 GMT</pubDate></item>",
		title, desc)
}

func TestNewsSearchFeedsFiltersAndDedups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(
			rssItemXML("레티놀 세럼 출시", "새 제품"),
			rssItemXML("날씨 소식", "맑음"),
			rssItemXML("신제품 소개", "&lt;b&gt;레티놀&lt;/b&gt; 함유 &amp; 저자극"),
			rssItemXML("레티놀 세럼 출시", "중복 기사"),
		))
	}))
	defer srv.Close()

	old := yonhapFeeds
	yonhapFeeds = []string{srv.URL + "/rss/news.xml"}
	defer func() { yonhapFeeds = old }()

	n := &News{Client: srv.Client()}
	var buf bytes.Buffer
	results, err := n.SearchYonhap(context.Background(), "레티놀", &buf)
	if err != nil {
		t.Fatalf("SearchYonhap: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (filtered, title-deduped)", len(results))
	}
	for _, r := range results {
		if r.Source != "연합뉴스" {
			t.Errorf("Source = %q, want 연합뉴스", r.Source)
		}
	}

	// HTML in descriptions is stripped and entities decoded.
	var matched bool
	for _, r := range results {
		if r.Title == "신제품 소개" {
			matched = true
			if r.Description != "레티놀 함유 & 저자극" {
				t.Errorf("Description = %q, want cleaned text", r.Description)
			}
		}
	}
	if !matched {
		t.Error("description-matched item missing from results")
	}
}

func TestNewsSearchFeedsSkipsFailedFeed(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(rssItemXML("시카 크림", "진정")))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer bad.Close()

	old := cnnFeeds
	cnnFeeds = []string{bad.URL, good.URL}
	defer func() { cnnFeeds = old }()

	n := &News{Client: good.Client()}
	var buf bytes.Buffer
	results, err := n.SearchCNN(context.Background(), "시카", &buf)
	if err != nil {
		t.Fatalf("SearchCNN: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 from the healthy feed", len(results))
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("progress output = %q, want a warning for the failed feed", buf.String())
	}
}

func TestNewsPerFeedLimit(t *testing.T) {
	var items []string
	for i := 0; i < 15; i++ {
		items = append(items, rssItemXML(fmt.Sprintf("시카 기사 %02d", i), "x"))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(items...))
	}))
	defer srv.Close()

	old := yonhapFeeds
	yonhapFeeds = []string{srv.URL}
	defer func() { yonhapFeeds = old }()

	n := &News{Client: srv.Client()}
	results, err := n.SearchYonhap(context.Background(), "시카", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("SearchYonhap: %v", err)
	}
	if len(results) != perFeedLimit {
		t.Errorf("len(results) = %d, want per-feed cap %d", len(results), perFeedLimit)
	}
}

func TestNewsSearchAllCombinesSources(t *testing.T) {
	yonhap := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(rssItemXML("레티놀 국내 소식", "x")))
	}))
	defer yonhap.Close()
	cnn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssBody(rssItemXML("retinol study", "레티놀")))
	}))
	defer cnn.Close()

	oldY, oldC := yonhapFeeds, cnnFeeds
	yonhapFeeds = []string{yonhap.URL}
	cnnFeeds = []string{cnn.URL}
	defer func() { yonhapFeeds, cnnFeeds = oldY, oldC }()

	n := &News{Client: yonhap.Client()}
	results := n.SearchAll(context.Background(), "레티놀", &bytes.Buffer{})
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 across sources", len(results))
	}
	sources := map[string]bool{}
	for _, r := range results {
		sources[r.Source] = true
	}
	if !sources["연합뉴스"] || !sources["CNN"] {
		t.Errorf("sources = %v, want both 연합뉴스 and CNN", sources)
	}
}

func TestNewsSearchAllSharedWarningWriter(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer bad.Close()

	oldY, oldC := yonhapFeeds, cnnFeeds
	yonhapFeeds = []string{bad.URL, bad.URL}
	cnnFeeds = []string{bad.URL, bad.URL}
	defer func() { yonhapFeeds, cnnFeeds = oldY, oldC }()

	// Both sources fail every feed and warn into the same buffer; the
	// writes come from concurrent goroutines and must be serialized.
	n := &News{Client: bad.Client()}
	var buf bytes.Buffer
	results := n.SearchAll(context.Background(), "레티놀", &buf)
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
	if got := strings.Count(buf.String(), "warning"); got != 4 {
		t.Errorf("warning count = %d, want one per failed feed (4)", got)
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>hello</p>", "hello"},
		{"a &amp; b", "a & b"},
		{"&lt;tag&gt; &quot;q&quot; &#39;s&#39;&nbsp;", `<tag> "q" 's'`},
		{"  plain  ", "plain"},
	}
	for _, tt := range tests {
		if got := cleanHTML(tt.in); got != tt.want {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
