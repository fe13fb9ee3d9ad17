// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/mkweon/content-engine/pkg/types"
)

// Feed URL sets per news source. Declared as vars so tests can substitute
// httptest servers.
var (
	yonhapFeeds = []string{
		"https://www.yna.co.kr/rss/news.xml",
		"https://www.yna.co.kr/rss/economy.xml",
		"https://www.yna.co.kr/rss/science.xml",
	}
	cnnFeeds = []string{
		"http://rss.cnn.com/rss/edition.rss",
		"http://rss.cnn.com/rss/edition_world.rss",
		"http://rss.cnn.com/rss/edition_technology.rss",
	}
)

// perFeedLimit caps the matches taken from a single feed.
const perFeedLimit = 10

// News matches a keyword against RSS news feeds.
type News struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (n *News) Name() string { return "news" }

// SearchYonhap scans the Yonhap feed set for items matching keyword.
// Per-feed failures are logged to w and skipped.
func (n *News) SearchYonhap(ctx context.Context, keyword string, w io.Writer) ([]types.NewsResult, error) {
	return n.searchFeeds(ctx, yonhapFeeds, keyword, "연합뉴스", w)
}

// SearchCNN scans the CNN feed set for items matching keyword.
func (n *News) SearchCNN(ctx context.Context, keyword string, w io.Writer) ([]types.NewsResult, error) {
	return n.searchFeeds(ctx, cnnFeeds, keyword, "CNN", w)
}

// syncWriter serializes writes to the shared progress writer. The source
// searches run concurrently and both log feed failures.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// SearchAll queries both news sources concurrently and combines their
// results. A source that fails entirely contributes nothing.
func (n *News) SearchAll(ctx context.Context, keyword string, w io.Writer) []types.NewsResult {
	type sourceResult struct {
		results []types.NewsResult
		err     error
		name    string
	}

	sw := &syncWriter{w: w}
	searches := []func() ([]types.NewsResult, error){
		func() ([]types.NewsResult, error) { return n.SearchYonhap(ctx, keyword, sw) },
		func() ([]types.NewsResult, error) { return n.SearchCNN(ctx, keyword, sw) },
	}

	ch := make(chan sourceResult, len(searches))
	var wg sync.WaitGroup
	for _, s := range searches {
		wg.Add(1)
		go func(s func() ([]types.NewsResult, error)) {
			defer wg.Done()
			results, err := s()
			ch <- sourceResult{results: results, err: err}
		}(s)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.NewsResult
	for sr := range ch {
		if sr.err != nil {
			continue
		}
		all = append(all, sr.results...)
	}
	return all
}

// searchFeeds scans each feed in order, filters by keyword, and dedups the
// combined results by title.
func (n *News) searchFeeds(ctx context.Context, feeds []string, keyword, source string, w io.Writer) ([]types.NewsResult, error) {
	var all []types.NewsResult
	for _, feedURL := range feeds {
		results, err := n.fetchFeed(ctx, feedURL, keyword, source)
		if err != nil {
			fmt.Fprintf(w, "warning: %s feed failed (%s): %v\n", source, feedURL, err)
			continue
		}
		all = append(all, results...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	deduped := all[:0]
	for i, r := range all {
		if i > 0 && r.Title == all[i-1].Title {
			continue
		}
		deduped = append(deduped, r)
	}
	return deduped, nil
}

// fetchFeed downloads one RSS feed and returns the items whose title or
// description contains the keyword, case-insensitively, capped per feed.
func (n *News) fetchFeed(ctx context.Context, feedURL, keyword, source string) ([]types.NewsResult, error) {
	resp, err := get(ctx, n.Client, feedURL, "content-engine/1.0")
	if err != nil {
		return nil, fmt.Errorf("RSS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RSS request returned HTTP %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing RSS feed: %w", err)
	}

	keywordLower := strings.ToLower(keyword)

	var results []types.NewsResult
	for _, item := range feed.Channel.Items {
		if len(results) >= perFeedLimit {
			break
		}
		if !strings.Contains(strings.ToLower(item.Title), keywordLower) &&
			!strings.Contains(strings.ToLower(item.Description), keywordLower) {
			continue
		}

		title := item.Title
		if title == "" {
			title = noTitle
		}
		pubDate := item.PubDate
		if pubDate == "" {
			pubDate = "Unknown"
		}

		results = append(results, types.NewsResult{
			Title:       title,
			Description: cleanHTML(item.Description),
			Link:        item.Link,
			PubDate:     pubDate,
			Source:      source,
		})
	}
	return results, nil
}

// RSS feed XML structures.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// htmlEntities maps the entities that show up in feed descriptions.
var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// cleanHTML strips tags and decodes common entities from feed text.
func cleanHTML(text string) string {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(htmlEntities.Replace(b.String()))
}
