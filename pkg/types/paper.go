// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperResult is a literature-search hit (PubMed and similar sources).
type PaperResult struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Abstract        string   `json:"abstract"`
	PublicationDate string   `json:"publicationDate"`
	Source          string   `json:"source"`
	CitationCount   *int     `json:"citationCount"`
	DOI             *string  `json:"doi"`
	URL             *string  `json:"url,omitempty"`
}

// WebResult is a web-search hit.
type WebResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// NewsResult is a news item matched from an RSS feed.
type NewsResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source"`
}

// ConferenceResult is a CrossRef works-search hit.
type ConferenceResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
	Source        string   `json:"source"`
	DOI           *string  `json:"doi"`
	URL           *string  `json:"url"`
}
