// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/pkg/types"
)

// pubmedAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Korean placeholders for articles with missing fields.
const (
	noTitle    = "제목 없음"
	noAbstract = "초록 없음"
	noYear     = "연도 미상"
)

// PubMed searches the NCBI PubMed database via esearch + efetch.
type PubMed struct {
	Client *http.Client
	Cache  *Cache
}

// Name returns the backend identifier.
func (p *PubMed) Name() string { return "pubmed" }

// SearchIngredient searches for papers about a cosmetic ingredient. The
// query is expanded with skincare context and safety/efficacy terms.
func (p *PubMed) SearchIngredient(ctx context.Context, ingredient string, limit int) ([]types.PaperResult, error) {
	query := fmt.Sprintf(
		"(%s OR %s cosmetic OR %s skin OR %s skincare) AND (safety OR efficacy OR benefit)",
		ingredient, ingredient, ingredient, ingredient,
	)
	return p.Search(ctx, query, limit)
}

// Search runs an esearch for article IDs, then an efetch for their details.
// A blank query yields no results.
func (p *PubMed) Search(ctx context.Context, query string, limit int) ([]types.PaperResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var cached []types.PaperResult
	if p.Cache.Get(ctx, p.Name(), query, limit, &cached) {
		return cached, nil
	}

	ids, err := p.searchIDs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	papers, err := p.fetchArticles(ctx, ids)
	if err != nil {
		return nil, err
	}

	p.Cache.Put(ctx, p.Name(), query, limit, papers)
	return papers, nil
}

func (p *PubMed) searchIDs(ctx context.Context, query string, limit int) ([]string, error) {
	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmax=%d&retmode=json&sort=relevance",
		pubmedAPIBase, url.QueryEscape(query), limit)

	resp, err := get(ctx, p.Client, searchURL, "")
	if err != nil {
		return nil, fmt.Errorf("PubMed search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed search returned HTTP %d", resp.StatusCode)
	}

	var result struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing PubMed search response: %w", err)
	}
	return result.ESearchResult.IDList, nil
}

func (p *PubMed) fetchArticles(ctx context.Context, ids []string) ([]types.PaperResult, error) {
	fetchURL := fmt.Sprintf("%s/efetch.fcgi?db=pubmed&id=%s&retmode=xml",
		pubmedAPIBase, strings.Join(ids, ","))

	resp, err := get(ctx, p.Client, fetchURL, "")
	if err != nil {
		return nil, fmt.Errorf("PubMed fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed fetch returned HTTP %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing PubMed fetch response: %w", err)
	}

	var papers []types.PaperResult
	for _, article := range set.Articles {
		papers = append(papers, article.toPaperResult())
	}
	return papers, nil
}

// PubMed efetch XML structures.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation pubmedCitation `xml:"MedlineCitation"`
}

type pubmedCitation struct {
	PMID    string        `xml:"PMID"`
	Article pubmedDetails `xml:"Article"`
}

type pubmedDetails struct {
	Title        string         `xml:"ArticleTitle"`
	AbstractText []string       `xml:"Abstract>AbstractText"`
	Authors      []pubmedAuthor `xml:"AuthorList>Author"`
	Year         string         `xml:"Journal>JournalIssue>PubDate>Year"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	Initials string `xml:"Initials"`
}

func (a pubmedArticle) toPaperResult() types.PaperResult {
	d := a.Citation.Article

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = noTitle
	}

	abstract := strings.TrimSpace(strings.Join(d.AbstractText, " "))
	if abstract == "" {
		abstract = noAbstract
	}

	year := strings.TrimSpace(d.Year)
	if year == "" {
		year = noYear
	}

	var authors []string
	for _, au := range d.Authors {
		if au.LastName == "" {
			continue
		}
		authors = append(authors, strings.TrimSpace(au.LastName+" "+au.Initials))
	}

	link := fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", strings.TrimSpace(a.Citation.PMID))

	return types.PaperResult{
		ID:              uuid.NewString(),
		Title:           title,
		Authors:         authors,
		Abstract:        abstract,
		PublicationDate: year,
		Source:          "PubMed",
		URL:             &link,
	}
}
