// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the content-engine
// pipeline: the persisted project aggregate, content plans, lookup results,
// and application settings. JSON field names are camelCase to stay
// interchangeable with the files the desktop application writes.
package types

import "time"

// ContentItem status values.
const (
	StatusPending    = "pending"
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Project is the root persisted aggregate: one unit of work identified by a
// stable id, holding research items, content groups, and generated-image
// records. The id never changes after creation and UpdatedAt is refreshed on
// every save.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ResearchItems   []ResearchItem         `json:"researchItems"`
	ContentGroups   []ContentGroup         `json:"contentGroups"`
	GeneratedImages []GeneratedImageRecord `json:"generatedImages"`
}

// ProjectMeta is the denormalized index entry kept in projects_index.json.
// It is derived from the Project aggregate on every save and never edited by
// hand.
type ProjectMeta struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ResearchCount int       `json:"researchCount"`
	ContentCount  int       `json:"contentCount"`
	ImageCount    int       `json:"imageCount"`
}

// Meta computes the index entry for a project. ContentCount is the sum of
// content items across all groups.
func (p *Project) Meta() ProjectMeta {
	contentCount := 0
	for _, g := range p.ContentGroups {
		contentCount += len(g.Contents)
	}
	return ProjectMeta{
		ID:            p.ID,
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ResearchCount: len(p.ResearchItems),
		ContentCount:  contentCount,
		ImageCount:    len(p.GeneratedImages),
	}
}

// ResearchItem records one research request and its report.
type ResearchItem struct {
	ID         string         `json:"id"`
	Prompt     string         `json:"prompt"`
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	FullReport ResearchReport `json:"fullReport"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ResearchReport nests the optional ingredient analysis together with the
// papers and generic sources the report cites.
type ResearchReport struct {
	IngredientAnalysis *IngredientAnalysisResult `json:"ingredientAnalysis"`
	Papers             []PaperResult             `json:"papers"`
	Sources            []SourceReference         `json:"sources"`
}

// IngredientAnalysisResult is the structured outcome of an ingredient
// analysis as stored inside a research report.
type IngredientAnalysisResult struct {
	IngredientName           string   `json:"ingredientName"`
	KoreanName               string   `json:"koreanName"`
	EWGScore                 *int     `json:"ewgScore"`
	Benefits                 []string `json:"benefits"`
	Cautions                 []string `json:"cautions"`
	RecommendedConcentration *string  `json:"recommendedConcentration"`
}

// SourceReference tags a generic source with the id of the research or
// content item that cites it. CitedIn is a back-reference, not ownership.
type SourceReference struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	CitedIn string `json:"citedIn"`
}

// ContentGroup is a named batch of content items. ResearchItemIDs reference
// (but do not own) research items of the same project.
type ContentGroup struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	ResearchItemIDs []string      `json:"researchItemIds"`
	Contents        []ContentItem `json:"contents"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// ContentItem is one drafted post: title, short copy, and an image concept.
// JournalNumber is the 1-based position within its generation batch.
type ContentItem struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	CharacterName    string `json:"characterName"`
	JournalNumber    int    `json:"journalNumber"`
	Content          string `json:"content"`
	ImageConcept     string `json:"imageConcept"`
	Status           string `json:"status"`
	GeneratedImageID string `json:"generatedImageId,omitempty"`
}

// GeneratedImageRecord is created once an image render is accepted and
// optionally downloaded. Owned by the project.
type GeneratedImageRecord struct {
	ID             string    `json:"id"`
	ContentID      string    `json:"contentId"`
	ContentGroupID string    `json:"contentGroupId"`
	ImageURL       string    `json:"imageUrl"`
	LocalPath      string    `json:"localPath"`
	CreatedAt      time.Time `json:"createdAt"`
}
