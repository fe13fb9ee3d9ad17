// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KeywordSuggestion is a related-keyword candidate for a topic.
type KeywordSuggestion struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`
	Trend   string `json:"trend"` // "rising", "stable", "hot"
	Source  string `json:"source"`
}

// CharacterPersona frames generated copy as a fictional character's journal.
type CharacterPersona struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	PersonalityTraits []string `json:"personalityTraits"`
}

// IngredientAnalysis is the result of analyzing a cosmetic ingredient:
// the model's structured assessment plus the papers that informed it.
type IngredientAnalysis struct {
	IngredientName           string        `json:"ingredientName"`
	KoreanName               string        `json:"koreanName"`
	EWGScore                 *int          `json:"ewgScore"`
	Benefits                 []string      `json:"benefits"`
	Cautions                 []string      `json:"cautions"`
	RecommendedConcentration *string       `json:"recommendedConcentration"`
	RelatedPapers            []PaperResult `json:"relatedPapers"`
}

// ImageRequest describes one image to render for a content item.
type ImageRequest struct {
	ContentID      string `json:"contentId"`
	ImageConcept   string `json:"imageConcept"`
	StylePrompt    string `json:"stylePrompt"`
	StyleImagePath string `json:"styleImagePath,omitempty"`
}

// GeneratedImage is the in-memory result of a single render. URL is either a
// remote URL or an embedded data URI; callers must handle both.
type GeneratedImage struct {
	ID        string `json:"id"`
	ContentID string `json:"contentId"`
	URL       string `json:"url"`
	LocalPath string `json:"localPath,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
