// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/pkg/types"
)

// suggestionPatterns drive keyword expansion. The format verb is filled with
// the base keyword.
var suggestionPatterns = []struct {
	format string
	trend  string
}{
	{"%s 효능", "hot"},
	{"%s 부작용", "rising"},
	{"%s 화장품", "stable"},
	{"%s 아기 피부", "rising"},
	{"%s 임산부", "hot"},
}

// SuggestKeywords expands a base keyword into related search keywords. A
// blank keyword yields no suggestions.
func SuggestKeywords(keyword string) []types.KeywordSuggestion {
	if isBlank(keyword) {
		return nil
	}

	suggestions := make([]types.KeywordSuggestion, 0, len(suggestionPatterns))
	for _, p := range suggestionPatterns {
		suggestions = append(suggestions, types.KeywordSuggestion{
			ID:      uuid.NewString(),
			Keyword: fmt.Sprintf(p.format, keyword),
			Trend:   p.trend,
			Source:  "google",
		})
	}
	return suggestions
}
