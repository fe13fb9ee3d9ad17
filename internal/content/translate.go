// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"context"
	"fmt"
	"strings"
)

const translateSystemPrompt = "You are a professional translator. Translate the given English text to Korean. " +
	"Only output the translated text, nothing else. Keep the translation natural and accurate."

// TranslateToKorean translates text through the given provider. Blank input
// is returned unchanged without a provider call.
func TranslateToKorean(ctx context.Context, gen TextGenerator, text string) (string, error) {
	if isBlank(text) {
		return text, nil
	}

	prompt := fmt.Sprintf("Translate the following text to Korean:\n\n%s", text)
	translated, err := gen.GenerateText(ctx, prompt, translateSystemPrompt)
	if err != nil {
		return "", fmt.Errorf("translating text: %w", err)
	}
	return strings.TrimSpace(translated), nil
}
