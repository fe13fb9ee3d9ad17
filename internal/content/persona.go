// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content drafts illustrated social-media post plans for a topic
// keyword: persona derivation, content-plan generation through a text
// provider, keyword suggestions, and translation.
package content

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/mkweon/content-engine/pkg/types"
)

// hangulStart and hangulEnd bound the Hangul syllables block.
const (
	hangulStart = '가'
	hangulEnd   = '힣'
)

// CharacterName derives the persona name from a keyword. Characters that are
// neither letters nor Hangul syllables are stripped; if any Hangul syllable
// remains the name is the first 2 runes, otherwise the first 4.
func CharacterName(keyword string) string {
	var cleaned []rune
	hasHangul := false
	for _, r := range keyword {
		isHangul := r >= hangulStart && r <= hangulEnd
		if !unicode.IsLetter(r) && !isHangul {
			continue
		}
		cleaned = append(cleaned, r)
		if isHangul {
			hasHangul = true
		}
	}

	max := 4
	if hasHangul {
		max = 2
	}
	if len(cleaned) > max {
		cleaned = cleaned[:max]
	}
	return string(cleaned)
}

// NewPersona builds the character persona used to frame generated copy.
func NewPersona(keyword string) (*types.CharacterPersona, error) {
	if isBlank(keyword) {
		return nil, errors.New("keyword is required")
	}
	return &types.CharacterPersona{
		Name:        CharacterName(keyword),
		Description: fmt.Sprintf("%s의 비밀을 연구하는 귀여운 캐릭터", keyword),
		PersonalityTraits: []string{
			"호기심 많은",
			"친근한",
			"전문적인",
			"따뜻한",
		},
	}, nil
}
