// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research analyzes cosmetic ingredients: it gathers literature
// context from PubMed and asks a text provider for a structured safety and
// efficacy assessment.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkweon/content-engine/internal/extract"
	"github.com/mkweon/content-engine/internal/provider"
	"github.com/mkweon/content-engine/pkg/types"
)

// noPapersContext is sent to the model when the literature search comes
// back empty.
const noPapersContext = "관련 논문을 찾지 못했습니다."

// analyzeSystemPrompt demands a bare JSON object with the analysis fields.
const analyzeSystemPrompt = `당신은 화장품 성분 전문가입니다. 주어진 성분과 관련 논문 정보를 바탕으로 상세한 분석을 제공해주세요.
응답은 반드시 다음 JSON 형식으로만 작성하세요:
{
  "ewg_score": 1-10 사이 숫자 또는 null,
  "benefits": ["효능1", "효능2", ...],
  "cautions": ["주의사항1", "주의사항2", ...],
  "recommended_concentration": "권장 농도 (예: 1-5%)" 또는 null
}
다른 설명 없이 JSON만 응답해주세요.`

// paperSearchLimit bounds the literature context gathered per analysis.
const paperSearchLimit = 5

// attachedPaperLimit bounds the papers attached to the returned analysis.
const attachedPaperLimit = 3

// PaperSearcher supplies literature context. Satisfied by *search.PubMed.
type PaperSearcher interface {
	SearchIngredient(ctx context.Context, ingredient string, limit int) ([]types.PaperResult, error)
}

// TextGenerator is the provider capability the analyzer needs.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// newTextGenerator builds the provider for an analysis. Package-level var
// so tests can avoid real API calls.
var newTextGenerator = func(name, apiKey string) TextGenerator {
	return provider.ForText(name, apiKey, nil)
}

// AnalyzeRequest carries the inputs for an ingredient analysis.
type AnalyzeRequest struct {
	IngredientName string
	APIKey         string
	Provider       string
}

// llmAnalysis mirrors the JSON object the model is asked to produce.
type llmAnalysis struct {
	EWGScore                 *int     `json:"ewg_score"`
	Benefits                 []string `json:"benefits"`
	Cautions                 []string `json:"cautions"`
	RecommendedConcentration *string  `json:"recommended_concentration"`
}

// defaultAnalysis is substituted when the model's response cannot be
// decoded.
func defaultAnalysis() llmAnalysis {
	return llmAnalysis{
		Benefits: []string{"피부 보습 효과"},
		Cautions: []string{"특별한 주의사항 없음"},
	}
}

// AnalyzeIngredient looks up literature for the ingredient, asks the
// provider for a structured assessment, and returns the combined analysis.
// The literature lookup is best-effort: a failed search produces an
// analysis without paper context rather than an error.
func AnalyzeIngredient(ctx context.Context, papers PaperSearcher, req AnalyzeRequest) (*types.IngredientAnalysis, error) {
	if strings.TrimSpace(req.IngredientName) == "" {
		return nil, errors.New("ingredient name is required")
	}
	if req.APIKey == "" {
		return nil, errors.New("API key is not configured")
	}

	found, err := papers.SearchIngredient(ctx, req.IngredientName, paperSearchLimit)
	if err != nil {
		found = nil
	}

	prompt := fmt.Sprintf(
		"성분명: %s\n\n관련 논문 정보:\n%s\n\n위 정보를 바탕으로 이 성분을 분석해주세요.",
		req.IngredientName, papersContext(found),
	)

	gen := newTextGenerator(req.Provider, req.APIKey)
	response, err := gen.GenerateText(ctx, prompt, analyzeSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("analyzing ingredient: %w", err)
	}

	parsed := extract.DecodeObject(response, defaultAnalysis())

	attached := found
	if len(attached) > attachedPaperLimit {
		attached = attached[:attachedPaperLimit]
	}

	return &types.IngredientAnalysis{
		IngredientName:           req.IngredientName,
		KoreanName:               req.IngredientName,
		EWGScore:                 parsed.EWGScore,
		Benefits:                 parsed.Benefits,
		Cautions:                 parsed.Cautions,
		RecommendedConcentration: parsed.RecommendedConcentration,
		RelatedPapers:            attached,
	}, nil
}

// papersContext renders the found papers as prompt context.
func papersContext(papers []types.PaperResult) string {
	if len(papers) == 0 {
		return noPapersContext
	}
	summaries := make([]string, 0, len(papers))
	for _, p := range papers {
		summaries = append(summaries, fmt.Sprintf("제목: %s\n초록: %s", p.Title, p.Abstract))
	}
	return strings.Join(summaries, "\n\n---\n\n")
}
