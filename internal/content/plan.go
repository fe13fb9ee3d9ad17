// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/internal/extract"
	"github.com/mkweon/content-engine/internal/provider"
	"github.com/mkweon/content-engine/pkg/types"
)

// Requested plan sizes are clamped to this range.
const (
	minPlanCount = 1
	maxPlanCount = 20
)

// TextGenerator is the provider capability the planner needs. Satisfied by
// provider.Provider; tests supply a mock.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// newTextGenerator builds the provider for a plan request. Package-level var
// so tests can avoid real API calls.
var newTextGenerator = func(name, apiKey string) TextGenerator {
	return provider.ForText(name, apiKey, nil)
}

// PlanRequest carries the inputs for content-plan generation. PromptID names
// a content-prompt preset; the plan's system prompt is fixed, so the id is
// accepted but not consulted.
type PlanRequest struct {
	Keyword      string
	PromptID     string
	Count        int
	APIKey       string
	Provider     string
	ResearchData string
}

// planPromptTmpl is the system prompt for content-plan generation. It frames
// every post as an entry in the persona character's research journal and
// demands a bare JSON array.
var planPromptTmpl = template.Must(template.New("plan").Parse(`당신은 인스타그램 뷰티 콘텐츠 기획 전문가입니다.
화장품 성분에 대한 교육적인 캐러셀 콘텐츠를 기획합니다.

타겟: 육아맘, 예비맘 (성분에 민감한 사용자)
캐릭터: {{.Name}} (성분을 의인화한 귀여운 캐릭터)
형식: {{.Name}}의 연구일지

각 콘텐츠는 다음 JSON 배열 형식으로 작성하세요:
[
  {
    "title": "매력적인 제목",
    "content": "50자 내외의 핵심 내용 (이모지 사용 가능)",
    "image_concept": "이미지 생성을 위한 상세한 컨셉 설명"
  },
  ...
]

주의사항:
- 과학적 근거에 기반하되 쉽게 설명
- 임산부/아기에게 안전한 정보 중심
- 긍정적이고 따뜻한 톤
- JSON 배열만 출력하세요`))

// GeneratePlan drafts a batch of post items for the keyword. An empty
// keyword or missing credential fails before any provider call. A response
// that cannot be decoded is replaced by the canned fallback plan rather than
// reported as an error.
func GeneratePlan(ctx context.Context, req PlanRequest) ([]types.ContentItem, error) {
	if isBlank(req.Keyword) {
		return nil, errors.New("keyword is required")
	}
	if req.APIKey == "" {
		return nil, errors.New("API key is not configured")
	}

	count := req.Count
	if count < minPlanCount {
		count = minPlanCount
	}
	if count > maxPlanCount {
		count = maxPlanCount
	}

	characterName := CharacterName(req.Keyword)

	systemPrompt, err := renderPlanPrompt(characterName)
	if err != nil {
		return nil, fmt.Errorf("rendering plan prompt: %w", err)
	}
	userPrompt := fmt.Sprintf(
		"'%s'에 대한 %d개의 인스타그램 캐러셀 콘텐츠를 기획해주세요.\n\n추가 정보:\n%s",
		req.Keyword, count, req.ResearchData,
	)

	gen := newTextGenerator(req.Provider, req.APIKey)
	response, err := gen.GenerateText(ctx, userPrompt, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("generating content plan: %w", err)
	}

	return parsePlan(response, characterName, req.Keyword), nil
}

// planContent mirrors one element of the model's JSON array.
type planContent struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ImageConcept string `json:"image_concept"`
}

// parsePlan extracts the JSON array from the raw response and decodes it.
// On decode failure the canned fallback plan is substituted; the fallback
// always has 10 items regardless of the requested count.
func parsePlan(response, characterName, keyword string) []types.ContentItem {
	parsed := extract.DecodeArray(response, fallbackPlan(keyword))

	items := make([]types.ContentItem, 0, len(parsed))
	for i, c := range parsed {
		items = append(items, types.ContentItem{
			ID:            uuid.NewString(),
			Title:         c.Title,
			CharacterName: characterName,
			JournalNumber: i + 1,
			Content:       c.Content,
			ImageConcept:  c.ImageConcept,
			Status:        types.StatusPending,
		})
	}
	return items
}

func renderPlanPrompt(characterName string) (string, error) {
	var buf bytes.Buffer
	if err := planPromptTmpl.Execute(&buf, struct{ Name string }{Name: characterName}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
