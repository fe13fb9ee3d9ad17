// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import "fmt"

// fallbackTopics is the canned (topic, copy) list used when the model's
// response cannot be decoded.
var fallbackTopics = [10]struct {
	title   string
	content string
}{
	{"기초 효능", "피부에 미치는 기본적인 효과를 알아봐요 ✨"},
	{"보습 메커니즘", "피부 속 수분을 어떻게 지켜줄까요? 💧"},
	{"장벽 강화", "피부 장벽을 튼튼하게 만드는 비결 🛡️"},
	{"진정 효과", "민감해진 피부를 달래주는 방법 🌿"},
	{"아기 피부", "연약한 아기 피부에도 안전해요 👶"},
	{"임산부 안전성", "임산부도 안심하고 사용할 수 있어요 🤰"},
	{"EWG 등급", "안전성 등급이 의미하는 것 📊"},
	{"적정 농도", "얼마나 들어있으면 효과적일까요? 🧪"},
	{"함께 쓰면 좋은 성분", "시너지를 내는 조합 💪"},
	{"제형별 특징", "크림, 세럼, 에센스의 차이 🧴"},
}

// fallbackPlan composes the deterministic fallback plan for a keyword.
func fallbackPlan(keyword string) []planContent {
	items := make([]planContent, 0, len(fallbackTopics))
	for _, topic := range fallbackTopics {
		items = append(items, planContent{
			Title:   fmt.Sprintf("%s - %s", keyword, topic.title),
			Content: topic.content,
			ImageConcept: fmt.Sprintf(
				"귀여운 캐릭터가 연구실에서 %s을(를) 분석하며 %s 포인트를 설명하는 일러스트",
				keyword, topic.title,
			),
		})
	}
	return items
}
