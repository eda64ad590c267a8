package recommendation

import (
	"testing"

	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(items []Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestRuleFallbackNoQuizSuggestsAssessment(t *testing.T) {
	items := ruleBasedItems(userContext{})

	require.NotEmpty(t, items)
	assert.Contains(t, itemIDs(items), "take-assessment")
}

func TestRuleFallbackSuggestsLowestSkillBelowTarget(t *testing.T) {
	uc := userContext{
		Skills: []skill.Skill{
			{UserUUID: "u", Name: "Go", CurrentLevel: 60, TargetLevel: 80},
			{UserUUID: "u", Name: "SQL", CurrentLevel: 20, TargetLevel: 70},
			{UserUUID: "u", Name: "Docker", CurrentLevel: 90, TargetLevel: 90}, // 已达标，不推荐
		},
	}
	items := ruleBasedItems(uc)

	var skillItem *Item
	for i := range items {
		if items[i].ID == "improve-skill" {
			skillItem = &items[i]
		}
	}
	require.NotNil(t, skillItem)
	assert.Equal(t, "SQL", skillItem.Metadata["skill"])
}

func TestRuleFallbackQuizDoneNoCollegesSuggestsSearch(t *testing.T) {
	uc := userContext{
		Quizzes: []quiz.QuizResult{{UserUUID: "u", CareerPath: "Software Developer"}},
	}
	items := ruleBasedItems(uc)

	ids := itemIDs(items)
	assert.Contains(t, ids, "explore-colleges")
	assert.NotContains(t, ids, "take-assessment")
}

func TestRuleFallbackAlwaysNonEmpty(t *testing.T) {
	// 资料完整的用户也至少有一条通用建议
	uc := userContext{
		Skills:   []skill.Skill{{UserUUID: "u", Name: "Go", CurrentLevel: 90, TargetLevel: 90}},
		Quizzes:  []quiz.QuizResult{{UserUUID: "u", CareerPath: "Software Developer"}},
		Colleges: []college.SavedCollege{{UserUUID: "u", CollegeID: "mit"}},
	}
	items := ruleBasedItems(uc)

	require.Len(t, items, 1)
	assert.Equal(t, "keep-going", items[0].ID)
}

func TestSanitizeItems(t *testing.T) {
	raw := []Item{
		{Title: "A", Confidence: 1.7},
		{Title: ""}, // 没有标题，丢弃
		{Title: "B", Confidence: -0.3},
		{ID: "keep-id", Title: "C", Confidence: 0.5},
		{Title: "D"},
		{Title: "E"},
		{Title: "F"}, // 超出5条上限
	}
	items := sanitizeItems(raw)

	require.Len(t, items, 5)
	assert.Equal(t, 1.0, items[0].Confidence)
	assert.Equal(t, 0.0, items[1].Confidence)
	assert.Equal(t, "keep-id", items[2].ID)
	// 未提供的ID被补齐
	assert.NotEmpty(t, items[0].ID)
}

func TestDecodeFencedAIResponse(t *testing.T) {
	// AI返回的JSON常被Markdown围栏包裹
	text := "```json\n{\"recommendations\":[{\"id\":\"x\",\"title\":\"学习Go\",\"confidence\":0.8}]}\n```"

	var parsed struct {
		Recommendations []Item `json:"recommendations"`
	}
	require.NoError(t, ai.DecodeJSONResponse(text, &parsed))
	require.Len(t, parsed.Recommendations, 1)
	assert.Equal(t, "学习Go", parsed.Recommendations[0].Title)
}
