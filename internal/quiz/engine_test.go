package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordMatch(t *testing.T) {
	assert.True(t, keywordMatch("Programming", "programming"))
	assert.True(t, keywordMatch("Tech", "technology")) // 双向子串
	assert.True(t, keywordMatch("machine learning", "learning"))
	assert.False(t, keywordMatch("art", "biology"))
	assert.False(t, keywordMatch("", "technology"))
	assert.False(t, keywordMatch("technology", ""))
}

func TestScoreProfileDeterministicBound(t *testing.T) {
	// 非beginner没有随机加分，得分是确定的
	info := PersonalInfo{
		Interests:  []string{"Technology", "Programming"},
		Skills:     []string{"Programming"},
		Experience: "intermediate",
	}

	var profile CareerProfile
	for _, p := range careerCatalog {
		if p.Title == "Software Developer" {
			profile = p
		}
	}
	require.NotEmpty(t, profile.Title)

	// 50 + 15*2 (两个兴趣命中) + 10*1 (一个技能命中) = 90
	assert.Equal(t, 90, scoreProfile(profile, info))
}

func TestScoreProfileClampedTo100(t *testing.T) {
	info := PersonalInfo{
		Interests: []string{"technology", "programming", "coding", "software", "computers"},
		Skills:    []string{"Programming", "Problem Solving", "Algorithms"},
	}
	var profile CareerProfile
	for _, p := range careerCatalog {
		if p.Title == "Software Developer" {
			profile = p
		}
	}

	score := scoreProfile(profile, info)
	assert.Equal(t, 100, score)
}

func TestScoreSoftwareDeveloperScenario(t *testing.T) {
	// 端到端场景：Technology+Programming兴趣、Programming技能、beginner
	// 基础50 + 15 + 15 + 10 = 90，随机加分只会更高（钳到100）
	info := PersonalInfo{
		Interests:  []string{"Technology", "Programming"},
		Skills:     []string{"Programming"},
		Experience: "beginner",
	}

	result := Score(info)
	assert.Equal(t, "Software Developer", result.PrimaryCareer.Title)
	assert.GreaterOrEqual(t, result.PrimaryCareer.Match, 75)
	assert.LessOrEqual(t, result.PrimaryCareer.Match, 100)
}

func TestScoreEmptyInputStillProducesPrimary(t *testing.T) {
	result := Score(PersonalInfo{})

	assert.NotEmpty(t, result.PrimaryCareer.Title)
	assert.Len(t, result.AlternativeCareers, 3)
	assert.NotEmpty(t, result.NextSteps)
	// 没有任何命中时所有职业都是基础分
	assert.Equal(t, baseScore, result.PrimaryCareer.Match)
}

func TestScoreOrdering(t *testing.T) {
	info := PersonalInfo{
		Interests: []string{"healthcare", "medicine"},
		Skills:    []string{"Patient Care"},
	}
	result := Score(info)

	assert.Equal(t, "Registered Nurse", result.PrimaryCareer.Title)
	for _, alt := range result.AlternativeCareers {
		assert.LessOrEqual(t, alt.Match, result.PrimaryCareer.Match)
	}
}

func TestSkillGapsExcludeOwnedSkills(t *testing.T) {
	info := PersonalInfo{
		Interests:  []string{"Technology"},
		Skills:     []string{"Programming"},
		Experience: "intermediate",
	}
	result := Score(info)

	require.Equal(t, "Software Developer", result.PrimaryCareer.Title)
	assert.NotContains(t, result.SkillGaps, "Programming")
	assert.Contains(t, result.SkillGaps, "Algorithms")
}
