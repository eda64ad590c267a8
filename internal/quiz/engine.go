package quiz

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// PersonalInfo 是打分输入中的用户画像部分
type PersonalInfo struct {
	Interests  []string `json:"interests"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"` // beginner / intermediate / advanced
}

// CareerMatch 是单个职业的匹配结果
type CareerMatch struct {
	Title       string   `json:"title"`
	Match       int      `json:"match"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Salary      string   `json:"salary"`
	Outlook     string   `json:"outlook"`
}

// Recommendations 是打分引擎的完整输出
type Recommendations struct {
	PrimaryCareer      CareerMatch   `json:"primaryCareer"`
	AlternativeCareers []CareerMatch `json:"alternativeCareers"`
	SkillGaps          []string      `json:"skillGaps"`
	NextSteps          []string      `json:"nextSteps"`
}

const (
	baseScore          = 50
	interestMatchBonus = 15
	skillMatchBonus    = 10
	maxBeginnerBonus   = 10
)

// keywordMatch 判断两个词是否匹配：大小写不敏感，双向子串。
func keywordMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scoreProfile 计算一个职业画像对给定用户的得分。
// 规则：基础分50，每个命中兴趣+15，每个命中技能+10，
// 新手有0-10的随机加分避免并列，最后钳到[0,100]。
func scoreProfile(profile CareerProfile, info PersonalInfo) int {
	score := baseScore

	for _, interest := range info.Interests {
		for _, keyword := range profile.Keywords {
			if keywordMatch(interest, keyword) {
				score += interestMatchBonus
				break
			}
		}
	}
	for _, skillName := range info.Skills {
		for _, careerSkill := range profile.Skills {
			if keywordMatch(skillName, careerSkill) {
				score += skillMatchBonus
				break
			}
		}
	}
	if strings.EqualFold(info.Experience, "beginner") {
		score += rand.Intn(maxBeginnerBonus + 1)
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Score 对整份目录打分并组装推荐结果。
// 排序后第一名是主推荐，随后三名是备选。
func Score(info PersonalInfo) Recommendations {
	matches := make([]CareerMatch, 0, len(careerCatalog))
	for _, profile := range careerCatalog {
		matches = append(matches, CareerMatch{
			Title:       profile.Title,
			Match:       scoreProfile(profile, info),
			Description: profile.Description,
			Skills:      profile.Skills,
			Salary:      profile.SalaryRange,
			Outlook:     profile.Outlook,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Match > matches[j].Match
	})

	primary := matches[0]
	alternatives := matches[1:]
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}

	return Recommendations{
		PrimaryCareer:      primary,
		AlternativeCareers: alternatives,
		SkillGaps:          skillGaps(primary, info),
		NextSteps:          nextSteps(primary),
	}
}

// skillGaps 从主推荐的技能列表里挑出用户还没有的技能。
func skillGaps(primary CareerMatch, info PersonalInfo) []string {
	gaps := []string{}
	for _, careerSkill := range primary.Skills {
		owned := false
		for _, skillName := range info.Skills {
			if keywordMatch(skillName, careerSkill) {
				owned = true
				break
			}
		}
		if !owned {
			gaps = append(gaps, careerSkill)
		}
	}
	return gaps
}

// nextSteps 基于主推荐职业生成模板化的行动建议。
func nextSteps(primary CareerMatch) []string {
	steps := []string{
		fmt.Sprintf("了解%s的日常工作内容和职业路径", primary.Title),
	}
	if len(primary.Skills) > 0 {
		steps = append(steps, fmt.Sprintf("开始学习核心技能: %s", primary.Skills[0]))
	}
	steps = append(steps,
		"在技能页添加目标技能并跟踪进度",
		"浏览院校目录，收藏提供相关专业的学校",
	)
	return steps
}
