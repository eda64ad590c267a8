package achievement

import (
	"gorm.io/gorm"
)

// 稀有度档位
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// 进度来源指标
const (
	SourceSkills     = "skills"
	SourceQuizzes    = "quizzes"
	SourceColleges   = "colleges"
	SourceActivities = "activities"
)

// Definition 是成就的固定定义。
// 目录是编译期常量，成就进度永远从这里推导。
type Definition struct {
	ID          string
	Title       string
	Description string
	Rarity      string
	Source      string // 进度来源指标
	Threshold   int64  // 达到该数量即解锁
}

// definitions 是内置的成就目录。
var definitions = []Definition{
	{ID: "first-steps", Title: "First Steps", Description: "完成第一次职业测评", Rarity: RarityCommon, Source: SourceQuizzes, Threshold: 1},
	{ID: "skill-builder", Title: "Skill Builder", Description: "添加5个跟踪中的技能", Rarity: RarityCommon, Source: SourceSkills, Threshold: 5},
	{ID: "skill-master", Title: "Skill Master", Description: "添加15个跟踪中的技能", Rarity: RarityRare, Source: SourceSkills, Threshold: 15},
	{ID: "college-explorer", Title: "College Explorer", Description: "收藏10所院校", Rarity: RarityUncommon, Source: SourceColleges, Threshold: 10},
	{ID: "quiz-veteran", Title: "Quiz Veteran", Description: "完成5次职业测评", Rarity: RarityUncommon, Source: SourceQuizzes, Threshold: 5},
	{ID: "consistent-learner", Title: "Consistent Learner", Description: "累计产生30条动态", Rarity: RarityRare, Source: SourceActivities, Threshold: 30},
	{ID: "dedicated-planner", Title: "Dedicated Planner", Description: "累计产生100条动态", Rarity: RarityLegendary, Source: SourceActivities, Threshold: 100},
}

// UnlockedAchievement 是持久化的解锁记录。
// 一旦写入，进度就固定为100，不再随来源计数回落。
type UnlockedAchievement struct {
	gorm.Model

	UserUUID      string `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_achievement,priority:1"`
	AchievementID string `gorm:"not null;type:varchar(50);uniqueIndex:idx_user_achievement,priority:2"`
}

// DefinitionByID 按id查找成就定义。
func DefinitionByID(id string) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Definitions 返回成就目录的副本。
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}
