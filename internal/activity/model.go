package activity

import (
	"gorm.io/gorm"
	"gorm.io/datatypes"
)

// 活动类型常量。仪表盘和成就推导都按这些类型聚合。
const (
	TypeQuizCompleted     = "quiz_completed"
	TypeSkillAdded        = "skill_added"
	TypeSkillUpdated      = "skill_updated"
	TypeCollegeSaved      = "college_saved"
	TypeRoadmapGenerated  = "roadmap_generated"
	TypeRecommendations   = "recommendations_generated"
	TypeOutreachGenerated = "outreach_generated"
	TypeAchievementEarned = "achievement_earned"
)

// Activity 定义了一条不可变的用户活动日志。
// 只追加不修改；仪表盘的动态流和成就进度都从这里推导。
type Activity struct {
	gorm.Model

	UserUUID    string `gorm:"index;not null;type:varchar(36)"`
	Type        string `gorm:"index;not null;type:varchar(50)"`
	Title       string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`

	// Metadata 存放类型相关的附加字段（JSON）
	Metadata datatypes.JSON
}
