package quiz

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizResult 是一次测评提交的持久化记录。
// 只追加不修改，每次提交产生一行。
type QuizResult struct {
	gorm.Model

	UserUUID   string `gorm:"index;not null;type:varchar(36)"`
	QuizType   string `gorm:"type:varchar(50)"`
	CareerPath string `gorm:"type:varchar(100)"` // 主推荐职业
	Score      int    `gorm:"not null;default:0"`

	Interests  datatypes.JSON `gorm:"type:json"`
	Skills     datatypes.JSON `gorm:"type:json"`
	RawAnswers datatypes.JSON `gorm:"type:json"`
	AIAnalysis datatypes.JSON `gorm:"type:json"` // AI路径的原始结果，规则路径为空
}
