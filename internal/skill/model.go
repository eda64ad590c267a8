package skill

import (
	"gorm.io/gorm"
)

// Skill 定义了用户技能的持久化模型。
// 不变量：0 <= CurrentLevel <= 100，0 <= TargetLevel <= 100。
// 所有写入路径都先经过ClampLevel，越界输入被钳到边界而不是报错。
type Skill struct {
	gorm.Model

	UserUUID string `gorm:"not null;type:varchar(36);uniqueIndex:idx_user_skill,priority:1"`
	Name     string `gorm:"not null;type:varchar(100);uniqueIndex:idx_user_skill,priority:2"`
	Category string `gorm:"type:varchar(50)"`

	CurrentLevel int `gorm:"not null;default:0"`
	TargetLevel  int `gorm:"not null;default:100"`
}

// ClampLevel 把技能等级钳制到[0,100]区间。
func ClampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
