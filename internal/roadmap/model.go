package roadmap

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap 是一次成功生成的学习路线图。
// 只追加不修改，每次生成产生一行。
type Roadmap struct {
	gorm.Model

	UserUUID   string `gorm:"index;not null;type:varchar(36)"`
	CareerGoal string `gorm:"not null;type:varchar(200)"`
	Timeframe  string `gorm:"type:varchar(50)"`
	Level      string `gorm:"type:varchar(50)"`

	Request datatypes.JSON `gorm:"type:json"` // 原始请求参数
	Content datatypes.JSON `gorm:"type:json"` // 模型输出的路线图
}
