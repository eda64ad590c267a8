package user

import (
	"time"

	"gorm.io/gorm"
)

// User 定义了用户在数据库中的持久化模型。
type User struct {
	// UUID 是用户的主键，由注册流程生成（UUID v7）。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	Email     string `gorm:"uniqueIndex;type:varchar(255)"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`

	// Tier 和 SubscriptionStatus 是订阅状态的快照，
	// 由subscription模块在解析订阅时回写（过期时回写free/expired）。
	Tier               string `gorm:"type:varchar(20);default:'free'"`
	SubscriptionStatus string `gorm:"type:varchar(20);default:'active'"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
