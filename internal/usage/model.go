package usage

import (
	"gorm.io/gorm"
)

// PeriodDaily 是目前唯一支持的计量周期
const PeriodDaily = "daily"

// UsageMetric 定义了持久化的用量计数记录。
// (user, metric, period, date) 唯一；计数的实时增量发生在Redis，
// 由后台flusher定期落库，本表是崩溃恢复与审计的依据。
type UsageMetric struct {
	gorm.Model

	UserUUID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_usage_key,priority:1"`
	Metric   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_usage_key,priority:2"`
	Period   string `gorm:"type:varchar(10);not null;default:'daily';uniqueIndex:idx_usage_key,priority:3"`

	// Date 是计数所属的自然日，格式YYYY-MM-DD（服务器时区）。
	// 跨天即换键，天然完成"午夜清零"，不需要任何重置任务。
	Date string `gorm:"type:varchar(10);not null;uniqueIndex:idx_usage_key,priority:4"`

	Count int64 `gorm:"not null;default:0"`
}
