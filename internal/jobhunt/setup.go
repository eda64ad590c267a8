package jobhunt

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化jobhunt模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&JobMatch{}, &OutreachDraft{}, &Resume{}); err != nil {
		return fmt.Errorf("无法迁移jobhunt表: %w", err)
	}
	fmt.Println("JobHunt数据库表迁移成功。")
	return nil
}
