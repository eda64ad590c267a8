package activity

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化activity模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Activity{}); err != nil {
		return fmt.Errorf("无法迁移activity表: %w", err)
	}
	fmt.Println("Activity数据库表迁移成功。")
	return nil
}
