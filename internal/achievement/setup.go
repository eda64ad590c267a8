package achievement

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化achievement模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&UnlockedAchievement{}); err != nil {
		return fmt.Errorf("无法迁移achievement表: %w", err)
	}
	fmt.Println("Achievement数据库表迁移成功。")
	return nil
}
