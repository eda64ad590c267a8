package skill

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化skill模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Skill{}); err != nil {
		return fmt.Errorf("无法迁移skill表: %w", err)
	}
	fmt.Println("Skill数据库表迁移成功。")
	return nil
}
