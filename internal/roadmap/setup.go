package roadmap

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化roadmap模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Roadmap{}); err != nil {
		return fmt.Errorf("无法迁移roadmap表: %w", err)
	}
	fmt.Println("Roadmap数据库表迁移成功。")
	return nil
}
