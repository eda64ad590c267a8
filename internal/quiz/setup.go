package quiz

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化quiz模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&QuizResult{}); err != nil {
		return fmt.Errorf("无法迁移quiz表: %w", err)
	}
	fmt.Println("Quiz数据库表迁移成功。")
	return nil
}

// SetAIClient 注入AI客户端。不注入时所有提交都走规则引擎。
func SetAIClient(client ai.Client) {
	aiClient = client
}
