package subscription

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// PrimeDB 负责初始化subscription模块：迁移表结构并配置Stripe密钥。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Subscription{}); err != nil {
		return fmt.Errorf("无法迁移subscription表: %w", err)
	}
	fmt.Println("Subscription数据库表迁移成功。")

	if key := config.Cfg.Payment.Stripe.SecretKey; key != "" {
		stripe.Key = key
	}
	return nil
}
