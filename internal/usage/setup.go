package usage

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&UsageMetric{}); err != nil {
		return fmt.Errorf("无法迁移usage_metric表: %w", err)
	}
	fmt.Println("UsageMetric数据库表迁移成功。")
	return nil
}

// PrimeCachedDB 是usage模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := RebuildCache(); err != nil {
		return err
	}
	return nil
}
