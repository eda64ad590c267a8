package startup

import (
	"fmt"

	"github.com/stardust-edu/career-advisor-backend/internal/achievement"
	"github.com/stardust-edu/career-advisor-backend/internal/activity"
	"github.com/stardust-edu/career-advisor-backend/internal/college"
	"github.com/stardust-edu/career-advisor-backend/internal/jobhunt"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/ai"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/metadata"
	"github.com/stardust-edu/career-advisor-backend/internal/quiz"
	"github.com/stardust-edu/career-advisor-backend/internal/recommendation"
	"github.com/stardust-edu/career-advisor-backend/internal/roadmap"
	"github.com/stardust-edu/career-advisor-backend/internal/skill"
	"github.com/stardust-edu/career-advisor-backend/internal/subscription"
	"github.com/stardust-edu/career-advisor-backend/internal/usage"
	"github.com/stardust-edu/career-advisor-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	// 1. 平台层表结构
	if err := metadata.PrimeDB(); err != nil {
		return err
	}

	// 2. 带缓存的模块（迁移 + Redis预热）
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := usage.PrimeCachedDB(); err != nil {
		return err
	}

	// 3. 纯数据库模块
	if err := subscription.PrimeDB(); err != nil {
		return err
	}
	if err := activity.PrimeDB(); err != nil {
		return err
	}
	if err := skill.PrimeDB(); err != nil {
		return err
	}
	if err := college.PrimeDB(); err != nil {
		return err
	}
	if err := quiz.PrimeDB(); err != nil {
		return err
	}
	if err := achievement.PrimeDB(); err != nil {
		return err
	}
	if err := roadmap.PrimeDB(); err != nil {
		return err
	}
	if err := jobhunt.PrimeDB(); err != nil {
		return err
	}

	// 4. 注入AI客户端
	client := ai.NewClient(cfg.AI)
	if !client.Enabled() {
		fmt.Println("警告: 未配置AI服务，所有AI路径将直接走规则回退。")
	}
	quiz.SetAIClient(client)
	recommendation.SetAIClient(client)
	roadmap.SetAIClient(client)
	jobhunt.SetAIClient(client)

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时热重建Redis缓存（检测到Redis重启后调用）。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := usage.RebuildCache(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
