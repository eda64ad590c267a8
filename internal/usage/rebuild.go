package usage

import (
	"fmt"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
)

// RebuildCache 从数据库重建Redis中的每日计数器。
// 应用启动和检测到Redis重启时都会调用。
// 只恢复今天和昨天的计数——更早的数据不再参与限额判断。
func RebuildCache() error {
	fmt.Println("正在从数据库重建用量计数缓存...")

	LockRepository()
	defer UnlockRepository()

	now := time.Now()
	dates := []string{DateKey(now), DateKey(now.AddDate(0, 0, -1))}

	var rows []UsageMetric
	err := database.DB.
		Where("period = ? AND date IN ?", PeriodDaily, dates).
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("无法从数据库读取近期用量: %w", err)
	}

	// 先清掉这两天的计数器键和dirty set，确保一致性
	keys := []string{DirtySetKey, ProcessingDirtySetKey}
	seen := map[string]bool{}
	for _, row := range rows {
		key := CounterKey(row.Metric, row.Date)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	pipe := database.RDB.TxPipeline()
	pipe.Del(database.Ctx, keys...)
	for _, row := range rows {
		key := CounterKey(row.Metric, row.Date)
		pipe.HSet(database.Ctx, key, row.UserUUID, row.Count)
		pipe.Expire(database.Ctx, key, counterTTL)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建用量计数缓存失败: %w", err)
	}

	fmt.Printf("用量计数缓存重建完成，共恢复 %d 条计数。\n", len(rows))
	return nil
}
